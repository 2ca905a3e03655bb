// Package docs serves the embedded help topics shown by `tablero docs`.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var content embed.FS

// Topics lists the available topic names, sorted.
func Topics() []string {
	entries, err := content.ReadDir("content")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(name, ".md"))
	}
	sort.Strings(topics)
	return topics
}

// Get returns one topic's markdown body. Lookup is case-insensitive.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := content.ReadFile("content/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}
