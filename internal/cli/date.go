package cli

import (
	"fmt"
	"strings"

	"tablero-cli/internal/model"
)

// parseDateFlag parses an optional YYYY-MM-DD flag; empty means unset.
func parseDateFlag(name, value string) (*model.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}
