package docs

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("no topics embedded")
	}
	for _, want := range []string{"getting-started", "permissions", "progress", "stats"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("topic %q missing from %v", want, topics)
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get("Progress")
	if !ok || body == "" {
		t.Fatal("Get(progress) failed")
	}
	if _, ok := Get("no-such-topic"); ok {
		t.Fatal("expected miss for unknown topic")
	}
	if _, ok := Get("  "); ok {
		t.Fatal("expected miss for blank topic")
	}
}
