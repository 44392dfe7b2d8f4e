package docs

import (
	"strings"
	"testing"
)

func TestTopicsHaveTitlesAndBodies(t *testing.T) {
	t.Parallel()

	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for i, tp := range topics {
		if i > 0 && topics[i-1].Name >= tp.Name {
			t.Fatalf("topics not sorted: %v", topics)
		}
		if tp.Title == "" || tp.Title == tp.Name {
			t.Fatalf("topic %q has no heading", tp.Name)
		}
		body, ok := Get(strings.ToUpper(tp.Name))
		if !ok || !strings.Contains(body, tp.Title) {
			t.Fatalf("Get(%q) = %v", tp.Name, ok)
		}
	}
}

func TestGetRejectsUnknownAndPaths(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  ", "nope", "../docs", "content/editing"} {
		if _, ok := Get(in); ok {
			t.Fatalf("Get(%q) should fail", in)
		}
	}
}
