package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got := Generate()
	if !strings.HasPrefix(got, "sync-") {
		t.Errorf("ID %q missing sync- prefix", got)
	}
	if parts := strings.Split(got, "-"); len(parts) != 3 {
		t.Errorf("ID %q should have 3 parts", got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := Generate()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
