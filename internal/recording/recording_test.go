package recording

import (
	"testing"
	"time"
)

func TestFileRecord_Timestamp(t *testing.T) {
	modified := time.Date(2025, 8, 21, 15, 28, 45, 0, time.UTC)
	created := time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)

	local := FileRecord{Name: "a.mp3", Source: SourceLocal, ModifiedAt: modified, CreatedAt: created}
	if got := local.Timestamp(); !got.Equal(modified) {
		t.Errorf("local Timestamp() = %v, want %v", got, modified)
	}

	cloud := FileRecord{Name: "a.mp3", Source: SourceCloud, ModifiedAt: modified, CreatedAt: created}
	if got := cloud.Timestamp(); !got.Equal(created) {
		t.Errorf("cloud Timestamp() = %v, want %v", got, created)
	}
}

func TestFileRecord_Locator(t *testing.T) {
	local := FileRecord{Source: SourceLocal, Path: "/data/recordings/a.mp3", URL: "https://x/a.mp3"}
	if got := local.Locator(); got != "/data/recordings/a.mp3" {
		t.Errorf("local Locator() = %q", got)
	}

	cloud := FileRecord{Source: SourceCloud, Path: "/data/recordings/a.mp3", URL: "https://x/a.mp3"}
	if got := cloud.Locator(); got != "https://x/a.mp3" {
		t.Errorf("cloud Locator() = %q", got)
	}
}
