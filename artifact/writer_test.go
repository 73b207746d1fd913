package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/summarizer/models"
)

// fixedClock returns the times in order, repeating the last one.
func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestPersist_SharedTimestamp(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = fixedClock(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))

	a, err := w.Persist("hello", []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	if a.Timestamp != "20260314_092653" {
		t.Errorf("timestamp = %q", a.Timestamp)
	}
	if a.ContentPath != filepath.Join(dir, "scraped_content_20260314_092653.txt") {
		t.Errorf("content path = %q", a.ContentPath)
	}
	if a.ScreenshotPath != filepath.Join(dir, "final_page_20260314_092653.png") {
		t.Errorf("screenshot path = %q", a.ScreenshotPath)
	}
	if !strings.Contains(a.ContentPath, a.Timestamp) || !strings.Contains(a.ScreenshotPath, a.Timestamp) {
		t.Error("both paths must carry the same timestamp")
	}

	if b, _ := os.ReadFile(a.ContentPath); string(b) != "hello" {
		t.Errorf("content = %q", b)
	}
	if b, _ := os.ReadFile(a.ScreenshotPath); len(b) != 4 {
		t.Errorf("screenshot length = %d", len(b))
	}
}

func TestPersist_OneSecondApartDoNotCollide(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	w := NewWriter(t.TempDir())
	w.now = fixedClock(base, base.Add(time.Second))

	a1, err := w.Persist("one", nil)
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}
	a2, err := w.Persist("two", nil)
	if err != nil {
		t.Fatalf("second Persist: %v", err)
	}

	if a1.ContentPath == a2.ContentPath || a1.ScreenshotPath == a2.ScreenshotPath {
		t.Errorf("expected distinct names, got %+v and %+v", a1, a2)
	}
}

func TestPersist_SameSecondCollisionFails(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	w := NewWriter(t.TempDir())
	w.now = fixedClock(base)

	first, err := w.Persist("one", nil)
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}
	_, err = w.Persist("two", nil)

	if !errors.Is(err, models.ErrFileWrite) {
		t.Fatalf("expected ErrFileWrite, got %v", err)
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("expected fs.ErrExist cause, got %v", err)
	}
	if b, _ := os.ReadFile(first.ContentPath); string(b) != "one" {
		t.Errorf("first artifact was overwritten: %q", b)
	}
}

func TestPersist_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	a, err := NewWriter(dir).Persist("x", nil)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if filepath.Dir(a.ContentPath) != dir {
		t.Errorf("content written to %q, want %q", a.ContentPath, dir)
	}
}

func TestPersist_UnwritableDirectory(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewWriter(filepath.Join(blocker, "out")).Persist("x", nil)
	if !errors.Is(err, models.ErrFileWrite) {
		t.Fatalf("expected ErrFileWrite, got %v", err)
	}
}
