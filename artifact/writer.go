// Package artifact persists the outputs of one browse invocation.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/use-agent/summarizer/models"
)

// TimestampLayout is the YYYYMMDD_HHMMSS component shared by both files.
const TimestampLayout = "20060102_150405"

// Writer writes content and screenshot artifacts into a fixed directory.
// Names have one-second resolution: two calls in the same second collide,
// and the second one fails instead of overwriting.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer for dir. The directory is created on first use.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// ContentName and ScreenshotName return the file names for timestamp ts.
func ContentName(ts string) string    { return fmt.Sprintf("scraped_content_%s.txt", ts) }
func ScreenshotName(ts string) string { return fmt.Sprintf("final_page_%s.png", ts) }

// Persist writes content and screenshot under a single timestamp taken at
// call time. Any failure is returned as models.ErrFileWrite.
func (w *Writer) Persist(content string, screenshot []byte) (models.Artifact, error) {
	ts := w.now().Format(TimestampLayout)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return models.Artifact{}, models.NewScrapeError(models.ErrCodeFileWrite, "create artifact directory", err)
	}

	contentPath := filepath.Join(w.dir, ContentName(ts))
	screenshotPath := filepath.Join(w.dir, ScreenshotName(ts))

	if err := writeNew(contentPath, []byte(content)); err != nil {
		return models.Artifact{}, models.NewScrapeError(models.ErrCodeFileWrite, "write content artifact", err)
	}
	if err := writeNew(screenshotPath, screenshot); err != nil {
		// Keep the pair consistent: no orphan content file.
		_ = os.Remove(contentPath)
		return models.Artifact{}, models.NewScrapeError(models.ErrCodeFileWrite, "write screenshot artifact", err)
	}

	slog.Info("artifacts written", "content", contentPath, "screenshot", screenshotPath)
	return models.Artifact{
		ContentPath:    contentPath,
		ScreenshotPath: screenshotPath,
		Timestamp:      ts,
	}, nil
}

// writeNew creates path exclusively and writes data to it.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			slog.Warn("artifact name collision", "path", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
