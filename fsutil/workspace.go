// Package fsutil backs the file-browsing tools: directory listing, file
// metadata, ranged reads and recursive search, all relative to a mutable
// working directory.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// DefaultExcludeDirs are skipped by recursive listings unless overridden.
var DefaultExcludeDirs = []string{".git", "node_modules", "__pycache__", ".venv", "venv"}

// DefaultPreviewLines is the preview length when the caller gives none.
const DefaultPreviewLines = 10

// Workspace resolves relative paths against its own working directory, so
// changing directory never touches the process cwd. It is safe for
// concurrent use.
type Workspace struct {
	fs afero.Fs

	mu  sync.RWMutex
	cwd string
}

// NewWorkspace opens a workspace on fsys rooted at root.
func NewWorkspace(fsys afero.Fs, root string) (*Workspace, error) {
	if _, isOS := fsys.(*afero.OsFs); isOS {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		root = abs
	}
	root = filepath.Clean(root)

	ok, err := afero.IsDir(fsys, root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("workspace root %s is not a directory", root)
	}
	return &Workspace{fs: fsys, cwd: root}, nil
}

// Entry is one item of a directory listing.
type Entry struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"` // "file" or "directory"
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified"`
}

// Info describes a path. Only Exists and AbsolutePath are set when the
// path does not exist.
type Info struct {
	Exists       bool      `json:"exists"`
	AbsolutePath string    `json:"absolute_path"`
	Type         string    `json:"type,omitempty"`
	Size         int64     `json:"size,omitempty"`
	SizeHuman    string    `json:"size_human,omitempty"`
	MIME         string    `json:"mime,omitempty"`
	Modified     time.Time `json:"modified,omitzero"`
}

// FileContent is the result of a ranged read.
type FileContent struct {
	Content  string `json:"content"`
	Metadata Info   `json:"metadata"`
}

// Preview is the head of a file.
type Preview struct {
	Preview    string `json:"preview"`
	TotalLines int    `json:"total_lines"`
	Metadata   Info   `json:"metadata"`
}

// FileEntry is one file found by a recursive listing.
type FileEntry struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Type     string    `json:"type"` // extension including the dot, or ""
	Modified time.Time `json:"modified"`
}

// FileList is the result of ListAll.
type FileList struct {
	Files        []FileEntry `json:"files"`
	TotalFiles   int         `json:"total_files"`
	TotalSize    int64       `json:"total_size"`
	TotalHuman   string      `json:"total_size_human"`
	ExcludedDirs []string    `json:"excluded_dirs"`
}

// TypeMatches is the result of FindByType.
type TypeMatches struct {
	Files        []FileEntry `json:"files"`
	TotalMatches int         `json:"total_matches"`
	FileType     string      `json:"file_type"`
}

// Getwd returns the workspace working directory.
func (w *Workspace) Getwd() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cwd
}

// Resolve makes path absolute against the working directory.
func (w *Workspace) Resolve(path string) string {
	if path == "" {
		path = "."
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(w.Getwd(), path)
}

// Chdir changes the working directory and returns the new one.
func (w *Workspace) Chdir(path string) (string, error) {
	target := w.Resolve(path)
	ok, err := afero.IsDir(w.fs, target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("not a directory: %s", target)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cwd = target
	return target, nil
}

// List returns the direct children of path.
func (w *Workspace) List(path string) ([]Entry, error) {
	infos, err := afero.ReadDir(w.fs, w.Resolve(path))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		e := Entry{Name: fi.Name(), Type: kind(fi), Modified: fi.ModTime()}
		if !fi.IsDir() {
			e.Size = fi.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Info describes path. A missing path is not an error.
func (w *Workspace) Info(path string) (Info, error) {
	abs := w.Resolve(path)
	fi, err := w.fs.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{Exists: false, AbsolutePath: abs}, nil
	}
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Exists:       true,
		AbsolutePath: abs,
		Type:         kind(fi),
		Modified:     fi.ModTime(),
	}
	if !fi.IsDir() {
		info.Size = fi.Size()
		info.SizeHuman = humanize.Bytes(uint64(fi.Size()))
		info.MIME = w.detectMIME(abs)
	}
	return info, nil
}

func (w *Workspace) detectMIME(path string) string {
	f, err := w.fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	return mt.String()
}

// Mkdir creates path and any missing parents. An existing directory is fine.
func (w *Workspace) Mkdir(path string) (string, error) {
	abs := w.Resolve(path)
	if err := w.fs.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}
	return abs, nil
}

// Read returns lines startLine..endLine (1-based, inclusive) of path.
// endLine <= 0 reads to the end of the file; startLine < 1 means 1.
// Line terminators are preserved.
func (w *Workspace) Read(path string, startLine, endLine int) (FileContent, error) {
	info, lines, err := w.readLines(path)
	if err != nil {
		return FileContent{}, err
	}

	if startLine < 1 {
		startLine = 1
	}
	if endLine <= 0 || endLine > len(lines) {
		endLine = len(lines)
	}
	var content string
	if startLine <= endLine {
		content = strings.Join(lines[startLine-1:endLine], "")
	}
	return FileContent{Content: content, Metadata: info}, nil
}

// Preview returns the first n lines of path (DefaultPreviewLines if n <= 0)
// and the file's total line count.
func (w *Workspace) Preview(path string, n int) (Preview, error) {
	info, lines, err := w.readLines(path)
	if err != nil {
		return Preview{}, err
	}
	if n <= 0 {
		n = DefaultPreviewLines
	}
	head := lines
	if n < len(lines) {
		head = lines[:n]
	}
	return Preview{
		Preview:    strings.Join(head, ""),
		TotalLines: len(lines),
		Metadata:   info,
	}, nil
}

func (w *Workspace) readLines(path string) (Info, []string, error) {
	info, err := w.Info(path)
	if err != nil {
		return Info{}, nil, err
	}
	if !info.Exists {
		return Info{}, nil, fmt.Errorf("file not found: %s: %w", path, fs.ErrNotExist)
	}
	if info.Type == "directory" {
		return Info{}, nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := afero.ReadFile(w.fs, info.AbsolutePath)
	if err != nil {
		return Info{}, nil, err
	}
	return info, splitLines(string(data)), nil
}

// splitLines splits after each newline, keeping terminators. A trailing
// newline does not start an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ListAll walks path recursively, skipping directories whose name is in
// exclude (DefaultExcludeDirs when exclude is nil).
func (w *Workspace) ListAll(path string, exclude []string) (FileList, error) {
	if exclude == nil {
		exclude = DefaultExcludeDirs
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, d := range exclude {
		skip[d] = struct{}{}
	}

	root := w.Resolve(path)
	list := FileList{Files: []FileEntry{}, ExcludedDirs: exclude}
	err := afero.Walk(w.fs, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if _, ok := skip[fi.Name()]; ok && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		list.Files = append(list.Files, FileEntry{
			Path:     p,
			Name:     fi.Name(),
			Size:     fi.Size(),
			Type:     filepath.Ext(fi.Name()),
			Modified: fi.ModTime(),
		})
		list.TotalSize += fi.Size()
		return nil
	})
	if err != nil {
		return FileList{}, err
	}
	list.TotalFiles = len(list.Files)
	list.TotalHuman = humanize.Bytes(uint64(list.TotalSize))
	return list, nil
}

// FindByType lists files under path whose extension matches fileType,
// case-insensitively. A missing leading dot is added; an empty fileType
// matches every file.
func (w *Workspace) FindByType(path, fileType string) (TypeMatches, error) {
	all, err := w.ListAll(path, nil)
	if err != nil {
		return TypeMatches{}, err
	}
	if fileType == "" {
		return TypeMatches{Files: all.Files, TotalMatches: len(all.Files)}, nil
	}
	if !strings.HasPrefix(fileType, ".") {
		fileType = "." + fileType
	}

	matches := []FileEntry{}
	for _, f := range all.Files {
		if strings.EqualFold(f.Type, fileType) {
			matches = append(matches, f)
		}
	}
	return TypeMatches{Files: matches, TotalMatches: len(matches), FileType: fileType}, nil
}

func kind(fi os.FileInfo) string {
	if fi.IsDir() {
		return "directory"
	}
	return "file"
}
