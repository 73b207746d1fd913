package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	mem := afero.NewMemMapFs()
	files := map[string]string{
		"/work/README.md":                "# Title\nline 2\nline 3\n",
		"/work/main.go":                  "package main\n",
		"/work/pkg/util.GO":              "package pkg\n",
		"/work/pkg/data.json":            `{"a": 1}`,
		"/work/.git/HEAD":                "ref: refs/heads/main\n",
		"/work/node_modules/x/index.js":  "module.exports = 1\n",
		"/work/docs/guide/intro.md":      "intro\n",
		"/work/docs/guide/.venv/skip.md": "skip\n",
	}
	for p, content := range files {
		if err := afero.WriteFile(mem, p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	w, err := NewWorkspace(mem, "/work")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	return w
}

func TestWorkspace_ChdirResolvesRelativePaths(t *testing.T) {
	w := newTestWorkspace(t)

	got, err := w.Chdir("pkg")
	if err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	if got != "/work/pkg" || w.Getwd() != "/work/pkg" {
		t.Errorf("cwd = %q / %q, want /work/pkg", got, w.Getwd())
	}

	entries, err := w.List(".")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"data.json", "util.GO"}) {
		t.Errorf("names = %v", names)
	}

	if _, err := w.Chdir("../main.go"); err == nil {
		t.Error("expected chdir into a file to fail")
	}
	if _, err := w.Chdir("/nope"); err == nil {
		t.Error("expected chdir into a missing directory to fail")
	}
	if w.Getwd() != "/work/pkg" {
		t.Errorf("failed chdir changed cwd to %q", w.Getwd())
	}
}

func TestWorkspace_List(t *testing.T) {
	w := newTestWorkspace(t)
	entries, err := w.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["pkg"].Type != "directory" || byName["pkg"].Size != 0 {
		t.Errorf("pkg entry = %+v", byName["pkg"])
	}
	if byName["main.go"].Type != "file" || byName["main.go"].Size != int64(len("package main\n")) {
		t.Errorf("main.go entry = %+v", byName["main.go"])
	}
}

func TestWorkspace_Info(t *testing.T) {
	w := newTestWorkspace(t)

	info, err := w.Info("pkg/data.json")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !info.Exists || info.Type != "file" || info.AbsolutePath != "/work/pkg/data.json" {
		t.Errorf("info = %+v", info)
	}
	if info.MIME != "application/json" {
		t.Errorf("MIME = %q", info.MIME)
	}
	if info.SizeHuman == "" {
		t.Error("expected human-readable size")
	}

	missing, err := w.Info("missing.txt")
	if err != nil {
		t.Fatalf("Info on missing path: %v", err)
	}
	if missing.Exists || missing.AbsolutePath != "/work/missing.txt" {
		t.Errorf("missing = %+v", missing)
	}
}

func TestWorkspace_Mkdir(t *testing.T) {
	w := newTestWorkspace(t)
	got, err := w.Mkdir("out/a/b")
	if err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if got != filepath.Join("/work", "out/a/b") {
		t.Errorf("path = %q", got)
	}
	if _, err := w.Mkdir("out/a/b"); err != nil {
		t.Errorf("Mkdir on existing directory: %v", err)
	}
}

func TestWorkspace_Read(t *testing.T) {
	w := newTestWorkspace(t)

	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, "# Title\nline 2\nline 3\n"},
		{2, 0, "line 2\nline 3\n"},
		{2, 2, "line 2\n"},
		{1, 99, "# Title\nline 2\nline 3\n"},
		{3, 2, ""},
	}
	for _, tt := range tests {
		got, err := w.Read("README.md", tt.start, tt.end)
		if err != nil {
			t.Fatalf("Read(%d,%d): %v", tt.start, tt.end, err)
		}
		if got.Content != tt.want {
			t.Errorf("Read(%d,%d) = %q, want %q", tt.start, tt.end, got.Content, tt.want)
		}
	}

	_, err := w.Read("nope.txt", 0, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := w.Read("pkg", 0, 0); err == nil {
		t.Error("expected reading a directory to fail")
	}
}

func TestWorkspace_Preview(t *testing.T) {
	w := newTestWorkspace(t)

	p, err := w.Preview("README.md", 1)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if p.Preview != "# Title\n" || p.TotalLines != 3 {
		t.Errorf("preview = %+v", p)
	}

	p, err = w.Preview("README.md", 0)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if p.TotalLines != 3 || p.Preview != "# Title\nline 2\nline 3\n" {
		t.Errorf("default preview = %+v", p)
	}
}

func TestWorkspace_ListAllSkipsExcludedDirs(t *testing.T) {
	w := newTestWorkspace(t)

	list, err := w.ListAll(".", nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	var paths []string
	for _, f := range list.Files {
		paths = append(paths, f.Path)
	}
	slices.Sort(paths)
	want := []string{
		"/work/README.md",
		"/work/docs/guide/intro.md",
		"/work/main.go",
		"/work/pkg/data.json",
		"/work/pkg/util.GO",
	}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v\nwant %v", paths, want)
	}
	if list.TotalFiles != len(want) {
		t.Errorf("TotalFiles = %d", list.TotalFiles)
	}
	if !slices.Equal(list.ExcludedDirs, DefaultExcludeDirs) {
		t.Errorf("ExcludedDirs = %v", list.ExcludedDirs)
	}

	custom, err := w.ListAll(".", []string{"pkg"})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	for _, f := range custom.Files {
		if filepath.Dir(f.Path) == "/work/pkg" {
			t.Errorf("excluded dir listed: %s", f.Path)
		}
	}
}

func TestWorkspace_FindByType(t *testing.T) {
	w := newTestWorkspace(t)

	for _, ext := range []string{"go", ".go", ".Go"} {
		m, err := w.FindByType(".", ext)
		if err != nil {
			t.Fatalf("FindByType(%q): %v", ext, err)
		}
		if m.TotalMatches != 2 || m.FileType[0] != '.' {
			t.Errorf("FindByType(%q) = %d matches, type %q", ext, m.TotalMatches, m.FileType)
		}
	}

	all, err := w.FindByType(".", "")
	if err != nil {
		t.Fatalf("FindByType: %v", err)
	}
	if all.TotalMatches != 5 {
		t.Errorf("empty type matched %d files, want 5", all.TotalMatches)
	}
}

func TestNewWorkspace_RootMustBeDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	_ = afero.WriteFile(mem, "/file", []byte("x"), 0o644)
	if _, err := NewWorkspace(mem, "/file"); err == nil {
		t.Error("expected error for file root")
	}
	if _, err := NewWorkspace(mem, "/missing"); err == nil {
		t.Error("expected error for missing root")
	}
}
