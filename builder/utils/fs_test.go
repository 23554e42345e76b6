package utils

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"corpus/Guide.md", "corpus/guide.md"},
		{`corpus\notes\A.txt`, "corpus/notes/a.txt"},
		{"plain.txt", "plain.txt"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.input); got != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsCorpusFile(t *testing.T) {
	tests := map[string]bool{
		"a.md":       true,
		"B.MD":       true,
		"c.markdown": true,
		"d.txt":      true,
		"e.html":     false,
		"noext":      false,
	}
	for path, want := range tests {
		if got := IsCorpusFile(path); got != want {
			t.Errorf("IsCorpusFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWalkCorpus(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"corpus/b.md",
		"corpus/a.txt",
		"corpus/sub/c.markdown",
		"corpus/image.png",
		"corpus/.git/d.md",
	} {
		if err := afero.WriteFile(fs, p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := WalkCorpus(fs, "corpus")
	if err != nil {
		t.Fatalf("WalkCorpus() error = %v", err)
	}
	want := []string{"corpus/a.txt", "corpus/b.md", "corpus/sub/c.markdown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WalkCorpus() = %v, want %v", got, want)
	}
}

func TestWriteFileVFS(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteFileVFS(fs, "out/deep/search.bin", []byte("data")); err != nil {
		t.Fatalf("WriteFileVFS() error = %v", err)
	}
	data, err := afero.ReadFile(fs, "out/deep/search.bin")
	if err != nil || string(data) != "data" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestGetSlice(t *testing.T) {
	m := map[string]interface{}{
		"list":   []interface{}{"go", 1},
		"single": "solo",
		"empty":  "",
	}
	if got := GetSlice(m, "list"); !reflect.DeepEqual(got, []string{"go", "1"}) {
		t.Errorf("GetSlice(list) = %v", got)
	}
	if got := GetSlice(m, "single"); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Errorf("GetSlice(single) = %v", got)
	}
	if got := GetSlice(m, "empty"); got != nil {
		t.Errorf("GetSlice(empty) = %v, want nil", got)
	}
	if got := GetString(m, "missing"); got != "" {
		t.Errorf("GetString(missing) = %q, want empty", got)
	}
}
