package cli

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Fepozopo/fxresize/pkg/resample"
)

func testGrid() *resample.Grid {
	g := resample.NewGrid(6, 9)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			g.Set(r, c, uint8(r*40+c*3))
		}
	}
	return g
}

func TestSaveLoadLossless(t *testing.T) {
	g := testGrid()
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp", "out.tiff", "out.TIF", "out.unknown"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, g.Image()); err != nil {
			t.Fatalf("SaveImage(%s): %v", name, err)
		}
		got, _, err := LoadGray(path)
		if err != nil {
			t.Fatalf("LoadGray(%s): %v", name, err)
		}
		if diff := cmp.Diff(g, got); diff != "" {
			t.Errorf("%s round trip (-want,+got):\n%v", name, diff)
		}
	}
}

func TestSaveLoadFormats(t *testing.T) {
	g := testGrid()
	dir := t.TempDir()
	for _, c := range []struct {
		name, format string
	}{
		{"a.png", "png"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.gif", "gif"},
		{"a.bmp", "bmp"},
		{"a.tiff", "tiff"},
	} {
		path := filepath.Join(dir, c.name)
		if err := SaveImage(path, g.Image()); err != nil {
			t.Fatalf("SaveImage(%s): %v", c.name, err)
		}
		got, format, err := LoadGray(path)
		if err != nil {
			t.Fatalf("LoadGray(%s): %v", c.name, err)
		}
		if format != c.format {
			t.Errorf("%s: format = %q, want %q", c.name, format, c.format)
		}
		if got.Rows != g.Rows || got.Cols != g.Cols {
			t.Errorf("%s: size %dx%d, want %dx%d", c.name, got.Cols, got.Rows, g.Cols, g.Rows)
		}
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world \nlast"))
	got, err := PromptLine(r, &out, "name: ")
	if err != nil || got != "hello world" {
		t.Fatalf("PromptLine = %q, %v", got, err)
	}
	if out.String() != "name: " {
		t.Errorf("prompt = %q", out.String())
	}
	got, err = PromptLine(r, &out, "")
	if err != nil || got != "last" {
		t.Fatalf("PromptLine at EOF = %q, %v", got, err)
	}
	if _, err := PromptLine(r, &out, ""); err == nil {
		t.Fatal("expected error after input is exhausted")
	}
}
