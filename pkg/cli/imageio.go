package cli

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/fxresize/pkg/resample"
)

// PromptLine writes prompt to out and reads one line from r. The result is
// trimmed of surrounding whitespace.
func PromptLine(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage decodes an image file. Supports PNG, JPEG, GIF, BMP, TIFF and
// WebP. The returned format is the decoder name, e.g. "png".
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// LoadGray decodes an image file and converts it to a grayscale grid.
func LoadGray(path string) (*resample.Grid, string, error) {
	img, format, err := LoadImage(path)
	if err != nil {
		return nil, "", err
	}
	return resample.FromImage(img), format, nil
}

// SaveImage encodes img to path using the format implied by the extension.
// Supports .png, .jpg/.jpeg, .gif, .bmp and .tif/.tiff; anything else is
// written as PNG.
func SaveImage(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := encodeImage(w, img, formatFromPath(path)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return w.Flush()
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return "png"
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return png.Encode(w, img)
}

// GridInfo returns a short description of a grid.
func GridInfo(g *resample.Grid) string {
	if g == nil {
		return "no image"
	}
	st := resample.Summarize(g)
	return fmt.Sprintf("Gray8, Width: %d, Height: %d, Min: %d, Max: %d, Mean: %.1f", g.Cols, g.Rows, st.Min, st.Max, st.Mean)
}
