package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal viewer for resized grids.
//
// Backends, in order of preference:
//   - iTerm2 style OSC 1337 inline images (iTerm2, WezTerm, Warp, VSCode, ...)
//   - the kitty graphics protocol (kitty, ghostty, Konsole)
//   - chafa, if it is on PATH, for everything else
//
// PREVIEW_BACKEND=inline|kitty|chafa forces one backend.

var errNoPreview = errors.New("no supported terminal preview backend")

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "vscode")
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether some preview backend is likely to work.
func PreviewSupported() bool {
	return isInlineImageCapable() || isKitty() || hasChafa()
}

// previewSize is the placement of a preview in character cells.
type previewSize struct {
	Cols, Rows              int
	PixelWidth, PixelHeight int
}

// computePreviewSize fits an image of w x h pixels into at most 80x40 cells,
// assuming 8x16 pixel cells, without upscaling.
func computePreviewSize(w, h int) previewSize {
	const (
		charW, charH     = 8, 16
		minCols, minRows = 6, 3
		maxCols, maxRows = 80, 40
	)
	if w <= 0 || h <= 0 {
		return previewSize{Cols: minCols, Rows: minRows, PixelWidth: minCols * charW, PixelHeight: minRows * charH}
	}
	s := math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * s / charW))
	rows := int(math.Round(float64(h) * s / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return previewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// PreviewImage shows img in the terminal attached to w.
func PreviewImage(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	b := img.Bounds()
	return previewPNG(w, buf.Bytes(), computePreviewSize(b.Dx(), b.Dy()))
}

func previewPNG(w io.Writer, blob []byte, size previewSize) error {
	if len(blob) == 0 {
		return errors.New("empty image blob")
	}
	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	logger.Debug("preview", "backend", backend, "bytes", len(blob), "cols", size.Cols, "rows", size.Rows)
	switch {
	case backend == "inline" || backend == "iterm" || (backend == "" && isInlineImageCapable()):
		return sendInlineImage(w, blob, size)
	case backend == "kitty" || (backend == "" && isKitty()):
		return sendKittyImage(w, blob, size)
	case backend == "chafa" || (backend == "" && hasChafa()):
		return sendChafaImage(w, blob, size)
	}
	return errNoPreview
}

// sendInlineImage writes the iTerm2 OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, blob []byte, size previewSize) error {
	enc := base64.StdEncoding.EncodeToString(blob)
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx;", len(blob), size.PixelWidth, size.PixelHeight)
	if _, err := io.WriteString(w, "\x1b]1337;File=name=preview.png;inline=1;"+meta+":"+enc+"\a\n"); err != nil {
		return err
	}
	return nil
}

// sendKittyImage writes the kitty graphics protocol sequence, base64 payload
// split into 4096 byte chunks. Only the first chunk carries the placement.
func sendKittyImage(w io.Writer, blob []byte, size previewSize) error {
	const chunkSize = 4096
	enc := base64.StdEncoding.EncodeToString(blob)
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var seq string
		if pos == 0 {
			// a=T transmit and display, f=100 PNG, q=2 suppress responses.
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, enc[pos:end])
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func sendChafaImage(w io.Writer, blob []byte, size previewSize) error {
	if !hasChafa() {
		return errors.New("chafa not found in PATH")
	}
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(blob)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	return nil
}
