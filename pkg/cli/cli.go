package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/fxresize/pkg/resample"
)

const keyEsc = 0x1b

func usage(out io.Writer) {
	fmt.Fprintln(out, "Commands available:")
	fmt.Fprintln(out, "  p  - preview the resized image")
	fmt.Fprintln(out, "  o  - preview the original image")
	fmt.Fprintln(out, "  r  - resize again with a new width and height")
	fmt.Fprintln(out, "  s  - save the resized image")
	fmt.Fprintln(out, "  i  - show image info")
	fmt.Fprintln(out, "  u  - check for updates")
	fmt.Fprintln(out, "  h  - show this help message")
	fmt.Fprintln(out, "  q  - quit (ESC works too)")
}

// session is one loaded source image and its current resized version.
type session struct {
	path       string
	src, cur   *resample.Grid
	opts       resample.Options
	horizontal bool
	in         *bufio.Reader
	out        io.Writer
}

// resize rebuilds s.cur from the source. A zero width or height keeps the
// aspect ratio; in horizontal mode only the width is used.
func (s *session) resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	var (
		out *resample.Grid
		err error
	)
	if s.horizontal {
		if width == 0 {
			width = s.src.Cols
		}
		out, err = resample.ResizeWidth(s.src, width, &s.opts)
	} else {
		rows, cols := resample.TargetSize(s.src.Rows, s.src.Cols, width, height)
		out, err = resample.Resize(s.src, rows, cols, &s.opts)
	}
	if err != nil {
		return fmt.Errorf("resizing %s: %w", s.path, err)
	}
	s.cur = out
	return nil
}

func (s *session) preview(g *resample.Grid) {
	if err := PreviewImage(s.out, g.Image()); err != nil {
		logger.Debug("preview failed", "err", err)
	}
}

// view is the interactive viewer loop. It returns when the user quits or
// input ends.
func (s *session) view() error {
	s.preview(s.cur)
	fmt.Fprintln(s.out, GridInfo(s.cur))
	usage(s.out)
	for {
		line, err := PromptLine(s.in, s.out, "> ")
		if err != nil {
			return endOfInput(err)
		}
		if line == "" {
			continue
		}
		switch line[0] {
		case 'p':
			s.preview(s.cur)
			fmt.Fprintln(s.out, GridInfo(s.cur))
		case 'o':
			s.preview(s.src)
			fmt.Fprintln(s.out, GridInfo(s.src))
		case 'i':
			fmt.Fprintf(s.out, "Source: %s (%s)\nResized: %s\n", s.path, GridInfo(s.src), GridInfo(s.cur))
		case 'r':
			ans, err := PromptLine(s.in, s.out, "width height: ")
			if err != nil {
				return endOfInput(err)
			}
			w, h, err := parseSize(ans)
			if err != nil {
				fmt.Fprintf(s.out, "input validation error: %v\n", err)
				continue
			}
			if err := s.resize(w, h); err != nil {
				fmt.Fprintf(s.out, "resize error: %v\n", err)
				continue
			}
			s.preview(s.cur)
			fmt.Fprintln(s.out, GridInfo(s.cur))
		case 's':
			name, err := PromptLine(s.in, s.out, "Enter output filename: ")
			if err != nil {
				return endOfInput(err)
			}
			if name == "" {
				fmt.Fprintln(s.out, "no filename provided")
				continue
			}
			if err := SaveImage(name, s.cur.Image()); err != nil {
				fmt.Fprintf(s.out, "failed to write image: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "Saved to %s\n", name)
		case 'u':
			if err := CheckForUpdates(s.in, s.out); err != nil {
				fmt.Fprintf(s.out, "update check error: %v\n", err)
			}
		case 'h':
			usage(s.out)
		case 'q', keyEsc:
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// endOfInput ends the viewer quietly when stdin runs out, whichever prompt
// was waiting.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

// parseSize parses "W H" or "WxH".
func parseSize(s string) (width, height int, err error) {
	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(s), "x", " "))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 values: width height, got %q", s)
	}
	if width, err = strconv.Atoi(fields[0]); err != nil || width < 0 {
		return 0, 0, fmt.Errorf("invalid width: %q", fields[0])
	}
	if height, err = strconv.Atoi(fields[1]); err != nil || height < 0 {
		return 0, 0, fmt.Errorf("invalid height: %q", fields[1])
	}
	return width, height, nil
}

// Run parses args, resizes the input image and, unless -view=false, opens
// the viewer reading keys from stdin.
func Run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := LoadConfig(".env")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("fxresize", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		width      = fs.Int("w", cfg.Width, "output width, 0 keeps the aspect ratio")
		height     = fs.Int("h", cfg.Height, "output height, 0 keeps the aspect ratio")
		output     = fs.String("o", "", "write the resized image to this file")
		horizontal = fs.Bool("horizontal", false, "scale columns only, keep the source height")
		workers    = fs.Int("workers", cfg.Workers, "number of parallel row bands")
		overflow   = fs.String("overflow", cfg.Overflow.String(), "8 bit overflow handling: wrap or saturate")
		align      = fs.String("align", cfg.Align.String(), "pixel alignment: corner or center")
		view       = fs.Bool("view", true, "preview the result and wait for a key")
		verbose    = fs.Bool("v", cfg.Debug, "debug logging to stderr")
		update     = fs.Bool("update", false, "check for a newer release and exit")
		version    = fs.Bool("version", false, "print the version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fxresize [flags] <image>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(os.Stderr, *verbose)

	in := bufio.NewReader(stdin)
	switch {
	case *version:
		fmt.Fprintln(stdout, Version)
		return nil
	case *update:
		return CheckForUpdates(in, stdout)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input image")
	}
	opts := resample.Options{Workers: *workers}
	if opts.Overflow, err = parseOverflow(*overflow); err != nil {
		return err
	}
	if opts.Align, err = parseAlign(*align); err != nil {
		return err
	}

	path := fs.Arg(0)
	src, _, err := LoadGray(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	logger.Debug("loaded", "path", path, "rows", src.Rows, "cols", src.Cols)

	s := &session{path: path, src: src, opts: opts, horizontal: *horizontal, in: in, out: stdout}
	if err := s.resize(*width, *height); err != nil {
		return err
	}
	if *output != "" {
		if err := SaveImage(*output, s.cur.Image()); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		fmt.Fprintf(stdout, "Saved to %s\n", *output)
	}
	if !*view {
		return nil
	}
	return s.view()
}

// RunCLI runs the command with the process arguments and exits non-zero on
// failure.
func RunCLI() {
	err := Run(os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fxresize: %v\n", err)
		os.Exit(1)
	}
}
