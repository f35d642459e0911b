package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/fxresize/pkg/resample"
)

// Config holds the defaults for a resize run. Values come from the process
// environment first, then from an optional .env file; command-line flags
// override both.
type Config struct {
	Width    int // FXRESIZE_WIDTH, 800 when unset
	Height   int // FXRESIZE_HEIGHT, 0 keeps the aspect ratio
	Workers  int // FXRESIZE_WORKERS
	Overflow resample.Overflow
	Align    resample.Align
	Debug    bool // FXRESIZE_DEBUG or PREVIEW_DEBUG
}

// DefaultConfig is 800 columns wide with a serial sweep.
func DefaultConfig() Config {
	return Config{Width: 800, Workers: 1}
}

// LoadConfig reads the configuration. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	file := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		}
		if m != nil {
			file = m
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	cfg := DefaultConfig()
	for _, it := range []struct {
		key string
		dst *int
	}{
		{"FXRESIZE_WIDTH", &cfg.Width},
		{"FXRESIZE_HEIGHT", &cfg.Height},
		{"FXRESIZE_WORKERS", &cfg.Workers},
	} {
		v, ok := lookup(it.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", it.key, v)
		}
		*it.dst = n
	}

	if v, ok := lookup("FXRESIZE_OVERFLOW"); ok {
		o, err := parseOverflow(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Overflow = o
	}
	if v, ok := lookup("FXRESIZE_ALIGN"); ok {
		a, err := parseAlign(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Align = a
	}
	for _, key := range []string{"FXRESIZE_DEBUG", "PREVIEW_DEBUG"} {
		if v, ok := lookup(key); ok && (v == "1" || strings.EqualFold(v, "true")) {
			cfg.Debug = true
		}
	}
	return cfg, nil
}

func parseOverflow(s string) (resample.Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return resample.Wrap, nil
	case "saturate", "clamp":
		return resample.Saturate, nil
	}
	return 0, fmt.Errorf("invalid overflow mode %q (want wrap or saturate)", s)
}

func parseAlign(s string) (resample.Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "corner":
		return resample.Corner, nil
	case "center", "centre":
		return resample.Center, nil
	}
	return 0, fmt.Errorf("invalid alignment %q (want corner or center)", s)
}
