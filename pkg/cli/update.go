package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running version, set at build time with
// -ldflags "-X github.com/Fepozopo/fxresize/pkg/cli.Version=1.2.3".
var Version = "0.1.0"

const repoSlug = "Fepozopo/fxresize"

var releasesURL = "https://api.github.com/repos/" + repoSlug + "/releases"

// githubRelease is the subset of the GitHub releases API we read.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// latestFromReleases picks the highest published, non-prerelease release
// whose tag (or name) contains a semantic version.
func latestFromReleases(releases []githubRelease) (*selfupdate.Release, bool) {
	var best *selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		v, err := semver.ParseTolerant(match)
		if match == "" || err != nil {
			continue
		}
		if best != nil && !v.GT(best.Version) {
			continue
		}
		asset := ""
		for _, a := range r.Assets {
			n := strings.ToLower(a.Name)
			if strings.Contains(n, "linux") || strings.Contains(n, "darwin") || strings.Contains(n, "windows") {
				asset = a.BrowserDownloadURL
				break
			}
			if asset == "" {
				asset = a.BrowserDownloadURL
			}
		}
		best = &selfupdate.Release{Version: v, AssetURL: asset}
	}
	return best, best != nil
}

func fetchReleases(ctx context.Context, url string) ([]githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}
	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}
	return releases, nil
}

// detectLatest asks go-github-selfupdate first and falls back to scanning the
// releases API, which tolerates tags like "fxresize-v1.2.3".
func detectLatest(ctx context.Context) (*selfupdate.Release, bool, error) {
	rel, found, err := selfupdate.DetectLatest(repoSlug)
	if err == nil && found {
		return rel, true, nil
	}
	logger.Debug("selfupdate detection failed, scanning releases", "err", err, "found", found)
	releases, err := fetchReleases(ctx, releasesURL)
	if err != nil {
		return nil, false, err
	}
	rel, found = latestFromReleases(releases)
	return rel, found, nil
}

// CheckForUpdates reports the latest release and, after confirmation read
// from in, replaces the running binary with it.
func CheckForUpdates(in *bufio.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)
	current, err := semver.ParseTolerant(Version)
	if err != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, err)
	}

	latest, found, err := detectLatest(context.Background())
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found {
		fmt.Fprintf(out, "No releases found for %s.\n", repoSlug)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)
	if !latest.Version.GT(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}

	answer, err := PromptLine(in, out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if a := strings.ToLower(answer); a != "y" && a != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s. Restart fxresize to use it.\n", latest.Version)
	return nil
}
