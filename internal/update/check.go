package update

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const releaseURL = "https://api.github.com/repos/plugsmith/plugsmith/releases/latest"

// Release holds the outcome of an update check.
type Release struct {
	Latest  string // latest version tag (e.g. "0.3.0")
	Current string // current running version
	URL     string // URL to the release page
}

// NeedsUpdate returns true if the latest version is newer than current.
func (r *Release) NeedsUpdate() bool {
	return r != nil && compareVersions(r.Latest, r.Current) > 0
}

// Check queries GitHub for the latest plugsmith release and compares it with
// the current version. It returns nil on any error (network failure, bad
// JSON, etc.) so callers can safely skip update notices.
func Check(currentVersion string) *Release {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var rel struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil
	}

	return &Release{
		Latest:  strings.TrimPrefix(rel.TagName, "v"),
		Current: strings.TrimPrefix(currentVersion, "v"),
		URL:     rel.HTMLURL,
	}
}

// compareVersions compares two semver-ish strings (major.minor.patch).
// Returns >0 if a > b, <0 if a < b, 0 if equal.
func compareVersions(a, b string) int {
	ap := parseVersion(a)
	bp := parseVersion(b)
	for i := 0; i < 3; i++ {
		if ap[i] != bp[i] {
			return ap[i] - bp[i]
		}
	}
	return 0
}

// parseVersion splits "1.2.3" into [1, 2, 3]. Missing parts default to 0.
func parseVersion(v string) [3]int {
	var parts [3]int
	for i, s := range strings.SplitN(v, ".", 3) {
		if i >= 3 {
			break
		}
		n, _ := strconv.Atoi(s)
		parts[i] = n
	}
	return parts
}
