package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var prURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// PRRef identifies a pull request by owner, repo and number
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePRURL extracts a PRRef from a GitHub PR URL. Returns false for
// anything that is not of the form https://github.com/{owner}/{repo}/pull/{n}.
func ParsePRURL(raw string) (PRRef, bool) {
	m := prURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return PRRef{}, false
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return PRRef{}, false
	}
	return PRRef{Owner: m[1], Repo: m[2], Number: number}, true
}

// URL returns the canonical https form. For canonical input URLs,
// ParsePRURL and URL round-trip.
func (r PRRef) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", r.Owner, r.Repo, r.Number)
}

func (r PRRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}
