package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	goversion "github.com/hashicorp/go-version"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// while scanning feed results.
type versionCache struct {
	parsed map[string]*goversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{parsed: map[string]*goversion.Version{}}
}

func (c *versionCache) version(value string) (*goversion.Version, error) {
	if parsed, ok := c.parsed[value]; ok {
		return parsed, nil
	}
	parsed, err := goversion.NewVersion(value)
	if err != nil {
		return nil, err
	}
	c.parsed[value] = parsed
	return parsed, nil
}

// CompareVersions returns -1, 0, or 1 comparing two version strings with
// semantic-version ordering, pre-release suffixes included.
func CompareVersions(a string, b string) (int, error) {
	cache := newVersionCache()
	v1, err := cache.version(a)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", a)).
			WithCause(err)
	}
	v2, err := cache.version(b)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", b)).
			WithCause(err)
	}
	return v1.Compare(v2), nil
}

// PickUpgrade selects the upgrade version for one package occurrence.
// It walks available in feed order and returns the first entry that
// matches the release-train pattern and compares strictly greater than
// current. The feed is assumed, not guaranteed, to list versions in
// descending order; the first-match policy is deliberate and must not
// be replaced with a highest-match scan. Returns "" when no candidate
// qualifies. Feed entries that fail to parse are skipped.
func PickUpgrade(available []string, pattern string, strict bool, current string) (string, error) {
	cache := newVersionCache()
	pinned, err := cache.version(current)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid pinned version %q", current)).
			WithCause(err)
	}
	for _, candidate := range available {
		if !MatchesPattern(candidate, pattern, strict) {
			continue
		}
		parsed, err := cache.version(candidate)
		if err != nil {
			continue
		}
		if parsed.GreaterThan(pinned) {
			return candidate, nil
		}
	}
	return "", nil
}

// MatchesPattern reports whether a version string belongs to the
// configured release train. Strict mode requires exact equality with
// the pattern; otherwise a string prefix match suffices. An empty
// pattern matches everything.
func MatchesPattern(version string, pattern string, strict bool) bool {
	if pattern == "" {
		return true
	}
	if strict {
		return version == pattern
	}
	return strings.HasPrefix(version, pattern)
}
