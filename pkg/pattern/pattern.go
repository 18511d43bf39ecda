package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Process-wide cache of compiled selector patterns. Entries are only ever
// added; a cached pattern must behave identically to a fresh compile.
var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*regexp.Regexp)
)

// IsPattern reports whether selector uses the r/<pattern>/ regex form.
func IsPattern(selector string) bool {
	return strings.HasPrefix(selector, "r/") && strings.HasSuffix(selector, "/")
}

// Compile returns the compiled expression for a regex selector, using the
// process-wide cache. The selector must be in r/<pattern>/ form.
func Compile(selector string) (*regexp.Regexp, error) {
	if !IsPattern(selector) {
		return nil, errors.Join(ErrInvalidPattern, fmt.Errorf("selector %q is not in r/.../ form", selector))
	}
	var inner string
	if len(selector) > 3 {
		inner = selector[2 : len(selector)-1]
	}
	if inner == "" {
		return nil, errors.Join(ErrInvalidPattern, fmt.Errorf("selector %q has an empty pattern", selector))
	}

	cacheMu.RLock()
	re, ok := cache[inner]
	cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(inner)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}

	cacheMu.Lock()
	cache[inner] = re
	cacheMu.Unlock()
	return re, nil
}

// Resolve expands a selector against an ordered column list. A literal
// selector resolves to itself when the column exists and to nothing when it
// does not; a regex selector resolves to every column it matches, preserving
// column order. Resolution is idempotent: the same selector against the same
// columns always yields the same result.
func Resolve(selector string, columns []string) ([]string, error) {
	if !IsPattern(selector) {
		for _, col := range columns {
			if col == selector {
				return []string{selector}, nil
			}
		}
		return nil, nil
	}

	re, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, col := range columns {
		if re.MatchString(col) {
			matched = append(matched, col)
		}
	}
	return matched, nil
}
