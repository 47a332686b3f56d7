package service

import (
	"regexp"
	"strconv"
	"strings"
)

// Search terms can name a complaint directly in three shapes: a bare
// integer, the current display format PREFIX-<digits>, and the legacy
// PREFIX-<6 digits>-<digits> format where only the trailing digits are the
// numeric id.
var (
	bareIDPattern    = regexp.MustCompile(`^\d+$`)
	displayIDPattern = regexp.MustCompile(`^(\d+)$`) // applied after prefix strip
	legacyIDPattern  = regexp.MustCompile(`^\d{6}-(\d+)$`)
)

// ParseSearchID recognizes the literal-id shapes in a search term and
// returns the numeric complaint id. The id clause is OR-combined with the
// substring clauses by the list query; search is inclusive, not exclusive.
func ParseSearchID(prefix, term string) (int64, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, false
	}

	if bareIDPattern.MatchString(term) {
		id, err := strconv.ParseInt(term, 10, 64)
		return id, err == nil
	}

	rest, ok := strings.CutPrefix(term, prefix+"-")
	if !ok {
		return 0, false
	}
	if m := legacyIDPattern.FindStringSubmatch(rest); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		return id, err == nil
	}
	if m := displayIDPattern.FindStringSubmatch(rest); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		return id, err == nil
	}
	return 0, false
}
