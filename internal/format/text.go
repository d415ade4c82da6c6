package format

import (
	"regexp"
	"strings"
)

var (
	hSpaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankLineRunRe = regexp.MustCompile(`\n{3,}`)
)

// normalizeText collapses horizontal whitespace runs to a single space and
// runs of blank lines to a single blank line, then trims. Applying this to
// its own output is a no-op.
func normalizeText(s string) string {
	s = hSpaceRunRe.ReplaceAllString(s, " ")
	s = blankLineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
