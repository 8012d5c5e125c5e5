package graphviz

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeID turns arbitrary text into a fragment safe for file names and URLs.
//
// Letters and digits are lowercased, whitespace, '_' and '-' become '_', and
// everything else is dropped. Characters whose lowercase form is not ASCII are
// dropped as well, so the result only ever contains [a-z0-9_].
func NormalizeID(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if lr := unicode.ToLower(r); lr < utf8.RuneSelf {
				sb.WriteRune(lr)
			}
		case unicode.IsSpace(r) || r == '_' || r == '-':
			sb.WriteByte('_')
		}
	}

	return sb.String()
}
