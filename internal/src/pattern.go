package src

import (
	"strings"

	"github.com/gobwas/glob"
)

// CompilePattern translates a key pattern where `*` matches any run of
// characters and `?` matches exactly one into an anchored matcher. Every
// other character is matched literally, including glob metacharacters such
// as `[` and `{`.
func CompilePattern(pattern string) (glob.Glob, error) {
	var translated strings.Builder
	for _, r := range pattern {
		switch r {
		case '*', '?':
			translated.WriteRune(r)
		default:
			translated.WriteString(glob.QuoteMeta(string(r)))
		}
	}
	return glob.Compile(translated.String())
}
