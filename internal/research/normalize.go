package research

import (
	"strings"
	"unicode/utf8"
)

// companySuffixes are checked in order and at most one is removed.
var companySuffixes = []string{" Inc", " LLC", " Ltd", " Corporation", " Corp", " Company", " Co"}

// NormalizeCompanyName trims the name and strips one trailing legal suffix,
// e.g. "Acme Corp" becomes "Acme".
func NormalizeCompanyName(name string) string {
	name = strings.TrimSpace(name)
	for _, suffix := range companySuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}
	return strings.TrimSpace(name)
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
