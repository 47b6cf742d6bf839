package normalize

import (
	"regexp"
	"strings"
)

var (
	phoneCleaner = regexp.MustCompile(`[^\d+]`)
	e164Pattern  = regexp.MustCompile(`^\+\d{7,15}$`)
	bareDigits   = regexp.MustCompile(`^\d{7,15}$`)
	mmLocal      = regexp.MustCompile(`^(09|9)\d{6,12}$`)
)

// NormalizePhone converts a phone number to E.164. Input that already looks
// like E.164 passes through unchanged. Myanmar local numbers (09… or 9…) are
// rewritten to +95 plus the national number; bare 10-digit numbers and
// 1-prefixed 11-digit numbers are treated as NANP. The Myanmar rule runs
// first, so a 10-digit number starting with 9 is Myanmar, not NANP.
func NormalizePhone(raw string) (string, error) {
	s := phoneCleaner.ReplaceAllString(strings.TrimSpace(raw), "")

	if e164Pattern.MatchString(s) {
		return s, nil
	}

	if bareDigits.MatchString(s) {
		if mmLocal.MatchString(s) {
			if strings.HasPrefix(s, "09") {
				return "+95" + s[1:], nil
			}
			return "+95" + s, nil
		}
		if len(s) == 10 {
			return "+1" + s, nil
		}
		if len(s) == 11 && strings.HasPrefix(s, "1") {
			return "+" + s, nil
		}
	}

	return "", ErrInvalidValue
}
