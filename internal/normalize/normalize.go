// Package normalize classifies free-text user input into an entity type and
// canonicalizes it into the comparable form used as the aggregation value.
// Everything in here is pure: same input, same output, no side effects, so the
// submission and lookup paths stay consistent with each other.
package normalize

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Entity types a raw input can classify into.
const (
	TypePhone  = "phone"
	TypeLink   = "link"
	TypePage   = "page"
	TypeWallet = "wallet"
	TypeOther  = "other"
)

// TypeAuto is the form value asking the classifier to decide.
const TypeAuto = "auto"

// ErrInvalidValue marks input that cannot be canonicalized for its type.
var ErrInvalidValue = errors.New("invalid value")

var socialDomains = []string{"facebook.com", "fb.com", "instagram.com", "tiktok.com", "t.me"}

var walletBrands = []string{"kbz", "kpay", "wave", "ayapay", "cbpay"}

var nonDigit = regexp.MustCompile(`\D`)

// KnownType reports whether t is one of the submittable entity types.
func KnownType(t string) bool {
	switch t {
	case TypePhone, TypeLink, TypePage, TypeWallet, TypeOther:
		return true
	}
	return false
}

// Classify guesses the entity type of raw input. Heuristics run in a fixed
// order and the first match wins: URL prefix, social page, phone-sized digit
// core, wallet brand, other.
func Classify(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return TypeOther
	}

	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return TypeLink
	}

	lower := strings.ToLower(v)
	if strings.HasPrefix(v, "@") {
		return TypePage
	}
	for _, d := range socialDomains {
		if strings.Contains(lower, d) {
			return TypePage
		}
	}

	if digits := nonDigit.ReplaceAllString(v, ""); len(digits) >= 9 && len(digits) <= 15 {
		return TypePhone
	}

	for _, b := range walletBrands {
		if strings.Contains(lower, b) {
			return TypeWallet
		}
	}

	return TypeOther
}

// Normalize canonicalizes raw input for the given entity type. Phones become
// E.164, links become a re-serialized absolute URL, everything else is the
// trimmed original. A link that does not parse as an absolute http(s) URL is
// rejected rather than passed through.
func Normalize(entityType, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", ErrInvalidValue
	}

	switch entityType {
	case TypePhone:
		return NormalizePhone(v)
	case TypeLink:
		u, err := url.Parse(v)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return "", ErrInvalidValue
		}
		return u.String(), nil
	default:
		return v, nil
	}
}
