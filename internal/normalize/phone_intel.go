package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// PhoneInfo is the enriched validation result shown next to the lookup box.
type PhoneInfo struct {
	Valid    bool   `json:"valid"`
	E164     string `json:"e164,omitempty"`
	Country  string `json:"country,omitempty"`
	National string `json:"national,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Inspect validates a phone number against libphonenumber metadata, falling
// back to the same MM/US rewrites NormalizePhone applies when the library
// cannot parse the input as-is. A number the submission path would accept is
// never reported invalid here.
func Inspect(raw string) PhoneInfo {
	v := strings.TrimSpace(raw)
	if v == "" {
		return PhoneInfo{Reason: "empty"}
	}

	num, err := phonenumbers.Parse(v, "")
	if err != nil {
		if e164, nerr := NormalizePhone(v); nerr == nil {
			num, err = phonenumbers.Parse(e164, "")
		}
	}
	if err == nil && phonenumbers.IsValidNumber(num) {
		return PhoneInfo{
			Valid:    true,
			E164:     phonenumbers.Format(num, phonenumbers.E164),
			Country:  phonenumbers.GetRegionCodeForNumber(num),
			National: phonenumbers.Format(num, phonenumbers.NATIONAL),
			Kind:     phoneKind(phonenumbers.GetNumberType(num)),
		}
	}

	// Library said no; still accept whatever the submission path accepts.
	if e164, nerr := NormalizePhone(v); nerr == nil {
		info := PhoneInfo{Valid: true, E164: e164}
		switch {
		case strings.HasPrefix(e164, "+95"):
			info.Country = "MM"
		case strings.HasPrefix(e164, "+1"):
			info.Country = "US"
		}
		return info
	}

	return PhoneInfo{Reason: "invalid_format"}
}

func phoneKind(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE:
		return "fixed_line"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_line_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.PREMIUM_RATE:
		return "premium_rate"
	case phonenumbers.VOIP:
		return "voip"
	default:
		return "unknown"
	}
}
