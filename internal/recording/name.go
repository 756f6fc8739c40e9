package recording

import (
	"regexp"
	"strings"
)

// normalizedPhoneLen is the number of trailing digits kept when
// normalizing a phone number. Country prefixes are discarded so that
// "00919876543210" and "9876543210" resolve to the same contact.
const normalizedPhoneLen = 10

var (
	// phonePattern matches a parenthesized run of 10+ digits, e.g.
	// "Sonu Pantry(00919971696793)_20250821182137.mp3".
	phonePattern = regexp.MustCompile(`\((\d{10,})\)`)
	// barePhonePattern matches a file name that starts with the number
	// itself, e.g. "1234567890_b.mp3". Only consulted when no
	// parenthesized number is present.
	barePhonePattern = regexp.MustCompile(`^(\d{10,})`)
	// nameHintPattern captures the label preceding the first opening
	// parenthesis, when the name starts with one.
	nameHintPattern = regexp.MustCompile(`^([^(]+)\(`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// ParsedName is the caller identity recovered from a recording file name.
// Either field may be empty when the name does not carry that information.
type ParsedName struct {
	// Phone is the normalized phone number, or "" if none was embedded.
	Phone string
	// NameHint is the caller label embedded by the recording source,
	// or "" if the name carries no label.
	NameHint string
}

// ParseName extracts the embedded phone number and caller label from a
// recording file name. It is total: malformed names yield an empty
// ParsedName rather than an error.
func ParseName(name string) ParsedName {
	var parsed ParsedName

	if m := phonePattern.FindStringSubmatch(name); m != nil {
		parsed.Phone = NormalizePhone(m[1])
	} else if m := barePhonePattern.FindStringSubmatch(name); m != nil {
		parsed.Phone = NormalizePhone(m[1])
	}

	if m := nameHintPattern.FindStringSubmatch(name); m != nil {
		hint := strings.TrimSpace(m[1])
		if hint != "" && hint != name {
			parsed.NameHint = hint
		}
	}

	return parsed
}

// NormalizePhone strips every non-digit character and keeps the last ten
// digits. Numbers shorter than ten digits are returned as-is after
// stripping.
func NormalizePhone(number string) string {
	digits := nonDigits.ReplaceAllString(number, "")
	if len(digits) > normalizedPhoneLen {
		return digits[len(digits)-normalizedPhoneLen:]
	}
	return digits
}
