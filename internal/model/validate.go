package model

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSeparators  = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsValidEmail performs a shape check only; deliverability is not verified.
func IsValidEmail(s string) bool {
	return len(s) <= MaxEmailLength && emailPattern.MatchString(s)
}

// IsValidWebURL accepts absolute http and https URLs with a host.
func IsValidWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidHexColor accepts #RRGGBB.
func IsValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// IsValidSlug accepts lowercase words joined by single hyphens.
func IsValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// Slugify derives a URL slug: accents are folded, anything outside a-z0-9
// becomes a hyphen, and the result is capped at MaxSlugLength.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	slug := strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(folded), "-"), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// IsRecordID reports whether id names a record in table ("venue:abc").
func IsRecordID(id, table string) bool {
	rest, ok := strings.CutPrefix(id, table+":")
	return ok && rest != "" && !strings.ContainsAny(rest, " \t\n")
}

// runeLen counts characters rather than bytes for length limits.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func required(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: field + " is required"})
	}
	return errs
}

func maxLen(errs []FieldError, field, value string, limit int) []FieldError {
	if runeLen(value) > limit {
		return append(errs, FieldError{Field: field, Message: field + " must be " + strconv.Itoa(limit) + " characters or less"})
	}
	return errs
}

func recordIDs(errs []FieldError, field string, ids []string, table string) []FieldError {
	for _, id := range ids {
		if !IsRecordID(id, table) {
			return append(errs, FieldError{Field: field, Message: field + " must contain " + table + " ids"})
		}
	}
	return errs
}
