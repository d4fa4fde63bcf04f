package hotel

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field validators. Each returns "" for blank values so optional fields
// stay optional; the required flag covers presence.

func validEmail(v any, _ crud.Draft) string {
	s := strings.TrimSpace(crud.Stringify(v))
	if s == "" || emailPattern.MatchString(s) {
		return ""
	}
	return "Enter a valid email address"
}

func validPhone(v any, _ crud.Draft) string {
	s := strings.TrimSpace(crud.Stringify(v))
	if s == "" {
		return ""
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return "Phone may only contain digits, spaces and + - ( )"
		}
	}
	if digits < 6 {
		return "Phone number is too short"
	}
	return ""
}

func validURL(v any, _ crud.Draft) string {
	s := strings.TrimSpace(crud.Stringify(v))
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "Enter a full http(s) URL"
	}
	return ""
}

func validDate(v any, _ crud.Draft) string {
	s := strings.TrimSpace(crud.Stringify(v))
	if s == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "Use the YYYY-MM-DD format"
	}
	return ""
}

// number parses a draft value that may still be raw text.
func number(v any) (n float64, blank bool, ok bool) {
	switch val := v.(type) {
	case nil:
		return 0, true, true
	case float64:
		return val, false, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, true, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, false, err == nil
	}
	return 0, false, false
}

func nonNegative(label string) func(any, crud.Draft) string {
	return func(v any, _ crud.Draft) string {
		n, blank, ok := number(v)
		switch {
		case blank:
			return ""
		case !ok:
			return label + " must be a number"
		case n < 0:
			return label + " cannot be negative"
		}
		return ""
	}
}

func between(label string, lo, hi float64) func(any, crud.Draft) string {
	return func(v any, _ crud.Draft) string {
		n, blank, ok := number(v)
		switch {
		case blank:
			return ""
		case !ok:
			return label + " must be a number"
		case n < lo || n > hi:
			return label + " must be between " + crud.Stringify(lo) + " and " + crud.Stringify(hi)
		}
		return ""
	}
}

func oneOf(label string, options []crud.Option) func(any, crud.Draft) string {
	return func(v any, _ crud.Draft) string {
		s := crud.Stringify(v)
		if s == "" {
			return ""
		}
		for _, o := range options {
			if o.Value == s {
				return ""
			}
		}
		return "Pick a valid " + strings.ToLower(label)
	}
}

// stayDates checks that check-out falls after check-in.
func stayDates(d crud.Draft) map[string]string {
	in, errIn := time.Parse(DateLayout, strings.TrimSpace(d.String("check_in")))
	out, errOut := time.Parse(DateLayout, strings.TrimSpace(d.String("check_out")))
	if errIn != nil || errOut != nil {
		return nil
	}
	if !out.After(in) {
		return map[string]string{"check_out": "Check-out must be after check-in"}
	}
	return nil
}
