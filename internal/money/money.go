// Package money converts raw spreadsheet and document tokens into exact
// whole-dollar amounts. Statements are presented rounded to the nearest
// dollar, so every amount in the system is an int64 dollar value; cents
// never survive normalization.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a whole-dollar value that knows whether it was supplied at all.
// An absent amount is not zero: a dash in a statement column means "no
// figure reported", and several checks treat the two differently.
type Amount struct {
	Value   int64
	Present bool
}

// Absent returns the explicit absent marker.
func Absent() Amount {
	return Amount{}
}

// FromInt returns a present amount holding v dollars.
func FromInt(v int64) Amount {
	return Amount{Value: v, Present: true}
}

// Or returns the amount's value, or fallback when the amount is absent.
func (a Amount) Or(fallback int64) int64 {
	if !a.Present {
		return fallback
	}
	return a.Value
}

// IsZero reports whether the amount is present and exactly zero.
func (a Amount) IsZero() bool {
	return a.Present && a.Value == 0
}

// NormalizationError reports a token that could not be converted to an
// amount. The calling extractor decides whether the failure is fatal (a
// required figure) or ignorable (a stray annotation in a numeric column).
type NormalizationError struct {
	Raw    string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %q: %s", e.Raw, e.Reason)
}

// placeholders are tokens that mean "no figure reported" rather than zero.
// The set matches what entity management workbooks actually contain.
var placeholders = map[string]bool{
	"":    true,
	"-":   true,
	"–":   true,
	"—":   true,
	"n/a": true,
	"na":  true,
	"nil": true,
	"nan": true,
}

// Normalize converts a raw cell or text token into an Amount.
//
// Rules, applied in order:
//  1. currency symbols and thousands separators are stripped
//  2. a value wrapped in parentheses is negative
//  3. an isolated dash, empty string, or known placeholder normalizes to
//     the absent marker
//  4. fractional dollars round half-away-from-zero to the nearest dollar
//  5. anything else fails with a NormalizationError
func Normalize(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)

	if placeholders[strings.ToLower(s)] {
		return Absent(), nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}

	s = strings.ReplaceAll(s, "A$", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return Amount{}, &NormalizationError{Raw: raw, Reason: "no digits after stripping formatting"}
	}
	if placeholders[strings.ToLower(s)] {
		return Absent(), nil
	}

	// Whole-dollar tokens stay on the integer path; float64 cannot hold
	// every int64 exactly, and Format must round-trip for all of them.
	var v int64
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Amount{}, &NormalizationError{Raw: raw, Reason: "not a recognized numeral"}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Amount{}, &NormalizationError{Raw: raw, Reason: "not a finite value"}
		}
		v = roundHalfAwayFromZero(f)
	} else {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Amount{}, &NormalizationError{Raw: raw, Reason: "not a recognized numeral"}
		}
		v = n
	}

	if negative {
		v = -v
	}
	return FromInt(v), nil
}

// NormalizeFloat converts an already-numeric cell value (excelize hands
// numeric cells back as float64) into an Amount under the same rounding
// policy as Normalize.
func NormalizeFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, &NormalizationError{Raw: fmt.Sprintf("%v", f), Reason: "not a finite value"}
	}
	return FromInt(roundHalfAwayFromZero(f)), nil
}

func roundHalfAwayFromZero(f float64) int64 {
	if f >= 0 {
		return int64(math.Floor(f + 0.5))
	}
	return int64(math.Ceil(f - 0.5))
}

// Format renders an amount the way statements present figures: rounded
// dollars with thousands separators, negatives in parentheses, absent as
// a dash. Format is the inverse of Normalize for every representable value.
func Format(a Amount) string {
	if !a.Present {
		return "-"
	}
	digits := strconv.FormatInt(a.Value, 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	s := groupThousands(digits)
	if neg {
		return "($" + s + ")"
	}
	return "$" + s
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
