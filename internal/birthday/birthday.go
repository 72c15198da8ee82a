// Package birthday holds the pure calendar logic for anniversary
// computations. Nothing here touches storage or the clock.
package birthday

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrIncompleteRecord = errors.New("birthday record is incomplete")

// Record is a remembered birth date. Month is stored as the spoken English
// month name, matching the upstream slot values.
type Record struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Day   int    `json:"day"`
}

// Complete reports whether every field is present. Absence of any field
// means "no birth date on file".
func (r Record) Complete() bool {
	return r.Year != 0 && r.Month != "" && r.Day != 0
}

// Attributes encodes the record into the persisted attribute map.
func (r Record) Attributes() map[string]any {
	return map[string]any{
		"year":  r.Year,
		"month": r.Month,
		"day":   r.Day,
	}
}

// FromAttributes decodes a record from a persisted attribute map. The second
// return is false unless a complete record was found. Numeric values may
// arrive as float64 after a JSON round trip.
func FromAttributes(attrs map[string]any) (Record, bool) {
	rec := Record{
		Year: attrInt(attrs["year"]),
		Day:  attrInt(attrs["day"]),
	}
	if month, ok := attrs["month"].(string); ok {
		rec.Month = month
	}
	if !rec.Complete() {
		return Record{}, false
	}
	return rec, true
}

func attrInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// ParseMonth resolves a spoken English month name, case-insensitively.
func ParseMonth(name string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}

// Status is the outcome of an anniversary computation.
type Status struct {
	IsBirthday    bool
	YearsOld      int
	DaysRemaining int
}

// Compute derives the anniversary status of rec as of now in loc.
// Comparison is by calendar date only. When today is strictly past this
// year's anniversary, the relevant anniversary rolls to next year and the
// age counter moves with it. DaysRemaining is meaningful only when
// IsBirthday is false. A nil loc falls back to UTC.
//
// Feb 29 anniversaries normalize to Mar 1 on non-leap years, so a leap-day
// record always yields a definite date.
func Compute(now time.Time, loc *time.Location, rec Record) (Status, error) {
	if !rec.Complete() {
		return Status{}, ErrIncompleteRecord
	}
	month, err := ParseMonth(rec.Month)
	if err != nil {
		return Status{}, err
	}
	if loc == nil {
		loc = time.UTC
	}

	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	anniversary := time.Date(today.Year(), month, rec.Day, 0, 0, 0, 0, loc)
	yearsOld := anniversary.Year() - rec.Year
	if today.After(anniversary) {
		anniversary = time.Date(today.Year()+1, month, rec.Day, 0, 0, 0, 0, loc)
		yearsOld++
	}

	if today.Equal(anniversary) {
		return Status{IsBirthday: true, YearsOld: yearsOld}, nil
	}

	// Whole-day difference rounded to nearest, so DST transitions between
	// the two midnights cannot skew the count.
	days := int(math.Round(math.Abs(anniversary.Sub(today).Hours() / 24)))
	return Status{YearsOld: yearsOld, DaysRemaining: days}, nil
}
