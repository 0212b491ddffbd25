package core

import (
	"strconv"
	"strings"
	"time"
)

// Range is one member of a filter specification: a discrete value, an
// inclusive integer interval, or a date equality. The range kind decides how
// the record's raw string value is coerced before the containment test.
type Range interface {
	Contains(value string) (bool, error)
}

// ValueRange matches on exact string equality.
type ValueRange string

func (r ValueRange) Contains(value string) (bool, error) {
	return string(r) == value, nil
}

// IntRange matches integers in the inclusive interval [Lo, Hi].
type IntRange struct {
	Lo, Hi int
}

func (r IntRange) Contains(value string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false, Configf("filter value %q is not an integer", value)
	}
	return n >= r.Lo && n <= r.Hi, nil
}

// DateRange matches a single calendar day; the record value is parsed using
// the dataset's day.month.year layout.
type DateRange time.Time

func (r DateRange) Contains(value string) (bool, error) {
	d, err := ParseDate(value)
	if err != nil {
		return false, Configf("filter value %q is not a date: %v", value, err)
	}
	return d.Equal(time.Time(r)), nil
}

// ParseDate parses a dataset date (day.month.year, four-digit year) and
// truncates it to midnight UTC so dates compare by calendar day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// Day truncates a wall-clock time to its calendar day, matching what
// ParseDate produces for the same day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterSpec maps field names to ordered range lists. Key order is
// insertion order; it only affects error reporting, never match results.
type FilterSpec struct {
	keys   []string
	ranges map[string][]Range
}

// NewFilterSpec returns an empty filter specification.
func NewFilterSpec() *FilterSpec {
	return &FilterSpec{ranges: make(map[string][]Range)}
}

// Add appends ranges for a field, creating the key on first use.
func (s *FilterSpec) Add(key string, ranges ...Range) {
	if _, ok := s.ranges[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.ranges[key] = append(s.ranges[key], ranges...)
}

// Keys returns the field names in first-insertion order.
func (s *FilterSpec) Keys() []string {
	return s.keys
}

// Empty reports whether no ranges have been added.
func (s *FilterSpec) Empty() bool {
	return len(s.keys) == 0
}

// matches reports whether the record value for every key falls inside at
// least one of that key's ranges: OR across ranges, AND across keys.
func (s *FilterSpec) matches(rec Record) (bool, error) {
	for _, key := range s.keys {
		inside := false
		for _, ran := range s.ranges[key] {
			ok, err := ran.Contains(rec.Get(key))
			if err != nil {
				return false, err
			}
			if ok {
				inside = true
				break
			}
		}
		if !inside {
			return false, nil
		}
	}
	return true, nil
}

// Filter reduces records to those matching the specification. Every filter
// key must exist in the record field set; an unknown key is a ConfigError.
// Records without a non-empty email field never pass, and with an empty
// specification every record with an email passes.
func Filter(records []Record, spec *FilterSpec) ([]Record, error) {
	if spec == nil {
		spec = NewFilterSpec()
	}
	if len(records) > 0 {
		for _, key := range spec.Keys() {
			if !records[0].Has(key) {
				return nil, Configf("invalid filter column name %q", key)
			}
		}
	}

	var out []Record
	for _, rec := range records {
		if rec.Get(FieldEmail) == "" {
			continue
		}
		ok, err := spec.matches(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ParseIndexRanges parses an index selector such as "1-3,5" into integer
// ranges on the index column.
func ParseIndexRanges(expr string) ([]Range, error) {
	var ranges []Range
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "-")
		loN, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, Configf("invalid index range %q", expr)
		}
		hiN := loN
		if found {
			hiN, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, Configf("invalid index range %q", expr)
			}
		}
		ranges = append(ranges, IntRange{Lo: loN, Hi: hiN})
	}
	if len(ranges) == 0 {
		return nil, Configf("invalid index range %q", expr)
	}
	return ranges, nil
}
