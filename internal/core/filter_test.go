package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(pairs ...string) Record {
	r := make(Record, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r[pairs[i]] = pairs[i+1]
	}
	return r
}

func TestParseIndexRanges(t *testing.T) {
	ranges, err := ParseIndexRanges("1-3,5")
	require.NoError(t, err)

	matches := func(val string) bool {
		for _, r := range ranges {
			ok, err := r.Contains(val)
			require.NoError(t, err)
			if ok {
				return true
			}
		}
		return false
	}
	for _, val := range []string{"1", "2", "3", "5"} {
		assert.True(t, matches(val), "value %s should match", val)
	}
	for _, val := range []string{"0", "4", "6"} {
		assert.False(t, matches(val), "value %s should not match", val)
	}
}

func TestParseIndexRangesInvalid(t *testing.T) {
	for _, expr := range []string{"", "a", "1-b"} {
		_, err := ParseIndexRanges(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}

func TestIntRangeNonInteger(t *testing.T) {
	_, err := IntRange{Lo: 1, Hi: 3}.Contains("not a number")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestDateRange(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	ok, err := DateRange(day).Contains("15.3.2024")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DateRange(day).Contains("14.3.2024")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilterUnknownColumn(t *testing.T) {
	spec := NewFilterSpec()
	spec.Add("olematon", ValueRange("x"))

	_, err := Filter([]Record{rec("email", "a@b.com", "nro", "1")}, spec)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestFilterRequiresEmail(t *testing.T) {
	records := []Record{
		rec("email", "a@b.com", "nro", "1"),
		rec("email", "", "nro", "2"),
		rec("email", "c@d.com", "nro", "3"),
	}
	out, err := Filter(records, NewFilterSpec())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a@b.com", out[0].Get("email"))
	assert.Equal(t, "c@d.com", out[1].Get("email"))
}

func TestFilterOrAcrossRangesAndAcrossKeys(t *testing.T) {
	records := []Record{
		rec("email", "a@b.com", "nro", "1", "viite", "100"),
		rec("email", "b@b.com", "nro", "2", "viite", "100"),
		rec("email", "c@b.com", "nro", "3", "viite", "200"),
	}
	spec := NewFilterSpec()
	spec.Add("nro", IntRange{Lo: 1, Hi: 1}, IntRange{Lo: 3, Hi: 3})
	spec.Add("viite", ValueRange("100"))

	out, err := Filter(records, spec)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a@b.com", out[0].Get("email"))
}

func TestRecordWithFieldDoesNotMutate(t *testing.T) {
	orig := rec("email", "a@b.com", "eräpäivä", "1.1.2024")
	derived := orig.WithField("eräpäivä", DueImmediately)

	assert.Equal(t, "1.1.2024", orig.Get("eräpäivä"))
	assert.Equal(t, DueImmediately, derived.Get("eräpäivä"))
}
