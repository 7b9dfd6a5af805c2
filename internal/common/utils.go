package common

import "time"

// DateLayout is the calendar-date layout used for keys and comparisons.
const DateLayout = "2006-01-02"

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// SameUTCDate reports whether a and b fall on the same UTC calendar date.
func SameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
