package engine

import "time"

// StoreLocation is the store's calendar zone (Asia/Kolkata). Ad-spend dates
// and order dates must bucket identically no matter where the server runs, so
// the offset is pinned here instead of read from the environment. IST has no
// DST, which makes the fixed offset exact.
var StoreLocation = time.FixedZone("IST", 5*3600+30*60)

// DateLayout is the calendar-date key format used everywhere in the engine.
const DateLayout = "2006-01-02"

// StoreDate converts an instant to its store-local calendar date key.
func StoreDate(t time.Time) string {
	return t.In(StoreLocation).Format(DateLayout)
}

// MonthOf trims a date key to its YYYY-MM month key.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
