package calendar

import (
	"fmt"
	"time"
)

var monthNames = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// WeekdayNames is the header row of the day grid, Sunday first.
var WeekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Date is a calendar day. Month is zero-based (0 = January).
type Date struct {
	Year  int
	Month int
	Day   int
}

// Cursor is the (year, month) pair currently displayed.
type Cursor struct {
	Year  int
	Month int
}

// Normalize carries an out-of-range month into the year, so month 12 of Y
// becomes month 0 of Y+1 and month -1 of Y becomes month 11 of Y-1.
func Normalize(year, month int) (int, int) {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year, month
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LastDay returns the number of days in the month after normalization.
func LastDay(year, month int) int {
	year, month = Normalize(year, month)
	switch month {
	case 1:
		if isLeap(year) {
			return 29
		}
		return 28
	case 3, 5, 8, 10:
		return 30
	default:
		return 31
	}
}

// DaysInMonth returns every day of the month in ascending order.
func DaysInMonth(year, month int) []Date {
	year, month = Normalize(year, month)
	n := LastDay(year, month)
	days := make([]Date, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, Date{Year: year, Month: month, Day: d})
	}
	return days
}

// Key returns the canonical YYYY-MM-DD key for d.
func Key(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

func (d Date) Key() string {
	return Key(d)
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func (d Date) Weekday() int {
	t := []int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := d.Year
	if d.Month < 2 {
		y--
	}
	w := (y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + t[d.Month] + d.Day) % 7
	if w < 0 {
		w += 7
	}
	return w
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// MonthLabel renders "March 2024".
func MonthLabel(year, month int) string {
	year, month = Normalize(year, month)
	return fmt.Sprintf("%s %d", monthNames[month], year)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Date, error) {
	var y, m, d int
	if len(key) != 10 {
		return Date{}, fmt.Errorf("invalid date key %q", key)
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return Date{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	if m < 1 || m > 12 {
		return Date{}, fmt.Errorf("invalid date key %q: month out of range", key)
	}
	if d < 1 || d > LastDay(y, m-1) {
		return Date{}, fmt.Errorf("invalid date key %q: day out of range", key)
	}
	return Date{Year: y, Month: m - 1, Day: d}, nil
}

// Today reads the wall-clock date of now in now's own location. It is the
// only place a time.Time is turned into a Date.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return Date{Year: y, Month: int(m) - 1, Day: d}
}

func CursorOf(d Date) Cursor {
	return Cursor{Year: d.Year, Month: d.Month}
}

func (c Cursor) Add(delta int) Cursor {
	y, m := Normalize(c.Year, c.Month+delta)
	return Cursor{Year: y, Month: m}
}

func (c Cursor) Days() []Date {
	return DaysInMonth(c.Year, c.Month)
}

func (c Cursor) Label() string {
	return MonthLabel(c.Year, c.Month)
}

// Contains reports whether d is a valid day of the displayed month.
func (c Cursor) Contains(d Date) bool {
	y, m := Normalize(c.Year, c.Month)
	return d.Year == y && d.Month == m && d.Day >= 1 && d.Day <= LastDay(y, m)
}
