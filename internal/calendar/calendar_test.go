package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonthCounts(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 0, 31},
		{2024, 1, 29},
		{2023, 1, 28},
		{1900, 1, 28},
		{2000, 1, 29},
		{2024, 3, 30},
		{2024, 10, 30},
		{2024, 11, 31},
		{2024, 12, 31},  // January 2025
		{2024, -1, 31},  // December 2023
		{2025, -11, 29}, // February 2024
	}
	for _, tc := range cases {
		days := DaysInMonth(tc.year, tc.month)
		if len(days) != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d days, want %d", tc.year, tc.month, len(days), tc.want)
		}
		if days[0].Day != 1 {
			t.Errorf("first day = %d, want 1", days[0].Day)
		}
		if last := days[len(days)-1].Day; last != tc.want {
			t.Errorf("last day = %d, want %d", last, tc.want)
		}
		for i := 1; i < len(days); i++ {
			if days[i].Day != days[i-1].Day+1 {
				t.Fatalf("days not ascending at %d: %+v", i, days[i])
			}
		}
	}
}

func TestDaysInMonthEveryMonth(t *testing.T) {
	for year := 1999; year <= 2025; year++ {
		for month := 0; month < 12; month++ {
			days := DaysInMonth(year, month)
			want := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
			if len(days) != want {
				t.Fatalf("%d-%02d: got %d days, want %d", year, month+1, len(days), want)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2024, 0, 2024, 0},
		{2024, 12, 2025, 0},
		{2024, 25, 2026, 1},
		{2024, -1, 2023, 11},
		{2024, -12, 2023, 0},
		{2024, -13, 2022, 11},
	}
	for _, tc := range cases {
		y, m := Normalize(tc.year, tc.month)
		if y != tc.wantYear || m != tc.wantMonth {
			t.Errorf("Normalize(%d, %d) = (%d, %d), want (%d, %d)", tc.year, tc.month, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}

func TestKeyZeroPadded(t *testing.T) {
	if got := Key(Date{Year: 2024, Month: 2, Day: 5}); got != "2024-03-05" {
		t.Fatalf("Key = %q", got)
	}
	if got := (Date{Year: 987, Month: 11, Day: 31}).Key(); got != "0987-12-31" {
		t.Fatalf("Key = %q", got)
	}
}

func TestKeyInjectiveAndStable(t *testing.T) {
	seen := map[string]Date{}
	for year := 2023; year <= 2024; year++ {
		for month := 0; month < 12; month++ {
			for _, d := range DaysInMonth(year, month) {
				k := d.Key()
				if prev, ok := seen[k]; ok {
					t.Fatalf("key %q shared by %+v and %+v", k, prev, d)
				}
				seen[k] = d
				if k != Key(d) {
					t.Fatalf("key not stable for %+v", d)
				}
			}
		}
	}
}

func TestTodayIgnoresUTCConversion(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	now := time.Date(2024, time.March, 5, 0, 30, 0, 0, loc)
	if got := Today(now).Key(); got != "2024-03-05" {
		t.Fatalf("Today = %q, want 2024-03-05", got)
	}
	if utc := now.UTC().Format("2006-01-02"); utc == "2024-03-05" {
		t.Fatalf("fixture does not cross midnight in UTC")
	}
}

func TestParseKey(t *testing.T) {
	d, err := ParseKey("2024-02-29")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if d != (Date{Year: 2024, Month: 1, Day: 29}) {
		t.Fatalf("ParseKey = %+v", d)
	}
	for _, bad := range []string{"", "2023-02-29", "2024-13-01", "2024-00-10", "2024-3-5", "abcd-ef-gh"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) succeeded, want error", bad)
		}
	}
}

func TestWeekday(t *testing.T) {
	for year := 1990; year <= 2030; year++ {
		for month := 0; month < 12; month++ {
			for _, d := range DaysInMonth(year, month) {
				want := int(time.Date(d.Year, time.Month(d.Month+1), d.Day, 12, 0, 0, 0, time.UTC).Weekday())
				if got := d.Weekday(); got != want {
					t.Fatalf("%s: Weekday = %d, want %d", d.Key(), got, want)
				}
			}
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(2024, 2); got != "March 2024" {
		t.Fatalf("MonthLabel = %q", got)
	}
	if got := MonthLabel(2024, 12); got != "January 2025" {
		t.Fatalf("MonthLabel = %q", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	start := Cursor{Year: 2024, Month: 2}
	if got := start.Add(1).Add(-1); got != start {
		t.Fatalf("Add(1).Add(-1) = %+v", got)
	}
	if got := start.Add(-1); got != (Cursor{Year: 2024, Month: 1}) {
		t.Fatalf("Add(-1) = %+v", got)
	}
	if n := len(start.Add(-1).Days()); n != 29 {
		t.Fatalf("February 2024 has %d days", n)
	}
	dec := Cursor{Year: 2024, Month: 11}
	if got := dec.Add(1); got != (Cursor{Year: 2025, Month: 0}) {
		t.Fatalf("December + 1 = %+v", got)
	}
}

func TestCursorContains(t *testing.T) {
	c := Cursor{Year: 2024, Month: 1}
	if !c.Contains(Date{Year: 2024, Month: 1, Day: 29}) {
		t.Fatal("Feb 29 2024 should be contained")
	}
	if c.Contains(Date{Year: 2024, Month: 1, Day: 30}) {
		t.Fatal("Feb 30 should not be contained")
	}
	if c.Contains(Date{Year: 2024, Month: 2, Day: 1}) {
		t.Fatal("March 1 should not be contained")
	}
}
