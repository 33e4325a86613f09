package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_normalizes(t *testing.T) {
	// Day overflow must roll over into the next month.
	got := New(2024, time.February, 30)
	want := New(2024, time.March, 1)
	if got != want {
		t.Errorf("New(2024, February, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-03-12", want: New(2024, time.March, 12)},
		{in: "2024-3-2", want: New(2024, time.March, 2)},
		{in: "12/03/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected an error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFromTime_discardsTimeOfDay(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	if got, want := FromTime(ts), New(2024, time.January, 15); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", ts, got, want)
	}
}

func TestLastTradingDay(t *testing.T) {
	testCases := []struct {
		name string
		on   Date
		want Date
	}{
		{name: "saturday resolves to friday", on: New(2024, time.May, 25), want: New(2024, time.May, 24)},
		{name: "sunday resolves to friday", on: New(2024, time.May, 26), want: New(2024, time.May, 24)},
		{name: "monday resolves to itself", on: New(2024, time.May, 27), want: New(2024, time.May, 27)},
		{name: "friday resolves to itself", on: New(2024, time.May, 24), want: New(2024, time.May, 24)},
		{name: "sunday across month boundary", on: New(2024, time.September, 1), want: New(2024, time.August, 30)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.on.LastTradingDay(); got != tc.want {
				t.Errorf("%v.LastTradingDay() = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestIsTradingDay(t *testing.T) {
	if New(2024, time.May, 25).IsTradingDay() {
		t.Error("saturday reported as a trading day")
	}
	if New(2024, time.May, 26).IsTradingDay() {
		t.Error("sunday reported as a trading day")
	}
	if !New(2024, time.May, 22).IsTradingDay() {
		t.Error("wednesday not reported as a trading day")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2024, time.April, 17)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(b) != `"2024-04-17"` {
		t.Errorf("MarshalJSON() = %s, want %q", b, "2024-04-17")
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON() failed: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
