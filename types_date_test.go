package ledger

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-07-01 ", NewDate(2025, time.July, 1), false},
		// spreadsheet cells often carry a full timestamp
		{"2025-07-01T00:00:00Z", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
		{"15/01/2025", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDateLenient(t *testing.T) {
	if got := ParseDateLenient("garbage"); !got.IsZero() {
		t.Errorf("ParseDateLenient(garbage) = %v, want zero", got)
	}
	if got := ParseDateLenient("2025-03-09"); got != NewDate(2025, time.March, 9) {
		t.Errorf("ParseDateLenient(2025-03-09) = %v", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 9)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-03-09"` {
		t.Errorf("Marshal = %s, want \"2025-03-09\"", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateOrdering(t *testing.T) {
	anchor := AnchorDate
	op := NewDate(2025, time.January, 2)
	if !anchor.Before(op) {
		t.Errorf("anchor date %v should sort before any operational date", anchor)
	}
	if !op.After(anchor) {
		t.Errorf("After is not the inverse of Before")
	}
}
