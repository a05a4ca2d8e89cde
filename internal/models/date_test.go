package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	tag := PhaseTag{SubjectID: "u1", Date: Date{Year: 2026, Month: time.March, Day: 7}, Phase: PhaseLuteal}

	data, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if result["date"] != "2026-03-07" {
		t.Errorf("Expected date=%q, got %v", "2026-03-07", result["date"])
	}

	var decoded PhaseTag
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal into PhaseTag failed: %v", err)
	}
	if decoded.Date != tag.Date {
		t.Errorf("Expected %v, got %v", tag.Date, decoded.Date)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"plain date", `"2026-10-16"`, Date{2026, time.October, 16}, false},
		{"timestamp is truncated", `"2026-10-16T00:00:00+00:00"`, Date{2026, time.October, 16}, false},
		{"null", `null`, Date{}, false},
		{"garbage", `"yesterday"`, Date{}, true},
		{"not a string", `20261016`, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, d)
			}
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}

	if got := d.AddDays(1); got != (Date{2024, time.February, 29}) {
		t.Errorf("AddDays(1) = %v, want 2024-02-29", got)
	}
	if got := d.AddDays(2); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(2) = %v, want 2024-03-01", got)
	}
	if got := d.AddDays(-28); got != (Date{2024, time.January, 31}) {
		t.Errorf("AddDays(-28) = %v, want 2024-01-31", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) {
		t.Error("Expected d to be before the next day")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-01-05"); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if d.String() != "2026-01-05" {
		t.Errorf("Expected 2026-01-05, got %s", d)
	}

	if err := d.Scan(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time) failed: %v", err)
	}
	if d.String() != "2025-12-31" {
		t.Errorf("Expected 2025-12-31, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Expected error scanning int")
	}
}

func TestFeelingCheckInValid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		checkIn FeelingCheckIn
		want    bool
	}{
		{"complete", FeelingCheckIn{CategoryID: "tired", Label: "Tired", OccurredAt: now}, true},
		{"missing category", FeelingCheckIn{Label: "Tired", OccurredAt: now}, false},
		{"missing label", FeelingCheckIn{CategoryID: "tired", OccurredAt: now}, false},
		{"missing timestamp", FeelingCheckIn{CategoryID: "tired", Label: "Tired"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.checkIn.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
