package scheduling

import (
	"errors"
	"testing"
	"time"
)

func slotAt(t *testing.T, start, end string) TimeSlot {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad start %s: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("bad end %s: %v", end, err)
	}
	return TimeSlot{Start: s, End: e}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := slotAt(t, "2026-09-14T10:00:00Z", "2026-09-14T11:00:00Z")

	cases := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", slotAt(t, "2026-09-14T10:00:00Z", "2026-09-14T11:00:00Z"), true},
		{"contained", slotAt(t, "2026-09-14T10:15:00Z", "2026-09-14T10:45:00Z"), true},
		{"containing", slotAt(t, "2026-09-14T09:00:00Z", "2026-09-14T12:00:00Z"), true},
		{"overlaps start", slotAt(t, "2026-09-14T09:30:00Z", "2026-09-14T10:30:00Z"), true},
		{"overlaps end", slotAt(t, "2026-09-14T10:30:00Z", "2026-09-14T11:30:00Z"), true},
		{"touches before", slotAt(t, "2026-09-14T09:00:00Z", "2026-09-14T10:00:00Z"), false},
		{"touches after", slotAt(t, "2026-09-14T11:00:00Z", "2026-09-14T12:00:00Z"), false},
		{"well before", slotAt(t, "2026-09-14T07:00:00Z", "2026-09-14T08:00:00Z"), false},
		{"well after", slotAt(t, "2026-09-14T13:00:00Z", "2026-09-14T14:00:00Z"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			// Overlap is symmetric
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppointmentType_Duration(t *testing.T) {
	cases := []struct {
		typ  AppointmentType
		want time.Duration
	}{
		{TypeInitial, 90 * time.Minute},
		{TypeStandard, 60 * time.Minute},
		{TypeCheckIn, 30 * time.Minute},
	}
	for _, tc := range cases {
		if got := tc.typ.Duration(); got != tc.want {
			t.Errorf("%s duration = %v, want %v", tc.typ, got, tc.want)
		}
	}
}

func TestParseAppointmentType(t *testing.T) {
	for _, raw := range []string{"INITIAL", "initial", "Standard", "check_in"} {
		if _, err := ParseAppointmentType(raw); err != nil {
			t.Errorf("ParseAppointmentType(%q) unexpected error: %v", raw, err)
		}
	}

	_, err := ParseAppointmentType("FOLLOW_UP")
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
}
