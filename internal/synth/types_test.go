package synth

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func TestPortalEngaged(t *testing.T) {
	if PortalEngaged(&Patient{}, testNow) {
		t.Error("patient without portal login should not be engaged")
	}

	recent := testNow.AddDate(0, 0, -30)
	if !PortalEngaged(&Patient{PortalLastLogin: &recent}, testNow) {
		t.Error("login 30 days ago should count as engaged")
	}

	stale := testNow.AddDate(0, 0, -120)
	if PortalEngaged(&Patient{PortalLastLogin: &stale}, testNow) {
		t.Error("login 120 days ago should not count as engaged")
	}
}

func TestAppointment_StartDateTime(t *testing.T) {
	a := &Appointment{
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "14:30",
	}
	want := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	if got := a.StartDateTime(); !got.Equal(want) {
		t.Errorf("StartDateTime() = %v, want %v", got, want)
	}
	if a.HourOfDay() != 14 {
		t.Errorf("HourOfDay() = %d, want 14", a.HourOfDay())
	}
}

func TestLeadTimeDays(t *testing.T) {
	a := &Appointment{
		Date:        time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		ScheduledAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	if got := LeadTimeDays(a); got != 10 {
		t.Errorf("LeadTimeDays() = %d, want 10", got)
	}

	// Scheduled after the start floors at zero.
	a.ScheduledAt = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := LeadTimeDays(a); got != 0 {
		t.Errorf("LeadTimeDays() with later scheduling = %d, want 0", got)
	}

	if got := LeadTimeDays(&Appointment{Date: a.Date, StartTime: "09:00"}); got != 0 {
		t.Errorf("LeadTimeDays() with zero ScheduledAt = %d, want 0", got)
	}
}

func TestNoShow(t *testing.T) {
	past := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	checkin := time.Date(2025, 5, 1, 9, 55, 0, 0, time.UTC)

	cases := []struct {
		name string
		a    Appointment
		want bool
	}{
		{"explicit no-show", Appointment{Date: past, StartTime: "10:00", Status: StatusNoShow}, true},
		{"past scheduled never checked in", Appointment{Date: past, StartTime: "10:00", Status: StatusScheduled}, true},
		{"future scheduled", Appointment{Date: future, StartTime: "10:00", Status: StatusScheduled}, false},
		{"past complete", Appointment{Date: past, StartTime: "10:00", Status: StatusComplete, CheckinAt: &checkin}, false},
		{"past cancelled", Appointment{Date: past, StartTime: "10:00", Status: StatusCancelled}, false},
	}
	for _, tc := range cases {
		if got := NoShow(&tc.a, testNow); got != tc.want {
			t.Errorf("%s: NoShow() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
