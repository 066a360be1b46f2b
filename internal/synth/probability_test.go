package synth

import (
	"math"
	"testing"
	"time"
)

func TestNoShowProbability_ClampsLow(t *testing.T) {
	// Senior Medicare patient, same-day early-morning visit, portal engaged
	// and web scheduled: every adjustment pulls the probability down.
	p := &Patient{AgeBucket: AgeSenior}
	v := VisitContext{
		Date:           time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   0,
		HourOfDay:      8,
		DayOfWeek:      time.Wednesday,
		VirtualFlag:    NonVirtual,
		NewPatientFlag: EstablishedPatient,
		PayerGroup:     PayerMedicare,
		WebScheduled:   true,
		JourneyStage:   StageNormal,
		PortalEngaged:  true,
	}
	if got := NoShowProbability(p, v); got != minNoShowProb {
		t.Errorf("expected floor %.2f, got %.4f", minNoShowProb, got)
	}
}

func TestNoShowProbability_ClampsHigh(t *testing.T) {
	// Every risk factor at once pushes well past the ceiling.
	p := &Patient{
		AgeBucket:             AgeYoungAdult,
		HistoricalNoShowCount: 5,
		HistoricalNoShowRate:  0.5,
	}
	v := VisitContext{
		Date:           time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   45,
		HourOfDay:      15,
		DayOfWeek:      time.Monday,
		VirtualFlag:    NonVirtual,
		NewPatientFlag: NewPatient,
		PayerGroup:     PayerSelfPay,
		WebScheduled:   false,
		JourneyStage:   StageAbandonmentEscalating,
		PortalEngaged:  false,
	}
	if got := NoShowProbability(p, v); got != maxNoShowProb {
		t.Errorf("expected ceiling %.2f, got %.4f", maxNoShowProb, got)
	}
}

func TestNoShowProbability_MidRange(t *testing.T) {
	// base -0.02, lead 31 +0.16, middle-aged -0.02, video -0.05, web -0.02.
	p := &Patient{AgeBucket: AgeMiddleAged}
	v := VisitContext{
		Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   31,
		HourOfDay:      11,
		DayOfWeek:      time.Tuesday,
		VirtualFlag:    VirtualVideo,
		NewPatientFlag: EstablishedPatient,
		PayerGroup:     PayerCommercial,
		WebScheduled:   true,
		JourneyStage:   StageNormal,
		PortalEngaged:  true,
	}
	got := NoShowProbability(p, v)
	if math.Abs(got-0.05) > 1e-9 {
		t.Errorf("expected 0.05, got %.4f", got)
	}
}

func TestNoShowProbability_AdditiveFactors(t *testing.T) {
	// base -0.02, lead 5 +0.04, pediatric +0.03, medicaid +0.06, friday
	// +0.02, hour 14 +0.02, new patient +0.04, phone -0.03, not engaged
	// +0.03, tax season +0.03.
	p := &Patient{AgeBucket: AgePediatric}
	v := VisitContext{
		Date:           time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   5,
		HourOfDay:      14,
		DayOfWeek:      time.Friday,
		VirtualFlag:    VirtualTelephone,
		NewPatientFlag: NewPatient,
		PayerGroup:     PayerMedicaid,
		WebScheduled:   false,
		JourneyStage:   StageNormal,
		PortalEngaged:  false,
	}
	got := NoShowProbability(p, v)
	if math.Abs(got-0.22) > 1e-9 {
		t.Errorf("expected 0.22, got %.4f", got)
	}
}

func TestNoShowProbability_HistoryCap(t *testing.T) {
	base := &Patient{AgeBucket: AgeMiddleAged}
	capped := &Patient{
		AgeBucket:             AgeMiddleAged,
		HistoricalNoShowCount: 10,
		HistoricalNoShowRate:  1.0, // raw impact 0.5, capped at 0.20
	}
	v := VisitContext{
		Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   10,
		HourOfDay:      11,
		DayOfWeek:      time.Tuesday,
		VirtualFlag:    NonVirtual,
		NewPatientFlag: EstablishedPatient,
		PayerGroup:     PayerCommercial,
		JourneyStage:   StageNormal,
		PortalEngaged:  true,
	}
	diff := NoShowProbability(capped, v) - NoShowProbability(base, v)
	if math.Abs(diff-0.20) > 1e-9 {
		t.Errorf("history impact %.4f, want capped 0.20", diff)
	}
}

func TestNoShowProbability_LeadTimeMonotonic(t *testing.T) {
	p := &Patient{AgeBucket: AgeMiddleAged}
	v := VisitContext{
		Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		HourOfDay:      11,
		DayOfWeek:      time.Tuesday,
		VirtualFlag:    NonVirtual,
		NewPatientFlag: EstablishedPatient,
		PayerGroup:     PayerCommercial,
		JourneyStage:   StageNormal,
		PortalEngaged:  true,
	}
	prev := -1.0
	for _, lead := range []int{0, 2, 5, 10, 20, 40} {
		v.LeadTimeDays = lead
		got := NoShowProbability(p, v)
		if got < prev {
			t.Fatalf("probability decreased at lead %d: %.4f < %.4f", lead, got, prev)
		}
		prev = got
	}
}

func TestSeasonalityModifier(t *testing.T) {
	cases := []struct {
		date string
		want float64
	}{
		{"2024-12-20", 0.15}, // holiday start
		{"2024-12-28", 0.15},
		{"2025-01-03", 0.15}, // year wrap
		{"2025-01-05", 0.15},
		{"2025-01-06", 0.00}, // just past holiday
		{"2025-07-01", 0.08},
		{"2025-07-20", 0.08},
		{"2025-08-15", 0.08}, // summer wins over back-to-school
		{"2025-08-16", 0.05},
		{"2025-08-31", 0.05},
		{"2025-04-01", 0.03},
		{"2025-04-10", 0.03},
		{"2025-04-16", 0.00},
		{"2025-03-15", 0.00},
		{"2024-12-19", 0.00},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.date, err)
		}
		if got := seasonalityModifier(d); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("seasonalityModifier(%s) = %.2f, want %.2f", tc.date, got, tc.want)
		}
	}
}
