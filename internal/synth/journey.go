package synth

import (
	"hash/fnv"
	"time"
)

// patientTally tracks one patient's running history across simulation
// passes. Only past appointments count; the tally feeds the probability
// model for the patient's next appointment, so an appointment never sees
// its own outcome.
type patientTally struct {
	total    int
	noShows  int
	lastDate time.Time // zero until the patient has an appointment
}

// generateAppointments runs the journey simulation until at least target
// appointments exist. Each patient is assigned one journey type up front;
// the simulator then makes repeated shuffled passes over the patients,
// scaling per-patient quotas up on later passes to converge. The loop may
// overshoot the target; callers needing an exact count must truncate.
func (g *Generator) generateAppointments(
	patients []*Patient,
	providers []*Provider,
	departments []*Department,
	insurance []*Insurance,
	target int,
) []*Appointment {
	today := dateOnly(g.now)
	endDate := today.AddDate(0, 0, horizonFutureWeeks*7)
	startDate := endDate.AddDate(0, 0, -historyPastDays)
	windowDays := historyPastDays

	payerByPatient := make(map[int]PayerGroup, len(insurance))
	for _, ins := range insurance {
		payerByPatient[ins.PatientID] = ins.PayerGroup
	}

	providersBySpecialty := make(map[string][]*Provider)
	for _, p := range providers {
		providersBySpecialty[p.Specialty] = append(providersBySpecialty[p.Specialty], p)
	}
	departmentsBySpecialty := make(map[string][]*Department)
	for _, d := range departments {
		departmentsBySpecialty[d.Specialty] = append(departmentsBySpecialty[d.Specialty], d)
	}

	journeys := make(map[int]JourneyType, len(patients))
	tallies := make(map[int]*patientTally, len(patients))
	for _, p := range patients {
		journeys[p.PatientID] = journeyTypeWeights.Sample(g.s)
		tallies[p.PatientID] = &patientTally{}
	}

	appointments := make([]*Appointment, 0, target)
	nextID := 1

	for pass := 1; len(appointments) < target; pass++ {
		order := make([]*Patient, len(patients))
		copy(order, patients)
		g.s.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, patient := range order {
			if len(appointments) >= target {
				break
			}

			journey := journeys[patient.PatientID]
			payer, ok := payerByPatient[patient.PatientID]
			if !ok {
				payer = PayerSelfPay
			}
			quota := g.passQuota(journey, pass)

			tally := tallies[patient.PatientID]
			noShows := tally.noShows
			total := tally.total
			lastDate := tally.lastDate
			var parentID *int
			var date time.Time

			// A started journey always runs to its quota, so the final
			// count can overshoot the target by at most one quota.
			for apptNum := 0; apptNum < quota; apptNum++ {
				specialty := g.pickSpecialty(journey, apptNum)
				provider := pickBySpecialty(g.s, providersBySpecialty[specialty], providers)
				department := pickBySpecialty(g.s, departmentsBySpecialty[specialty], departments)

				switch {
				case apptNum == 0 && lastDate.IsZero():
					// First appointment ever: uniform within the window,
					// leaving room for follow-ups before the horizon end.
					date = startDate.AddDate(0, 0, g.s.IntBetween(0, windowDays-30))
				case apptNum == 0:
					// Continuation from a previous pass.
					date = lastDate.AddDate(0, 0, g.s.IntBetween(7, 90))
					if date.After(endDate) {
						date = startDate.AddDate(0, 0, g.s.IntBetween(0, 365))
					}
				default:
					date = date.AddDate(0, 0, g.visitInterval(journey))
					if date.After(endDate) {
						date = startDate.AddDate(0, 0, g.s.IntBetween(0, 365))
					}
				}

				hour := g.s.IntBetween(7, 16)
				minute := Pick(g.s, []int{0, 15, 30, 45})
				startTime := clockString(hour, minute)

				virtualFlag := virtualFlagWeights.Sample(g.s)
				newPatientFlag := EstablishedPatient
				if total == 0 && apptNum == 0 {
					newPatientFlag = NewPatient
				}
				duration := durationWeights.Sample(g.s)

				leadTime := g.s.LeadTimeDays()
				scheduledAt := date.AddDate(0, 0, -leadTime)

				engaged := PortalEngaged(patient, g.now)
				webProb := 0.15
				if engaged {
					webProb = 0.40
				}
				webScheduled := g.s.Chance(webProb)

				apptType := g.pickAppointmentType(virtualFlag, specialty)

				stage := StageNormal
				if journey == JourneyCareAbandonment && apptNum >= 2 {
					stage = StageAbandonmentEscalating
				}

				// Expose only strictly prior history to the model.
				patient.HistoricalNoShowCount = noShows
				patient.HistoricalNoShowRate = rate(noShows, total)

				prob := NoShowProbability(patient, VisitContext{
					Date:           date,
					LeadTimeDays:   leadTime,
					HourOfDay:      hour,
					DayOfWeek:      date.Weekday(),
					VirtualFlag:    virtualFlag,
					NewPatientFlag: newPatientFlag,
					PayerGroup:     payer,
					WebScheduled:   webScheduled,
					JourneyStage:   stage,
					PortalEngaged:  engaged,
				})

				appt := &Appointment{
					AppointmentID:       nextID,
					PatientID:           patient.PatientID,
					ProviderID:          provider.ProviderID,
					DepartmentID:        department.DepartmentID,
					Date:                date,
					StartTime:           startTime,
					DurationMinutes:     duration,
					TypeID:              typeID(apptType.Name),
					TypeName:            apptType.Name,
					ScheduledAt:         scheduledAt,
					CreatedAt:           scheduledAt.AddDate(0, 0, -g.s.IntBetween(0, 5)),
					ParentAppointmentID: parentID,
					WebScheduled:        webScheduled,
					VirtualFlag:         virtualFlag,
					NewPatientFlag:      newPatientFlag,
				}
				if journey == JourneyReferralChain && apptNum > 0 {
					rid := provider.ProviderID
					appt.ReferringProviderID = &rid
				}

				if date.After(today) {
					appt.Status = StatusScheduled
				} else {
					// One uniform draw resolves the outcome: no-show below
					// the model probability, then a flat cancellation band,
					// otherwise complete.
					roll := g.s.Float64()
					switch {
					case roll < prob:
						appt.Status = StatusNoShow
					case roll < prob+cancellationBand:
						appt.Status = StatusCancelled
						cancelled := scheduledAt
						appt.CancelledAt = &cancelled
					default:
						appt.Status = StatusComplete
						start := appt.StartDateTime()
						checkin := start.Add(-time.Duration(g.s.IntBetween(5, 30)) * time.Minute)
						checkout := start.Add(time.Duration(duration+g.s.IntBetween(5, 45)) * time.Minute)
						appt.CheckinAt = &checkin
						appt.CheckoutAt = &checkout
					}

					total++
					if appt.Status == StatusNoShow {
						noShows++
					}
				}

				appointments = append(appointments, appt)
				id := nextID
				parentID = &id
				nextID++
				lastDate = date
			}

			tally.noShows = noShows
			tally.total = total
			tally.lastDate = lastDate
		}
	}

	return appointments
}

// passQuota draws the number of appointments to generate for a patient in
// the given pass. Later passes scale the journey-specific range up so the
// simulation converges on the target faster.
func (g *Generator) passQuota(journey JourneyType, pass int) int {
	multiplier := 1 + 0.5*float64(pass-1)

	var lo, hi int
	switch journey {
	case JourneyRoutineCare:
		lo, hi = 2, 6
	case JourneyChronicManagement:
		lo, hi = 6, 24
	case JourneyEpisodic:
		lo, hi = 1, 4
	case JourneyReferralChain:
		lo, hi = 3, 8
	default: // care abandonment
		lo, hi = 3, 6
	}
	return int(float64(g.s.IntBetween(lo, hi)) * multiplier)
}

// pickSpecialty selects the visit specialty. Referral chains start at
// primary care and escalate to a specialist; all other journeys draw
// uniformly.
func (g *Generator) pickSpecialty(journey JourneyType, apptNum int) string {
	if journey == JourneyReferralChain {
		if apptNum == 0 {
			return Pick(g.s, primaryCareSpecialties)
		}
		return Pick(g.s, nonPrimaryCareSpecialties)
	}
	return Pick(g.s, specialties)
}

// visitInterval draws the gap in days to the next visit in an ongoing
// journey.
func (g *Generator) visitInterval(journey JourneyType) int {
	switch journey {
	case JourneyChronicManagement:
		return g.s.IntBetween(21, 90) // monthly to quarterly
	case JourneyCareAbandonment:
		return g.s.IntBetween(14, 45)
	default:
		return g.s.IntBetween(7, 180)
	}
}

func (g *Generator) pickAppointmentType(flag VirtualFlag, specialty string) appointmentType {
	switch {
	case flag != NonVirtual:
		return Pick(g.s, telehealthAppointmentTypes)
	case isPrimaryCare(specialty):
		return Pick(g.s, primaryCareAppointmentTypes)
	default:
		return Pick(g.s, specialtyAppointmentTypes)
	}
}

// pickBySpecialty prefers the specialty-matched pool but falls back to the
// unfiltered pool when no provider or department carries the specialty
// (availability over strictness).
func pickBySpecialty[T any](s *Sampler, matched, all []T) T {
	if len(matched) > 0 {
		return Pick(s, matched)
	}
	return Pick(s, all)
}

// BackfillPatientStats recomputes each patient's historical no-show
// statistics from the complete final appointment set (past appointments
// only), overwriting the incremental values tracked during simulation.
func BackfillPatientStats(patients []*Patient, appointments []*Appointment, now time.Time) {
	today := dateOnly(now)

	type counts struct{ total, noShows int }
	byPatient := make(map[int]*counts, len(patients))

	for _, a := range appointments {
		if a.Date.After(today) {
			continue
		}
		c := byPatient[a.PatientID]
		if c == nil {
			c = &counts{}
			byPatient[a.PatientID] = c
		}
		c.total++
		if NoShow(a, now) {
			c.noShows++
		}
	}

	for _, p := range patients {
		c := byPatient[p.PatientID]
		if c == nil {
			p.HistoricalNoShowCount = 0
			p.HistoricalNoShowRate = 0
			continue
		}
		p.HistoricalNoShowCount = c.noShows
		p.HistoricalNoShowRate = rate(c.noShows, c.total)
	}
}

func rate(noShows, total int) float64 {
	if total < 1 {
		total = 1
	}
	return float64(noShows) / float64(total)
}

func clockString(hour, minute int) string {
	buf := []byte{'0', '0', ':', '0', '0'}
	buf[0] = byte('0' + hour/10)
	buf[1] = byte('0' + hour%10)
	buf[3] = byte('0' + minute/10)
	buf[4] = byte('0' + minute%10)
	return string(buf)
}

// typeID derives a stable numeric id from the appointment type name.
func typeID(name string) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32() % 1000)
}
