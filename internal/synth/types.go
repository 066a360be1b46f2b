// Package synth generates synthetic medical appointment data for the
// no-show prediction pipeline. It produces reproducible patient, provider,
// department, insurance and appointment collections with realistic
// distributions, per-patient care journeys, seasonality effects and an
// evidence-based no-show probability model.
package synth

import "time"

// Gender is a patient gender label.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
	GenderOther  Gender = "Other"
)

// AgeBucket is a patient age range category.
type AgeBucket string

const (
	AgePediatric  AgeBucket = "0-17"
	AgeYoungAdult AgeBucket = "18-39"
	AgeMiddleAged AgeBucket = "40-64"
	AgeSenior     AgeBucket = "65+"
)

// ProviderType classifies healthcare providers.
type ProviderType string

const (
	ProviderPhysician          ProviderType = "Physician"
	ProviderNursePractitioner  ProviderType = "NP"
	ProviderPhysicianAssistant ProviderType = "PA"
)

// PlaceOfServiceType classifies department locations.
type PlaceOfServiceType string

const (
	PlaceOffice     PlaceOfServiceType = "Office"
	PlaceTelehealth PlaceOfServiceType = "Telehealth"
	PlaceUrgentCare PlaceOfServiceType = "Urgent Care"
)

// PayerGroup is an insurance payer grouping.
type PayerGroup string

const (
	PayerCommercial PayerGroup = "Commercial"
	PayerMedicare   PayerGroup = "Medicare"
	PayerMedicaid   PayerGroup = "Medicaid"
	PayerSelfPay    PayerGroup = "Self-Pay"
)

// AppointmentStatus is an appointment lifecycle status.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusComplete  AppointmentStatus = "Complete"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "No Show"
)

// VirtualFlag classifies the appointment modality.
type VirtualFlag string

const (
	NonVirtual       VirtualFlag = "Non-Virtual"
	VirtualVideo     VirtualFlag = "Virtual-Video"
	VirtualTelephone VirtualFlag = "Virtual-Telephone"
)

// NewPatientFlag marks whether the patient is new to the practice.
type NewPatientFlag string

const (
	NewPatient         NewPatientFlag = "NEW PATIENT"
	EstablishedPatient NewPatientFlag = "EST PATIENT"
)

// JourneyType is a per-patient archetype governing appointment cadence and
// specialty-visit patterns over the simulation horizon.
type JourneyType string

const (
	JourneyRoutineCare       JourneyType = "routine_care"
	JourneyChronicManagement JourneyType = "chronic_management"
	JourneyEpisodic          JourneyType = "episodic"
	JourneyReferralChain     JourneyType = "referral_chain"
	JourneyCareAbandonment   JourneyType = "care_abandonment"
)

// JourneyStage marks the position of a visit inside a journey, as seen by
// the probability model.
type JourneyStage string

const (
	StageNormal                JourneyStage = "normal"
	StageAbandonmentEscalating JourneyStage = "care_abandonment_escalating"
)

// Patient holds demographics and behavioral attributes. The two historical
// statistics fields are the only mutable state in the model: they are
// updated incrementally during the appointment simulation and overwritten
// by the final backfill pass.
type Patient struct {
	PatientID          int        `json:"patientid"`
	EnterpriseID       int        `json:"enterpriseid"`
	Gender             Gender     `json:"patient_gender"`
	AgeBucket          AgeBucket  `json:"patient_age_bucket"`
	RaceEthnicity      string     `json:"patient_race_ethnicity,omitempty"`
	Email              string     `json:"patient_email,omitempty"`
	ZipCode            string     `json:"patient_zip_code"`
	PortalEnterpriseID int        `json:"portal_enterpriseid,omitempty"`
	PortalLastLogin    *time.Time `json:"portal_last_login,omitempty"`

	HistoricalNoShowCount int     `json:"historical_no_show_count"`
	HistoricalNoShowRate  float64 `json:"historical_no_show_rate"`
}

// PortalEngaged reports whether the patient logged into the portal within
// the 90 days preceding now.
func PortalEngaged(p *Patient, now time.Time) bool {
	if p.PortalLastLogin == nil {
		return false
	}
	return now.Sub(*p.PortalLastLogin) <= 90*24*time.Hour
}

// Provider is a specialty-tagged member of the clinical staff.
type Provider struct {
	ProviderID        int          `json:"providerid"`
	FirstName         string       `json:"providerfirstname"`
	LastName          string       `json:"providerlastname"`
	ProviderType      ProviderType `json:"providertype"`
	Specialty         string       `json:"provider_specialty"`
	NPINumber         string       `json:"providernpinumber"`
	Affiliation       string       `json:"provider_affiliation"`
	PatientFacingName string       `json:"patientfacingname"`
}

// Department is a specialty- and market-tagged clinic location.
type Department struct {
	DepartmentID       int                `json:"departmentid"`
	Name               string             `json:"departmentname"`
	Specialty          string             `json:"departmentspecialty"`
	BillingName        string             `json:"billingname"`
	PlaceOfServiceCode string             `json:"placeofservicecode"`
	PlaceOfServiceType PlaceOfServiceType `json:"placeofservicetype"`
	Market             string             `json:"market"`
	Division           string             `json:"division"`
}

// Insurance is the patient's primary coverage, one record per patient. The
// record id reuses the patient id (1:1 relationship).
type Insurance struct {
	InsuranceID int        `json:"primarypatientinsuranceid"`
	PatientID   int        `json:"patientid"`
	SIPG1       string     `json:"sipg1"`
	PayerGroup  PayerGroup `json:"sipg2"`
	CompanyName string     `json:"insurance_plan_1_company_description"`
	GroupID     string     `json:"insurance_group_id,omitempty"`
}

// Appointment is a scheduled medical visit. Check-in/check-out timestamps
// are present only when the status is Complete; the cancelled timestamp
// only when the status is Cancelled.
type Appointment struct {
	AppointmentID       int  `json:"appointmentid"`
	PatientID           int  `json:"patientid"`
	ProviderID          int  `json:"providerid"`
	DepartmentID        int  `json:"departmentid"`
	ParentAppointmentID *int `json:"parentappointmentid,omitempty"`
	ReferringProviderID *int `json:"referringproviderid,omitempty"`

	Date            time.Time         `json:"appointmentdate"`
	StartTime       string            `json:"appointmentstarttime"` // HH:MM
	DurationMinutes int               `json:"appointmentduration"`
	TypeID          int               `json:"appointmenttypeid"`
	TypeName        string            `json:"appointmenttypename"`
	Status          AppointmentStatus `json:"appointmentstatus"`
	CreatedAt       time.Time         `json:"appointmentcreateddatetime"`
	ScheduledAt     time.Time         `json:"appointmentscheduleddatetime"`
	CheckinAt       *time.Time        `json:"appointmentcheckindatetime,omitempty"`
	CheckoutAt      *time.Time        `json:"appointmentcheckoutdatetime,omitempty"`
	CancelledAt     *time.Time        `json:"appointmentcancelleddatetime,omitempty"`

	WebScheduled   bool           `json:"web_scheduled"`
	VirtualFlag    VirtualFlag    `json:"virtual_flag"`
	NewPatientFlag NewPatientFlag `json:"new_patient_flag"`
}

// StartDateTime combines the appointment date and HH:MM start time.
func (a *Appointment) StartDateTime() time.Time {
	hour, minute := parseClock(a.StartTime)
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), hour, minute, 0, 0, time.UTC)
}

// HourOfDay returns the appointment start hour (0-23).
func (a *Appointment) HourOfDay() int {
	hour, _ := parseClock(a.StartTime)
	return hour
}

// LeadTimeDays returns the whole days between scheduling and the
// appointment start, floored at zero.
func LeadTimeDays(a *Appointment) int {
	if a.ScheduledAt.IsZero() {
		return 0
	}
	days := int(a.StartDateTime().Sub(a.ScheduledAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsPast reports whether the appointment start is before now.
func IsPast(a *Appointment, now time.Time) bool {
	return a.StartDateTime().Before(now)
}

// NoShow reports whether the appointment counts as a no-show: either the
// status says so, or the appointment is past, still marked Scheduled and
// was never checked in. The second clause deliberately treats abandoned
// scheduled appointments as no-shows.
func NoShow(a *Appointment, now time.Time) bool {
	if a.Status == StatusNoShow {
		return true
	}
	return IsPast(a, now) && a.Status == StatusScheduled && a.CheckinAt == nil
}

func parseClock(hhmm string) (hour, minute int) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, 0
	}
	hour = int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute = int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return hour, minute
}
