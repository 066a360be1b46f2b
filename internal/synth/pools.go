package synth

// Model calibration constants. The base rate is intentionally negative: it
// is a calibration offset that only becomes a probability after the
// additive adjustments, and the result is clamped to [minNoShowProb,
// maxNoShowProb].
const (
	baseNoShowRate   = -0.02
	minNoShowProb    = 0.03
	maxNoShowProb    = 0.85
	cancellationBand = 0.10

	gammaLeadShape  = 2.0
	gammaLeadScale  = 7.0
	maxLeadTimeDays = 90

	portalEngagedWindowDays = 90
	historyPastDays         = 730 // 24 months of history
	horizonFutureWeeks      = 6
)

var ageBucketWeights = NewWeightedTable([]Weighted[AgeBucket]{
	{AgePediatric, 0.15},
	{AgeYoungAdult, 0.30},
	{AgeMiddleAged, 0.35},
	{AgeSenior, 0.20},
})

var genderWeights = NewWeightedTable([]Weighted[Gender]{
	{GenderFemale, 0.55},
	{GenderMale, 0.44},
	{GenderOther, 0.01},
})

var payerWeights = NewWeightedTable([]Weighted[PayerGroup]{
	{PayerCommercial, 0.40},
	{PayerMedicare, 0.25},
	{PayerMedicaid, 0.20},
	{PayerSelfPay, 0.15},
})

var virtualFlagWeights = NewWeightedTable([]Weighted[VirtualFlag]{
	{NonVirtual, 0.70},
	{VirtualVideo, 0.20},
	{VirtualTelephone, 0.10},
})

var durationWeights = NewWeightedTable([]Weighted[int]{
	{15, 0.40},
	{30, 0.35},
	{45, 0.15},
	{60, 0.10},
})

var journeyTypeWeights = NewWeightedTable([]Weighted[JourneyType]{
	{JourneyRoutineCare, 0.40},
	{JourneyChronicManagement, 0.25},
	{JourneyEpisodic, 0.20},
	{JourneyReferralChain, 0.10},
	{JourneyCareAbandonment, 0.05},
})

var providerTypeWeights = NewWeightedTable([]Weighted[ProviderType]{
	{ProviderPhysician, 0.60},
	{ProviderNursePractitioner, 0.25},
	{ProviderPhysicianAssistant, 0.15},
})

var placeOfServiceWeights = NewWeightedTable([]Weighted[PlaceOfServiceType]{
	{PlaceOffice, 0.85},
	{PlaceTelehealth, 0.10},
	{PlaceUrgentCare, 0.05},
})

// Empty string means unknown/declined.
var raceEthnicityWeights = NewWeightedTable([]Weighted[string]{
	{"White", 0.60},
	{"Black or African American", 0.13},
	{"Hispanic or Latino", 0.12},
	{"Asian", 0.06},
	{"American Indian", 0.01},
	{"Native Hawaiian", 0.01},
	{"Two or More Races", 0.03},
	{"Other", 0.02},
	{"", 0.02},
})

var specialties = []string{
	"Family Medicine",
	"Internal Medicine",
	"Pediatrics",
	"Cardiology",
	"Orthopedics",
	"Dermatology",
	"Neurology",
	"Gastroenterology",
	"Endocrinology",
	"Pulmonology",
	"OB/GYN",
	"Psychiatry",
	"Rheumatology",
	"Urology",
	"Ophthalmology",
}

var primaryCareSpecialties = []string{
	"Family Medicine",
	"Internal Medicine",
	"Pediatrics",
}

var nonPrimaryCareSpecialties = []string{
	"Cardiology",
	"Orthopedics",
	"Dermatology",
	"Neurology",
	"Gastroenterology",
	"Endocrinology",
	"Pulmonology",
	"OB/GYN",
	"Psychiatry",
	"Rheumatology",
	"Urology",
	"Ophthalmology",
}

var markets = []string{"Region A", "Region B", "Region C", "Region D"}

var providerAffiliations = []string{"Employed", "Affiliated", "Locum Tenens"}

// insuranceCompanies is keyed and ordered by payerGroups.
var payerGroups = []PayerGroup{PayerCommercial, PayerMedicare, PayerMedicaid, PayerSelfPay}

var insuranceCompanies = map[PayerGroup][]string{
	PayerCommercial: {
		"Blue Cross Blue Shield",
		"United Healthcare",
		"Aetna",
		"Cigna",
		"Humana",
	},
	PayerMedicare: {
		"Medicare Part B",
		"Medicare Advantage",
		"Medicare Supplement",
	},
	PayerMedicaid: {
		"Medicaid",
		"Managed Medicaid Plan",
	},
	PayerSelfPay: {
		"Self-Pay",
		"Uninsured",
	},
}

// appointmentType pairs a patient-facing name with a nominal duration.
type appointmentType struct {
	Name     string
	Duration int
}

var primaryCareAppointmentTypes = []appointmentType{
	{"Annual Wellness Exam", 30},
	{"Follow-up Visit", 15},
	{"New Patient Visit", 45},
	{"Sick Visit", 15},
	{"Preventive Care", 30},
}

var specialtyAppointmentTypes = []appointmentType{
	{"Consultation", 45},
	{"Follow-up Visit", 30},
	{"Procedure", 60},
	{"New Patient Eval", 60},
}

var telehealthAppointmentTypes = []appointmentType{
	{"Virtual Follow-up", 15},
	{"Video Visit", 30},
	{"Phone Consultation", 15},
}

var firstNamesMale = []string{
	"James", "Robert", "John", "Michael", "David", "William", "Richard",
	"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
	"Anthony", "Mark", "Donald", "Steven", "Paul", "Andrew", "Joshua",
	"Kenneth", "Kevin", "Brian", "George", "Timothy", "Ronald", "Edward",
	"Jason", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas", "Eric",
	"Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon",
}

var firstNamesFemale = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
	"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Betty",
	"Margaret", "Sandra", "Ashley", "Dorothy", "Kimberly", "Emily",
	"Donna", "Michelle", "Carol", "Amanda", "Melissa", "Deborah",
	"Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia", "Kathleen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
	"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
	"Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore",
	"Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris",
	"Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen",
}

// seasonWindow is a calendar window carrying an additive no-show modifier.
// Windows whose start month exceeds the end month wrap the year boundary.
type seasonWindow struct {
	Name       string
	StartMonth int
	StartDay   int
	EndMonth   int
	EndDay     int
	Modifier   float64
}

// Checked in order; the first matching window wins.
var seasonalityWindows = []seasonWindow{
	{"holiday_season", 12, 20, 1, 5, 0.15},
	{"summer_vacation", 7, 1, 8, 15, 0.08},
	{"back_to_school", 8, 15, 8, 31, 0.05},
	{"tax_season", 4, 1, 4, 15, 0.03},
}
