package synth

import (
	"fmt"
	"time"
)

// Config controls the volume and reproducibility of a generation run.
type Config struct {
	PatientCount     int       `json:"patientCount"`
	ProviderCount    int       `json:"providerCount"`
	DepartmentCount  int       `json:"departmentCount"`
	AppointmentCount int       `json:"appointmentCount"`
	Seed             int64     `json:"seed"`
	Now              time.Time `json:"now,omitempty"`
}

// DefaultConfig returns the standard full-scale generation volumes.
func DefaultConfig() Config {
	return Config{
		PatientCount:     5000,
		ProviderCount:    100,
		DepartmentCount:  40,
		AppointmentCount: 100000,
	}
}

// Validate rejects configurations that can never complete, before any
// generation starts.
func (c Config) Validate() error {
	if c.PatientCount <= 0 {
		return fmt.Errorf("patient count must be positive, got %d", c.PatientCount)
	}
	if c.ProviderCount <= 0 {
		return fmt.Errorf("provider count must be positive, got %d", c.ProviderCount)
	}
	if c.DepartmentCount <= 0 {
		return fmt.Errorf("department count must be positive, got %d", c.DepartmentCount)
	}
	if c.AppointmentCount <= 0 {
		return fmt.Errorf("appointment count must be positive, got %d", c.AppointmentCount)
	}
	return nil
}

// Dataset holds the five generated entity collections in dependency order.
type Dataset struct {
	Patients     []*Patient
	Providers    []*Provider
	Departments  []*Department
	Insurance    []*Insurance
	Appointments []*Appointment
}

// Result summarizes a generation run.
type Result struct {
	Patients         int           `json:"patients"`
	Providers        int           `json:"providers"`
	Departments      int           `json:"departments"`
	Insurance        int           `json:"insurance"`
	Appointments     int           `json:"appointments"`
	PastAppointments int           `json:"pastAppointments"`
	NoShowRate       float64       `json:"noShowRate"`
	Duration         time.Duration `json:"duration"`
}

// Generator produces a complete synthetic dataset from a single seeded
// random source. It is single-threaded: one Generator must not be shared
// across goroutines during Generate.
type Generator struct {
	cfg Config
	s   *Sampler
	now time.Time
}

// NewGenerator creates a generator. A zero seed picks a time-based seed; a
// zero Now uses the wall clock. Fixing both makes runs byte-identical.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Generator{
		cfg: cfg,
		s:   NewSampler(seed),
		now: now.UTC(),
	}
}

// Generate builds all five collections in dependency order: leaf entities,
// then insurance, then the appointment simulation, then the statistics
// backfill.
func (g *Generator) Generate() (*Dataset, *Result, error) {
	start := time.Now()

	if err := g.cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid generation config: %w", err)
	}

	ds := &Dataset{}
	ds.Patients = g.generatePatients(g.cfg.PatientCount)
	ds.Providers = g.generateProviders(g.cfg.ProviderCount)
	ds.Departments = g.generateDepartments(g.cfg.DepartmentCount)
	ds.Insurance = g.generateInsurance(ds.Patients)
	ds.Appointments = g.generateAppointments(
		ds.Patients, ds.Providers, ds.Departments, ds.Insurance, g.cfg.AppointmentCount)

	BackfillPatientStats(ds.Patients, ds.Appointments, g.now)

	result := &Result{
		Patients:     len(ds.Patients),
		Providers:    len(ds.Providers),
		Departments:  len(ds.Departments),
		Insurance:    len(ds.Insurance),
		Appointments: len(ds.Appointments),
		Duration:     time.Since(start),
	}
	result.PastAppointments, result.NoShowRate = noShowSummary(ds.Appointments, g.now)

	return ds, result, nil
}

// Now returns the reference instant the generator treats as "now".
func (g *Generator) Now() time.Time { return g.now }

// noShowSummary counts past appointments and their no-show fraction.
func noShowSummary(appointments []*Appointment, now time.Time) (past int, noShowRate float64) {
	today := dateOnly(now)
	noShows := 0
	for _, a := range appointments {
		if a.Date.After(today) {
			continue
		}
		past++
		if NoShow(a, now) {
			noShows++
		}
	}
	if past == 0 {
		return 0, 0
	}
	return past, float64(noShows) / float64(past)
}
