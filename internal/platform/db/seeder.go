package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/noshow/noshow/internal/synth"
)

// DatasetSeeder bulk-loads a generated dataset into PostgreSQL using the
// COPY protocol. Tables are truncated before loading so a seed run always
// reflects exactly one dataset.
type DatasetSeeder struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewDatasetSeeder(pool *pgxpool.Pool, logger zerolog.Logger) *DatasetSeeder {
	return &DatasetSeeder{pool: pool, logger: logger}
}

// truncateOrder lists tables child-first so foreign keys never block the
// truncate.
var truncateOrder = []string{"appointments", "insurance", "patients", "providers", "departments"}

// Seed truncates the dataset tables and loads all five collections inside a
// single transaction. It returns per-table row counts verified against the
// database after loading.
func (s *DatasetSeeder) Seed(ctx context.Context, ds *synth.Dataset) (map[string]int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range truncateOrder {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	if err := copyPatients(ctx, tx, ds.Patients); err != nil {
		return nil, err
	}
	if err := copyProviders(ctx, tx, ds.Providers); err != nil {
		return nil, err
	}
	if err := copyDepartments(ctx, tx, ds.Departments); err != nil {
		return nil, err
	}
	if err := copyInsurance(ctx, tx, ds.Insurance); err != nil {
		return nil, err
	}
	if err := copyAppointments(ctx, tx, ds.Appointments); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(truncateOrder))
	for _, table := range truncateOrder {
		var n int64
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
		s.logger.Info().Str("table", table).Int64("rows", n).Msg("table loaded")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit seed transaction: %w", err)
	}
	return counts, nil
}

func copyPatients(ctx context.Context, tx pgx.Tx, patients []*synth.Patient) error {
	columns := []string{
		"patientid", "enterpriseid", "patient_gender", "patient_age_bucket",
		"patient_race_ethnicity", "patient_email", "patient_zip_code",
		"portal_enterpriseid", "portal_last_login",
		"historical_no_show_count", "historical_no_show_rate",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"patients"}, columns,
		pgx.CopyFromSlice(len(patients), func(i int) ([]any, error) {
			p := patients[i]
			return []any{
				p.PatientID, p.EnterpriseID, string(p.Gender), string(p.AgeBucket),
				nullString(p.RaceEthnicity), nullString(p.Email), p.ZipCode,
				nullInt(p.PortalEnterpriseID), p.PortalLastLogin,
				p.HistoricalNoShowCount, p.HistoricalNoShowRate,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy patients: %w", err)
	}
	if int(n) != len(patients) {
		return fmt.Errorf("copy patients: wrote %d of %d rows", n, len(patients))
	}
	return nil
}

func copyProviders(ctx context.Context, tx pgx.Tx, providers []*synth.Provider) error {
	columns := []string{
		"providerid", "providerfirstname", "providerlastname", "providertype",
		"provider_specialty", "providernpinumber", "provider_affiliation",
		"patientfacingname",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"providers"}, columns,
		pgx.CopyFromSlice(len(providers), func(i int) ([]any, error) {
			p := providers[i]
			return []any{
				p.ProviderID, p.FirstName, p.LastName, string(p.ProviderType),
				p.Specialty, p.NPINumber, p.Affiliation, p.PatientFacingName,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy providers: %w", err)
	}
	if int(n) != len(providers) {
		return fmt.Errorf("copy providers: wrote %d of %d rows", n, len(providers))
	}
	return nil
}

func copyDepartments(ctx context.Context, tx pgx.Tx, departments []*synth.Department) error {
	columns := []string{
		"departmentid", "departmentname", "departmentspecialty", "billingname",
		"placeofservicecode", "placeofservicetype", "market", "division",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"departments"}, columns,
		pgx.CopyFromSlice(len(departments), func(i int) ([]any, error) {
			d := departments[i]
			return []any{
				d.DepartmentID, d.Name, d.Specialty, d.BillingName,
				d.PlaceOfServiceCode, string(d.PlaceOfServiceType), d.Market, d.Division,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy departments: %w", err)
	}
	if int(n) != len(departments) {
		return fmt.Errorf("copy departments: wrote %d of %d rows", n, len(departments))
	}
	return nil
}

func copyInsurance(ctx context.Context, tx pgx.Tx, records []*synth.Insurance) error {
	columns := []string{
		"primarypatientinsuranceid", "patientid", "sipg1", "sipg2",
		"insurance_plan_1_company_description", "insurance_group_id",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"insurance"}, columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				r.InsuranceID, r.PatientID, r.SIPG1, string(r.PayerGroup),
				r.CompanyName, nullString(r.GroupID),
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy insurance: %w", err)
	}
	if int(n) != len(records) {
		return fmt.Errorf("copy insurance: wrote %d of %d rows", n, len(records))
	}
	return nil
}

func copyAppointments(ctx context.Context, tx pgx.Tx, appointments []*synth.Appointment) error {
	columns := []string{
		"appointmentid", "patientid", "providerid", "departmentid",
		"parentappointmentid", "referringproviderid", "appointmentdate",
		"appointmentstarttime", "appointmentduration", "appointmenttypeid",
		"appointmenttypename", "appointmentstatus",
		"appointmentcreateddatetime", "appointmentscheduleddatetime",
		"appointmentcheckindatetime", "appointmentcheckoutdatetime",
		"appointmentcancelleddatetime", "web_scheduled", "virtual_flag",
		"new_patient_flag",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"appointments"}, columns,
		pgx.CopyFromSlice(len(appointments), func(i int) ([]any, error) {
			a := appointments[i]
			return []any{
				a.AppointmentID, a.PatientID, a.ProviderID, a.DepartmentID,
				a.ParentAppointmentID, a.ReferringProviderID, a.Date,
				a.StartTime, a.DurationMinutes, a.TypeID,
				a.TypeName, string(a.Status),
				a.CreatedAt, a.ScheduledAt,
				a.CheckinAt, a.CheckoutAt,
				a.CancelledAt, a.WebScheduled, string(a.VirtualFlag),
				string(a.NewPatientFlag),
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy appointments: %w", err)
	}
	if int(n) != len(appointments) {
		return fmt.Errorf("copy appointments: wrote %d of %d rows", n, len(appointments))
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
