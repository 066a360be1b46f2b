// Package export writes generated datasets to columnar CSV or
// newline-delimited JSON files, one file per entity collection.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/noshow/noshow/internal/synth"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

var patientHeader = []string{
	"patientid", "enterpriseid", "patient_gender", "patient_age_bucket",
	"patient_race_ethnicity", "patient_email", "patient_zip_code",
	"portal_enterpriseid", "portal_last_login",
	"historical_no_show_count", "historical_no_show_rate",
}

var providerHeader = []string{
	"providerid", "providerfirstname", "providerlastname", "providertype",
	"provider_specialty", "providernpinumber", "provider_affiliation",
	"patientfacingname",
}

var departmentHeader = []string{
	"departmentid", "departmentname", "departmentspecialty", "billingname",
	"placeofservicecode", "placeofservicetype", "market", "division",
}

var insuranceHeader = []string{
	"primarypatientinsuranceid", "patientid", "sipg1", "sipg2",
	"insurance_plan_1_company_description", "insurance_group_id",
}

var appointmentHeader = []string{
	"appointmentid", "patientid", "providerid", "departmentid",
	"parentappointmentid", "referringproviderid", "appointmentdate",
	"appointmentstarttime", "appointmentduration", "appointmenttypeid",
	"appointmenttypename", "appointmentstatus",
	"appointmentcreateddatetime", "appointmentscheduleddatetime",
	"appointmentcheckindatetime", "appointmentcheckoutdatetime",
	"appointmentcancelleddatetime", "web_scheduled", "virtual_flag",
	"new_patient_flag",
}

// WritePatientsCSV writes the patient collection as CSV with a header row.
func WritePatientsCSV(w io.Writer, patients []*synth.Patient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(patientHeader); err != nil {
		return fmt.Errorf("write patients header: %w", err)
	}
	for _, p := range patients {
		row := []string{
			strconv.Itoa(p.PatientID),
			strconv.Itoa(p.EnterpriseID),
			string(p.Gender),
			string(p.AgeBucket),
			p.RaceEthnicity,
			p.Email,
			p.ZipCode,
			optInt(p.PortalEnterpriseID),
			optTime(p.PortalLastLogin),
			strconv.Itoa(p.HistoricalNoShowCount),
			formatFloat(p.HistoricalNoShowRate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write patient %d: %w", p.PatientID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProvidersCSV writes the provider collection as CSV.
func WriteProvidersCSV(w io.Writer, providers []*synth.Provider) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(providerHeader); err != nil {
		return fmt.Errorf("write providers header: %w", err)
	}
	for _, p := range providers {
		row := []string{
			strconv.Itoa(p.ProviderID),
			p.FirstName,
			p.LastName,
			string(p.ProviderType),
			p.Specialty,
			p.NPINumber,
			p.Affiliation,
			p.PatientFacingName,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write provider %d: %w", p.ProviderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDepartmentsCSV writes the department collection as CSV.
func WriteDepartmentsCSV(w io.Writer, departments []*synth.Department) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(departmentHeader); err != nil {
		return fmt.Errorf("write departments header: %w", err)
	}
	for _, d := range departments {
		row := []string{
			strconv.Itoa(d.DepartmentID),
			d.Name,
			d.Specialty,
			d.BillingName,
			d.PlaceOfServiceCode,
			string(d.PlaceOfServiceType),
			d.Market,
			d.Division,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write department %d: %w", d.DepartmentID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInsuranceCSV writes the insurance collection as CSV.
func WriteInsuranceCSV(w io.Writer, records []*synth.Insurance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(insuranceHeader); err != nil {
		return fmt.Errorf("write insurance header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.InsuranceID),
			strconv.Itoa(r.PatientID),
			r.SIPG1,
			string(r.PayerGroup),
			r.CompanyName,
			r.GroupID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write insurance %d: %w", r.InsuranceID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAppointmentsCSV writes the appointment collection as CSV.
func WriteAppointmentsCSV(w io.Writer, appointments []*synth.Appointment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(appointmentHeader); err != nil {
		return fmt.Errorf("write appointments header: %w", err)
	}
	for _, a := range appointments {
		row := []string{
			strconv.Itoa(a.AppointmentID),
			strconv.Itoa(a.PatientID),
			strconv.Itoa(a.ProviderID),
			strconv.Itoa(a.DepartmentID),
			optIntPtr(a.ParentAppointmentID),
			optIntPtr(a.ReferringProviderID),
			a.Date.Format(dateLayout),
			a.StartTime,
			strconv.Itoa(a.DurationMinutes),
			strconv.Itoa(a.TypeID),
			a.TypeName,
			string(a.Status),
			a.CreatedAt.Format(timeLayout),
			a.ScheduledAt.Format(timeLayout),
			optTime(a.CheckinAt),
			optTime(a.CheckoutAt),
			optTime(a.CancelledAt),
			strconv.FormatBool(a.WebScheduled),
			string(a.VirtualFlag),
			string(a.NewPatientFlag),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write appointment %d: %w", a.AppointmentID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func optInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func optIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
