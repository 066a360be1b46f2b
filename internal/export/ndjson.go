package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/noshow/noshow/internal/synth"
)

// WriteNDJSON writes any entity slice as newline-delimited JSON, one
// record per line, using the entities' wire field names.
func WriteNDJSON[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

// EntityNames lists the dataset collections in dependency order; the names
// double as output file basenames.
var EntityNames = []string{"patients", "providers", "departments", "insurance", "appointments"}

// ValidEntity reports whether name is a known collection.
func ValidEntity(name string) bool {
	for _, n := range EntityNames {
		if n == name {
			return true
		}
	}
	return false
}

// WriteEntityNDJSON writes one named collection from the dataset.
func WriteEntityNDJSON(w io.Writer, ds *synth.Dataset, entity string) error {
	switch entity {
	case "patients":
		return WriteNDJSON(w, ds.Patients)
	case "providers":
		return WriteNDJSON(w, ds.Providers)
	case "departments":
		return WriteNDJSON(w, ds.Departments)
	case "insurance":
		return WriteNDJSON(w, ds.Insurance)
	case "appointments":
		return WriteNDJSON(w, ds.Appointments)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

// WriteEntityCSV writes one named collection from the dataset as CSV.
func WriteEntityCSV(w io.Writer, ds *synth.Dataset, entity string) error {
	switch entity {
	case "patients":
		return WritePatientsCSV(w, ds.Patients)
	case "providers":
		return WriteProvidersCSV(w, ds.Providers)
	case "departments":
		return WriteDepartmentsCSV(w, ds.Departments)
	case "insurance":
		return WriteInsuranceCSV(w, ds.Insurance)
	case "appointments":
		return WriteAppointmentsCSV(w, ds.Appointments)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}
