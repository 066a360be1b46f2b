package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/noshow/noshow/internal/synth"
)

func testDataset(t *testing.T) *synth.Dataset {
	t.Helper()
	gen := synth.NewGenerator(synth.Config{
		PatientCount:     50,
		ProviderCount:    10,
		DepartmentCount:  5,
		AppointmentCount: 500,
		Seed:             42,
		Now:              time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	})
	ds, _, err := gen.Generate()
	if err != nil {
		t.Fatalf("generate test dataset: %v", err)
	}
	return ds
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("csv"); err != nil || f != FormatCSV {
		t.Errorf("ParseFormat(csv) = %v, %v", f, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("parquet"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWritePatientsCSV(t *testing.T) {
	ds := testDataset(t)

	var buf bytes.Buffer
	if err := WritePatientsCSV(&buf, ds.Patients); err != nil {
		t.Fatalf("WritePatientsCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != len(ds.Patients)+1 {
		t.Fatalf("expected %d rows, got %d", len(ds.Patients)+1, len(rows))
	}
	if rows[0][0] != "patientid" || rows[0][2] != "patient_gender" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" {
		t.Errorf("first patient id %q, want 1", rows[1][0])
	}
}

func TestWriteAppointmentsCSV(t *testing.T) {
	ds := testDataset(t)

	var buf bytes.Buffer
	if err := WriteAppointmentsCSV(&buf, ds.Appointments); err != nil {
		t.Fatalf("WriteAppointmentsCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != len(ds.Appointments)+1 {
		t.Fatalf("expected %d rows, got %d", len(ds.Appointments)+1, len(rows))
	}

	header := rows[0]
	statusCol := -1
	for i, name := range header {
		if name == "appointmentstatus" {
			statusCol = i
		}
	}
	if statusCol < 0 {
		t.Fatalf("appointmentstatus column missing from header %v", header)
	}

	valid := map[string]bool{"Scheduled": true, "Complete": true, "Cancelled": true, "No Show": true}
	for _, row := range rows[1:] {
		if !valid[row[statusCol]] {
			t.Fatalf("unexpected status label %q", row[statusCol])
		}
	}
}

func TestWriteNDJSON(t *testing.T) {
	ds := testDataset(t)

	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, ds.Patients); err != nil {
		t.Fatalf("WriteNDJSON: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(ds.Patients) {
		t.Fatalf("expected %d lines, got %d", len(ds.Patients), len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first["patientid"] != float64(1) {
		t.Errorf("first record patientid %v, want 1", first["patientid"])
	}
	if _, ok := first["patient_gender"]; !ok {
		t.Error("patient_gender field missing")
	}
}

func TestWriteEntityNDJSON_UnknownEntity(t *testing.T) {
	ds := testDataset(t)
	var buf bytes.Buffer
	if err := WriteEntityNDJSON(&buf, ds, "encounters"); err == nil {
		t.Error("expected error for unknown entity")
	}
	if err := WriteEntityCSV(&buf, ds, "encounters"); err == nil {
		t.Error("expected error for unknown entity")
	}
}

func TestWriteDataset(t *testing.T) {
	ds := testDataset(t)
	dir := filepath.Join(t.TempDir(), "out")

	files, err := WriteDataset(dir, ds, FormatCSV)
	if err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	if len(files) != len(EntityNames) {
		t.Fatalf("expected %d files, got %d", len(EntityNames), len(files))
	}

	for _, entity := range EntityNames {
		path, ok := files[entity]
		if !ok {
			t.Fatalf("no file recorded for %s", entity)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
		if !strings.HasSuffix(path, entity+".csv") {
			t.Errorf("unexpected file name %s", path)
		}
	}
}

func TestWriteDataset_NDJSON(t *testing.T) {
	ds := testDataset(t)
	dir := t.TempDir()

	files, err := WriteDataset(dir, ds, FormatNDJSON)
	if err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	for entity, path := range files {
		if !strings.HasSuffix(path, entity+".ndjson") {
			t.Errorf("unexpected file name %s", path)
		}
	}
}
