package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/noshow/noshow/internal/synth"
)

// Format selects the on-disk file format for a dataset export.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatNDJSON Format = "ndjson"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatNDJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or ndjson)", name)
	}
}

// WriteDataset writes all five collections to dir, one file per entity,
// creating the directory if needed. It returns entity name -> file path.
func WriteDataset(dir string, ds *synth.Dataset, format Format) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	files := make(map[string]string, len(EntityNames))
	for _, entity := range EntityNames {
		path := filepath.Join(dir, entity+"."+string(format))
		if err := writeEntityFile(path, ds, entity, format); err != nil {
			return nil, err
		}
		files[entity] = path
	}
	return files, nil
}

func writeEntityFile(path string, ds *synth.Dataset, entity string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = WriteEntityCSV(f, ds, entity)
	case FormatNDJSON:
		err = WriteEntityNDJSON(f, ds, entity)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
