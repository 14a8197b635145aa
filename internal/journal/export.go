package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// TestExportDir is used for testing to override the export directory
var TestExportDir string

type csvRow struct {
	Time     string `csv:"time"`
	Kind     string `csv:"kind"`
	Life     int    `csv:"life"`
	Creature string `csv:"creature"`
	Stat     string `csv:"stat"`
	Value    int    `csv:"value"`
	Detail   string `csv:"detail"`
}

type careRow struct {
	Life         int     `csv:"life"`
	Samples      int     `csv:"samples"`
	Hygiene      float64 `csv:"avg_hygiene"`
	Fun          float64 `csv:"avg_fun"`
	Muscle       float64 `csv:"avg_muscle"`
	Intelligence float64 `csv:"avg_intelligence"`
}

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	rows := make([]*csvRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &csvRow{
			Time:     e.Time.UTC().Format(time.RFC3339Nano),
			Kind:     string(e.Kind),
			Life:     e.Life,
			Creature: e.Creature,
			Stat:     string(e.Stat),
			Value:    e.Value,
			Detail:   e.Detail,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing journal csv: %w", err)
	}
	return nil
}

// WriteCareCSV writes one row per life with its average stats.
func WriteCareCSV(w io.Writer, history []CareQuality) error {
	rows := make([]*careRow, 0, len(history))
	for _, cq := range history {
		rows = append(rows, &careRow{
			Life:         cq.Life,
			Samples:      cq.Samples,
			Hygiene:      cq.Hygiene,
			Fun:          cq.Fun,
			Muscle:       cq.Muscle,
			Intelligence: cq.Intelligence,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing care csv: %w", err)
	}
	return nil
}

// WriteSnapshot writes v as indented JSON.
func WriteSnapshot(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ExportDir returns the directory exports are written to, creating it.
func ExportDir() (string, error) {
	dir := TestExportDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "petgame", "exports")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	return dir, nil
}

// Files names the files written by one export.
type Files struct {
	Journal  string
	Care     string
	Snapshot string
}

// Export writes the journal, the care history and snapshot into dir, with
// file names stamped by now.
func Export(dir string, now time.Time, j *Journal, snapshot any) (Files, error) {
	stamp := now.UTC().Format("20060102-150405")
	files := Files{
		Journal:  filepath.Join(dir, "journal-"+stamp+".csv"),
		Care:     filepath.Join(dir, "care-"+stamp+".csv"),
		Snapshot: filepath.Join(dir, "snapshot-"+stamp+".json"),
	}

	if err := writeFile(files.Journal, func(w io.Writer) error { return WriteCSV(w, j.Entries()) }); err != nil {
		return Files{}, err
	}
	if err := writeFile(files.Care, func(w io.Writer) error { return WriteCareCSV(w, j.CareHistory()) }); err != nil {
		return Files{}, err
	}
	if err := writeFile(files.Snapshot, func(w io.Writer) error { return WriteSnapshot(w, snapshot) }); err != nil {
		return Files{}, err
	}
	return files, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", filepath.Base(path), cerr)
		}
	}()
	return write(f)
}
