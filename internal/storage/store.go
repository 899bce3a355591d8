package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Record is one line of the timing log. Workers is zero for records that
// were written without a worker count.
type Record struct {
	Program string
	Bodies  int
	Elapsed time.Duration
	Workers int
}

func (r Record) fields() []string {
	out := []string{
		r.Program,
		strconv.Itoa(r.Bodies),
		strconv.FormatInt(r.Elapsed.Milliseconds(), 10),
	}
	if r.Workers > 0 {
		out = append(out, strconv.Itoa(r.Workers))
	}
	return out
}

// TimingLog is an append-only comma-separated file of run timings:
//
//	program, bodies, elapsedMillis[, workers]
type TimingLog struct {
	path string
}

func New(path string) *TimingLog {
	return &TimingLog{path: path}
}

func (l *TimingLog) Path() string { return l.path }

// Append writes one record, creating the file and its directory if needed.
func (l *TimingLog) Append(r Record) error {
	if strings.ContainsAny(r.Program, ",\n") {
		return fmt.Errorf("storage: program name %q contains a separator", r.Program)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, strings.Join(r.fields(), ", ")); err != nil {
		return err
	}
	return f.Close()
}

// Records parses the whole log. A missing file has no records. Lines
// that do not parse are skipped.
func (l *TimingLog) Records() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records := make([]Record, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, ok := parseRecord(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, bool) {
	if len(row) < 3 {
		return Record{}, false
	}
	bodies, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Record{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		Program: strings.TrimSpace(row[0]),
		Bodies:  bodies,
		Elapsed: time.Duration(ms) * time.Millisecond,
	}
	if len(row) > 3 {
		if w, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil {
			rec.Workers = w
		}
	}
	return rec, true
}

// Filter keeps records matching program (if non-empty) and bodies (if > 0).
func Filter(records []Record, program string, bodies int) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if program != "" && r.Program != program {
			continue
		}
		if bodies > 0 && r.Bodies != bodies {
			continue
		}
		out = append(out, r)
	}
	return out
}
