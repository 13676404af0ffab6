// Package jsonfile writes the extracted indexes as JSON dictionaries and
// plain-text audit reports into an output directory.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/XekriRedmane/retavortaro/internal/domain"
)

// Stdout is the directory name that sends every document to standard output.
const Stdout = "-"

// Output file names.
const (
	HeadwordFile = "kap_dictionary.json"
	SenseFile    = "sense_dictionary.json"
	RootFile     = "rad_dictionary.json"
)

// AuditFile returns the report name for a field and language.
func AuditFile(field, lang string) string {
	return fmt.Sprintf("audit_%s_%s.txt", field, lang)
}

// Writer stores each index as one file in Dir. Every call replaces the
// file it writes.
type Writer struct {
	dir    string
	stdout io.Writer
}

// NewWriter creates a Writer for dir. Dir "-" writes to os.Stdout.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, stdout: os.Stdout}
}

// UpsertHeadwords writes the headword → file dictionary.
func (w *Writer) UpsertHeadwords(_ context.Context, rows []domain.Headword) (int, error) {
	index := make(map[string]string, len(rows))
	for _, r := range rows {
		index[r.Text] = r.Source
	}
	if err := w.writeJSON(HeadwordFile, index); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ReplaceSenses writes the headword → {number → definition} dictionary.
// Numbers keep the order of the rows.
func (w *Writer) ReplaceSenses(_ context.Context, rows []domain.SenseDefinition) (int, error) {
	index := make(map[string]orderedSenses)
	for _, r := range rows {
		index[r.Headword] = append(index[r.Headword], r)
	}
	for _, senses := range index {
		sort.SliceStable(senses, func(i, j int) bool { return senses[i].Position < senses[j].Position })
	}
	if err := w.writeJSON(SenseFile, index); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// UpsertRoots writes the root → file dictionary.
func (w *Writer) UpsertRoots(_ context.Context, rows []domain.Root) (int, error) {
	index := make(map[string]string, len(rows))
	for _, r := range rows {
		index[r.Text] = r.Source
	}
	if err := w.writeJSON(RootFile, index); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// InsertAuditFindings writes one report per field and language, one
// "❌ <headword>" line per finding in row order.
func (w *Writer) InsertAuditFindings(_ context.Context, rows []domain.AuditFinding) (int, error) {
	reports := make(map[string]*bytes.Buffer)
	var order []string
	for _, r := range rows {
		name := AuditFile(r.Field, r.Lang)
		buf, ok := reports[name]
		if !ok {
			buf = &bytes.Buffer{}
			reports[name] = buf
			order = append(order, name)
		}
		fmt.Fprintf(buf, "❌ %s\n", r.Headword)
	}
	for _, name := range order {
		if err := w.write(name, reports[name].Bytes()); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (w *Writer) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", name, err)
	}
	return w.write(name, buf.Bytes())
}

func (w *Writer) write(name string, data []byte) error {
	if w.dir == Stdout {
		if _, err := w.stdout.Write(data); err != nil {
			return fmt.Errorf("jsonfile: write %s: %w", name, err)
		}
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: %w", err)
	}
	path := filepath.Join(w.dir, name)
	tmp, err := os.CreateTemp(w.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("jsonfile: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonfile: %w", err)
	}
	return nil
}

// orderedSenses marshals as a JSON object whose keys follow slice order.
type orderedSenses []domain.SenseDefinition

func (s orderedSenses) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, sense := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := marshalString(sense.Number)
		if err != nil {
			return nil, err
		}
		val, err := marshalString(sense.Definition)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
