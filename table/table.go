// Package table reads and writes the delimited tables the pipeline
// consumes: a quantification table (tab-delimited Proteome Discoverer
// export) and a design table (comma-delimited sample sheet). The
// delimiter is sniffed from the header line and gzip input is detected
// by magic bytes, so callers never declare the format themselves.
package table

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is an ordered, fully-materialized delimited table. Column and
// row order are preserved exactly as read; nothing downstream may
// silently reorder them.
type Table struct {
	Columns []string
	Rows    [][]string
}

// openMaybeGzip opens a plain or gzip-compressed file
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 2)
	if _, err := io.ReadFull(f, buf); err == nil && buf[0] == 0x1f && buf[1] == 0x8b {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		return &gzipFile{file: f, gz: gr}, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

type gzipFile struct {
	file *os.File
	gz   *gzip.Reader
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	if err := g.gz.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}

// sniffDelim picks tab or comma from the header line, whichever splits
// into more fields. Proteome Discoverer exports are tab-delimited even
// though they carry a .txt extension.
func sniffDelim(header string) rune {
	if strings.Count(header, "\t") >= strings.Count(header, ",") {
		return '\t'
	}
	return ','
}

// ReadDelim parses a delimited file into a Table. The first line is the
// header; every row must have the same field count (enforced by the csv
// reader).
func ReadDelim(path string) (*Table, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	header, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	headerLine, _, _ := strings.Cut(string(header), "\n")

	r := csv.NewReader(br)
	r.Comma = sniffDelim(headerLine)
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	t := &Table{Columns: records[0]}
	if len(records) > 1 {
		t.Rows = records[1:]
	}
	return t, nil
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of a named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found (have: %s)", name, strings.Join(t.Columns, ", "))
	}
	vals := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals, nil
}

// WriteTSV writes the table tab-delimited with a header line.
func (t *Table) WriteTSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
