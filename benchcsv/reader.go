// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads the CSV artifacts emitted by the temporal-slab
// benchmark harness.
//
// The harness writes heterogeneous rows: latency summaries, fragmentation
// samples, and RSS churn samples may share one file or be split across
// several. This package only deals in raw rows; classifying them into
// typed records is the job of package benchrec.
package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// A Row is one data row of one input artifact: a mapping from header
// field name to the raw string value in that column. A Row is immutable
// once returned by a Reader.
type Row struct {
	fields   map[string]string
	header   []string
	fileName string
	line     int
}

// Has reports whether field was present in the row's header and had a
// value in this row.
func (r *Row) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Get returns the raw value of field and whether the field was present.
func (r *Row) Get(field string) (string, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Fields returns the row's field names in header order. The returned
// slice is shared with the Reader and must not be modified.
func (r *Row) Fields() []string {
	return r.header
}

// Pos returns the file name and line number of the row. The line number
// is the physical line the row started on, counting the header.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A SyntaxError represents a malformed CSV structure on a particular
// line of an input artifact.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads rows from a single CSV artifact.
//
// Its API is modeled on bufio.Scanner. The first row of the input is
// the header naming the fields of every following row. Rows shorter
// than the header simply lack the trailing fields; values beyond the
// header are dropped.
//
// To construct a new Reader, either call NewReader, or call Reset on a
// zeroed Reader.
type Reader struct {
	c        *csv.Reader
	fileName string
	header   []string
	row      *Row
	err      error
}

// NewReader constructs a Reader for the CSV artifact ior.
// fileName is used in error messages and positions; it is purely
// diagnostic.
func NewReader(ior io.Reader, fileName string) *Reader {
	r := new(Reader)
	r.Reset(ior, fileName)
	return r
}

// Reset resets the Reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.c = csv.NewReader(ior)
	// Harness outputs are ragged when a column was added mid-run.
	// Field count mismatches are not structural errors here.
	r.c.FieldsPerRecord = -1
	r.fileName = fileName
	r.header = nil
	r.row = nil
	r.err = nil
}

// Scan advances the Reader to the next row and reports whether one was
// read. The caller should use the Row method to get the row. If Scan
// reaches EOF or an error occurs, it returns false, in which case the
// caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if r.header == nil {
		hdr, err := r.c.Read()
		if err != nil {
			// An empty artifact has no rows. Not an error.
			if err != io.EOF {
				r.err = r.syntaxError(err)
			}
			return false
		}
		r.header = make([]string, len(hdr))
		copy(r.header, hdr)
	}

	rec, err := r.c.Read()
	if err != nil {
		if err != io.EOF {
			r.err = r.syntaxError(err)
		}
		return false
	}
	line, _ := r.c.FieldPos(0)

	fields := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(rec) {
			fields[name] = rec[i]
		}
	}
	r.row = &Row{fields: fields, header: r.header, fileName: r.fileName, line: line}
	return true
}

// Row returns the row that was just read by Scan.
func (r *Reader) Row() *Row {
	return r.row
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it reached the end of the input, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}

// syntaxError converts an encoding/csv error into a *SyntaxError with
// this Reader's file name attached.
func (r *Reader) syntaxError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{r.fileName, perr.Line, perr.Err.Error()}
	}
	return fmt.Errorf("%s: %w", r.fileName, err)
}
