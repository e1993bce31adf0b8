// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discover returns the CSV artifacts in dir, in lexical path order so
// runs over the same directory load rows in the same order.
func Discover(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("discovering artifacts in %s: %w", dir, err)
	}
	return paths, nil
}

// A Files reads rows from a sequence of input artifacts, preserving
// per-file order and row order within each file.
//
// A path that does not exist contributes zero rows rather than failing
// the whole load. The harness deletes partial artifacts on failed runs,
// so a missing file means "no samples of this kind", not a broken
// input set.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// Progress, if non-nil, is called with each path just before it
	// is opened.
	Progress func(path string)

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []string

	reader Reader
	file   *os.File
	err    error
}

// Scan advances to the next row in the file sequence and reports
// whether one was read. The caller should use the Row method to get
// the row. If Scan reaches the end of the file sequence, or an error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.inputs = append([]string{}, f.Paths...)
	}

	for {
		if f.file == nil {
			// Open the next file.
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]

			if f.Progress != nil {
				f.Progress(path)
			}
			file, err := os.Open(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				f.err = err
				return false
			}
			f.file = file
			f.reader.Reset(file, path)
		}

		if f.reader.Scan() {
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
			break
		}
		// Just an EOF. Close this file and open the next.
		f.file.Close()
		f.file = nil
	}
	return false
}

// Row returns the row that was just read by Scan.
// See Reader.Row.
func (f *Files) Row() *Row {
	return f.reader.Row()
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}
