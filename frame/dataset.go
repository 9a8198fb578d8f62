// Copyright 2022 Maelstrom Research.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package frame

import (
	"strconv"

	"github.com/pkg/errors"
)

// Dataset is a named table whose first column acts as the row identifier.
type Dataset struct {
	Name string
	Data *Table
}

// IDColumn returns the name of the dataset's identifier column, its first
// column. Empty when the dataset has no columns.
func (d *Dataset) IDColumn() string {
	if d.Data == nil || d.Data.NumCols() == 0 {
		return ""
	}
	return d.Data.Columns()[0]
}

// WithIDColumn returns a copy of the dataset with a synthetic identifier
// column of the given name prepended, valued 1..n as strings.
func WithIDColumn(d *Dataset, name string) (*Dataset, error) {
	data := d.Data.Copy()
	vals := make([]interface{}, data.NumRows())
	for i := range vals {
		vals[i] = strconv.Itoa(i + 1)
	}
	if err := data.PrependColumn(name, vals); err != nil {
		return nil, errors.Wrap(err, "prepending id column")
	}
	return &Dataset{Name: d.Name, Data: data}, nil
}

// TableUnit associates one dataset with its data dictionary under a table
// name. Either member may be nil depending on what a transfer requested.
type TableUnit struct {
	Name    string
	Dataset *Dataset
	Dict    *DataDict
}

// Dossier is an ordered named collection of dataset/dictionary pairs
// treated as one unit.
type Dossier []*TableUnit

// Get returns the unit with the given table name, or nil.
func (d Dossier) Get(name string) *TableUnit {
	for _, u := range d {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// Names returns the table names in order.
func (d Dossier) Names() []string {
	names := make([]string, len(d))
	for i, u := range d {
		names[i] = u.Name
	}
	return names
}

// Validate checks that every unit has a name and at least one of dataset or
// dictionary, and that names are unique.
func (d Dossier) Validate() error {
	seen := make(map[string]bool, len(d))
	for i, u := range d {
		if u.Name == "" {
			return errors.Errorf("dossier unit %d has no table name", i)
		}
		if seen[u.Name] {
			return errors.Errorf("duplicate table name %q in dossier", u.Name)
		}
		seen[u.Name] = true
		if u.Dataset == nil && u.Dict == nil {
			return errors.Errorf("dossier table %q has neither dataset nor dictionary", u.Name)
		}
	}
	return nil
}
