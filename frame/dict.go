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
	"github.com/pkg/errors"
)

// DataDict is a data dictionary: variable metadata plus, optionally,
// categorical value metadata. Categories is nil when the dictionary has no
// categorical variables.
type DataDict struct {
	Variables  *Table
	Categories *Table
}

// NewDataDict returns an empty dictionary with the minimal Variables schema
// and no Categories table.
func NewDataDict() *DataDict {
	return &DataDict{Variables: New("name", "valueType")}
}

// VariableNames returns the values of the Variables "name" column in order.
func (d *DataDict) VariableNames() []string {
	names := make([]string, 0, d.Variables.NumRows())
	for i := 0; i < d.Variables.NumRows(); i++ {
		if s, ok := AsString(d.Variables.Get(i, "name")); ok {
			names = append(names, s)
		}
	}
	return names
}

// HasVariable reports whether a variable of the given name is declared.
func (d *DataDict) HasVariable(name string) bool {
	for _, n := range d.VariableNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Coerce rewrites every cell of both tables to string form, turning empty
// strings into nil.
func (d *DataDict) Coerce() {
	d.Variables.CoerceString()
	if d.Categories != nil {
		d.Categories.CoerceString()
	}
}

// Validate checks the structural contract: Variables exists, carries a
// "name" column, and declares each variable exactly once; Categories, when
// present, carries "variable" and "name" columns.
func (d *DataDict) Validate() error {
	if d.Variables == nil {
		return errors.New("dictionary has no Variables table")
	}
	if !d.Variables.HasColumn("name") {
		return errors.New("Variables table has no name column")
	}
	seen := make(map[string]bool)
	for i := 0; i < d.Variables.NumRows(); i++ {
		s, ok := AsString(d.Variables.Get(i, "name"))
		if !ok || s == "" {
			return errors.Errorf("variable %d has no name", i)
		}
		if seen[s] {
			return errors.Errorf("variable %q declared twice", s)
		}
		seen[s] = true
	}
	if d.Categories != nil {
		for _, col := range []string{"variable", "name"} {
			if !d.Categories.HasColumn(col) {
				return errors.Errorf("Categories table has no %s column", col)
			}
		}
	}
	return nil
}

// DictFromDataset infers a minimal dictionary from a dataset's columns: one
// variable per column with a valueType guessed from the cells.
func DictFromDataset(ds *Dataset) *DataDict {
	dict := NewDataDict()
	for _, col := range ds.Data.Columns() {
		dict.Variables.AppendMap(map[string]interface{}{
			"name":      col,
			"valueType": inferValueType(ds.Data, col),
		})
	}
	return dict
}

func inferValueType(t *Table, col string) string {
	sawAny := false
	for i := 0; i < t.NumRows(); i++ {
		v := t.Get(i, col)
		if v == nil {
			continue
		}
		sawAny = true
		if _, ok := AsInt(v); !ok {
			return "text"
		}
	}
	if !sawAny {
		return "text"
	}
	return "integer"
}

// DatasetFromDict builds a zero-row dataset whose columns are the
// dictionary's declared variables, in declaration order.
func DatasetFromDict(dict *DataDict, name string) *Dataset {
	return &Dataset{Name: name, Data: New(dict.VariableNames()...)}
}

// ApplyDict validates the dictionary against the dataset: every dataset
// column must be declared and every declared variable must exist as a
// column.
func ApplyDict(ds *Dataset, dict *DataDict) error {
	if err := dict.Validate(); err != nil {
		return errors.Wrap(err, "validating dictionary")
	}
	declared := make(map[string]bool)
	for _, n := range dict.VariableNames() {
		declared[n] = true
		if !ds.Data.HasColumn(n) {
			return errors.Errorf("dictionary declares variable %q absent from dataset %q", n, ds.Name)
		}
	}
	for _, col := range ds.Data.Columns() {
		if !declared[col] {
			return errors.Errorf("dataset %q column %q not declared in dictionary", ds.Name, col)
		}
	}
	return nil
}

// MergeVariables left-merges src's variable rows into dst: rows whose name
// is already declared in dst are skipped, so dst's definitions win on
// collision.
func MergeVariables(dst, src *DataDict) {
	for i := 0; i < src.Variables.NumRows(); i++ {
		name, ok := AsString(src.Variables.Get(i, "name"))
		if !ok || dst.HasVariable(name) {
			continue
		}
		row := src.Variables.RowMap(i)
		for _, col := range src.Variables.Columns() {
			if !dst.Variables.HasColumn(col) {
				dst.Variables.AddColumn(col, nil)
			}
		}
		dst.Variables.AppendMap(row)
	}
}
