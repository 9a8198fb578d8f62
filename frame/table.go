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

// Package frame provides the tabular containers that mdk moves between a
// local workspace and a remote Opal server: the generic Table, plus the
// Dataset, DataDict and Dossier types built on it. Cells are untyped - a
// cell holds a string, an int64, or nil meaning missing.
package frame

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Table is an ordered set of named columns over untyped cells. The zero
// value is not useful; use New.
type Table struct {
	cols []string
	rows [][]interface{}
}

// New creates an empty table with the given column names.
func New(cols ...string) *Table {
	t := &Table{cols: make([]string, len(cols))}
	copy(t.cols, cols)
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool { return t.colIdx(name) >= 0 }

func (t *Table) colIdx(name string) int {
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// AppendRow appends one row. The number of values must match the number of
// columns.
func (t *Table) AppendRow(vals ...interface{}) error {
	if len(vals) != len(t.cols) {
		return errors.Errorf("row has %d values, table has %d columns", len(vals), len(t.cols))
	}
	row := make([]interface{}, len(vals))
	copy(row, vals)
	t.rows = append(t.rows, row)
	return nil
}

// AppendMap appends one row taken from a map keyed by column name. Columns
// absent from the map become nil; keys which are not columns are ignored.
func (t *Table) AppendMap(m map[string]interface{}) {
	row := make([]interface{}, len(t.cols))
	for i, c := range t.cols {
		row[i] = m[c]
	}
	t.rows = append(t.rows, row)
}

// Get returns the cell at row i of the named column, or nil if the column
// does not exist.
func (t *Table) Get(i int, col string) interface{} {
	c := t.colIdx(col)
	if c < 0 {
		return nil
	}
	return t.rows[i][c]
}

// Set writes the cell at row i of the named column.
func (t *Table) Set(i int, col string, v interface{}) error {
	c := t.colIdx(col)
	if c < 0 {
		return errors.Errorf("no column %q", col)
	}
	t.rows[i][c] = v
	return nil
}

// RowMap returns row i as a map keyed by column name.
func (t *Table) RowMap(i int) map[string]interface{} {
	m := make(map[string]interface{}, len(t.cols))
	for c, name := range t.cols {
		m[name] = t.rows[i][c]
	}
	return m
}

// AddColumn appends a new column filled with the given value.
func (t *Table) AddColumn(name string, fill interface{}) error {
	if t.colIdx(name) >= 0 {
		return errors.Errorf("column %q already exists", name)
	}
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
	return nil
}

// PrependColumn inserts a new column at position zero filled with the given
// values, one per row.
func (t *Table) PrependColumn(name string, vals []interface{}) error {
	if t.colIdx(name) >= 0 {
		return errors.Errorf("column %q already exists", name)
	}
	if len(vals) != len(t.rows) {
		return errors.Errorf("got %d values for %d rows", len(vals), len(t.rows))
	}
	t.cols = append([]string{name}, t.cols...)
	for i := range t.rows {
		t.rows[i] = append([]interface{}{vals[i]}, t.rows[i]...)
	}
	return nil
}

// DropColumn removes the named column if present.
func (t *Table) DropColumn(name string) {
	c := t.colIdx(name)
	if c < 0 {
		return
	}
	t.cols = append(t.cols[:c], t.cols[c+1:]...)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i][:c], t.rows[i][c+1:]...)
	}
}

// Rename changes a column name in place.
func (t *Table) Rename(old, new string) error {
	c := t.colIdx(old)
	if c < 0 {
		return errors.Errorf("no column %q", old)
	}
	t.cols[c] = new
	return nil
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out := New(t.cols...)
	out.rows = make([][]interface{}, len(t.rows))
	for i, row := range t.rows {
		r := make([]interface{}, len(row))
		copy(r, row)
		out.rows[i] = r
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := New(t.cols...)
	for i := range t.rows {
		if keep(i) {
			row := make([]interface{}, len(t.rows[i]))
			copy(row, t.rows[i])
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Concat appends other's rows to a copy of t. The result's columns are the
// union, t's columns first, then other's new ones; cells absent from a side
// are nil.
func (t *Table) Concat(other *Table) *Table {
	cols := t.Columns()
	for _, c := range other.cols {
		if t.colIdx(c) < 0 {
			cols = append(cols, c)
		}
	}
	out := New(cols...)
	for i := range t.rows {
		out.AppendMap(t.RowMap(i))
	}
	for i := range other.rows {
		out.AppendMap(other.RowMap(i))
	}
	return out
}

// Distinct returns a new table with duplicate rows removed, keeping the
// first occurrence of each.
func (t *Table) Distinct() *Table {
	seen := make(map[string]struct{}, len(t.rows))
	return t.Filter(func(i int) bool {
		key := rowKey(t.rows[i])
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
}

func rowKey(row []interface{}) string {
	sb := strings.Builder{}
	for _, v := range row {
		if v == nil {
			sb.WriteString("\x00~")
			continue
		}
		fmt.Fprintf(&sb, "%v\x00", v)
	}
	return sb.String()
}

// SortBy stable-sorts rows by the given columns. Integers order numerically,
// everything else by its string form; nil sorts after any value.
func (t *Table) SortBy(cols ...string) {
	idxs := make([]int, 0, len(cols))
	for _, c := range cols {
		if i := t.colIdx(c); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		for _, c := range idxs {
			if cmp := compareCells(t.rows[a][c], t.rows[b][c]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

func compareCells(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	ai, aok := AsInt(a)
	bi, bok := AsInt(b)
	if aok && bok {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// CoerceString converts cells of the given columns (all columns when none
// are given) to strings. Empty strings become nil.
func (t *Table) CoerceString(cols ...string) {
	idxs := t.coerceCols(cols)
	for _, row := range t.rows {
		for _, c := range idxs {
			if row[c] == nil {
				continue
			}
			s := fmt.Sprint(row[c])
			if s == "" {
				row[c] = nil
			} else {
				row[c] = s
			}
		}
	}
}

// CoerceInt converts cells of the given columns (all columns when none are
// given) to int64. Unparseable cells become nil.
func (t *Table) CoerceInt(cols ...string) {
	idxs := t.coerceCols(cols)
	for _, row := range t.rows {
		for _, c := range idxs {
			if row[c] == nil {
				continue
			}
			if n, ok := AsInt(row[c]); ok {
				row[c] = n
			} else {
				row[c] = nil
			}
		}
	}
}

func (t *Table) coerceCols(cols []string) []int {
	if len(cols) == 0 {
		idxs := make([]int, len(t.cols))
		for i := range t.cols {
			idxs[i] = i
		}
		return idxs
	}
	idxs := make([]int, 0, len(cols))
	for _, c := range cols {
		if i := t.colIdx(c); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// ExplodeColumn splits string cells of the named column on sep and emits one
// row per piece, trimming surrounding space. Rows whose cell is nil or not a
// string pass through unchanged.
func (t *Table) ExplodeColumn(col, sep string) *Table {
	c := t.colIdx(col)
	if c < 0 {
		return t.Copy()
	}
	out := New(t.cols...)
	for _, row := range t.rows {
		s, ok := row[c].(string)
		if !ok || !strings.Contains(s, sep) {
			r := make([]interface{}, len(row))
			copy(r, row)
			out.rows = append(out.rows, r)
			continue
		}
		for _, piece := range strings.Split(s, sep) {
			r := make([]interface{}, len(row))
			copy(r, row)
			r[c] = strings.TrimSpace(piece)
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// FullJoin joins right onto left by equality of the named key column, which
// must exist on both sides. Every pairing of a left row with a matching
// right row is emitted; left rows with no match get nil right cells, and
// unmatched right rows are appended with nil left cells. Nil keys never
// match. Right columns other than the key must not collide with left ones.
func FullJoin(left, right *Table, on string) (*Table, error) {
	if !left.HasColumn(on) || !right.HasColumn(on) {
		return nil, errors.Errorf("join column %q missing from one side", on)
	}
	cols := left.Columns()
	for _, c := range right.cols {
		if c == on {
			continue
		}
		if left.colIdx(c) >= 0 {
			return nil, errors.Errorf("column %q exists on both sides of join", c)
		}
		cols = append(cols, c)
	}
	byKey := make(map[string][]int)
	for i := range right.rows {
		k, ok := AsString(right.Get(i, on))
		if !ok {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}
	matched := make(map[int]bool)
	out := New(cols...)
	for i := range left.rows {
		k, ok := AsString(left.Get(i, on))
		var hits []int
		if ok {
			hits = byKey[k]
		}
		if len(hits) == 0 {
			out.AppendMap(left.RowMap(i))
			continue
		}
		for _, j := range hits {
			matched[j] = true
			m := left.RowMap(i)
			for c, v := range right.RowMap(j) {
				if c != on {
					m[c] = v
				}
			}
			out.AppendMap(m)
		}
	}
	for j := range right.rows {
		if !matched[j] {
			out.AppendMap(right.RowMap(j))
		}
	}
	return out, nil
}

// AsString casts a cell to a string, converting int64 cells to their decimal
// form. The second return is false for nil and non-scalar cells.
func AsString(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// AsInt casts a cell to an int64, parsing string cells. The second return is
// false when the cell is nil or does not parse.
func AsInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
