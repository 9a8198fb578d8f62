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

package frame_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/maelstrom-research/mdk/frame"
)

func rows(t *frame.Table, col string) []interface{} {
	out := make([]interface{}, t.NumRows())
	for i := range out {
		out[i] = t.Get(i, col)
	}
	return out
}

func TestConcatUnionsColumns(t *testing.T) {
	a := frame.New("x", "y")
	a.AppendRow("1", "2")
	b := frame.New("y", "z")
	b.AppendRow("3", "4")

	got := a.Concat(b)
	if !reflect.DeepEqual(got.Columns(), []string{"x", "y", "z"}) {
		t.Fatalf("unexpected columns: %v", got.Columns())
	}
	if got.Get(0, "z") != nil {
		t.Fatalf("expected nil z on first row, got %v", got.Get(0, "z"))
	}
	if got.Get(1, "x") != nil {
		t.Fatalf("expected nil x on second row, got %v", got.Get(1, "x"))
	}
	if got.Get(1, "y") != "3" {
		t.Fatalf("expected y=3 on second row, got %v", got.Get(1, "y"))
	}
}

func TestDistinct(t *testing.T) {
	tbl := frame.New("a", "b")
	tbl.AppendRow("1", nil)
	tbl.AppendRow("1", nil)
	tbl.AppendRow("1", "2")

	got := tbl.Distinct()
	if got.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.NumRows())
	}
}

func TestSortBy(t *testing.T) {
	tbl := frame.New("i", "s")
	tbl.AppendRow(int64(10), "c")
	tbl.AppendRow(nil, "a")
	tbl.AppendRow(int64(2), "b")

	tbl.SortBy("i")
	want := []interface{}{int64(2), int64(10), nil}
	if !reflect.DeepEqual(rows(tbl, "i"), want) {
		t.Fatalf("unexpected order: %v", rows(tbl, "i"))
	}
}

func TestExplodeColumn(t *testing.T) {
	tests := []struct {
		cell interface{}
		exp  []interface{}
	}{
		{cell: "X, Y", exp: []interface{}{"X", "Y"}},
		{cell: "X", exp: []interface{}{"X"}},
		{cell: nil, exp: []interface{}{nil}},
		{cell: "a,b , c", exp: []interface{}{"a", "b", "c"}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			tbl := frame.New("keep", "split")
			tbl.AppendRow("k", test.cell)
			got := tbl.ExplodeColumn("split", ",")
			if !reflect.DeepEqual(rows(got, "split"), test.exp) {
				t.Fatalf("unexpected explode: %v", rows(got, "split"))
			}
			for j := 0; j < got.NumRows(); j++ {
				if got.Get(j, "keep") != "k" {
					t.Fatalf("row %d lost sibling cell", j)
				}
			}
		})
	}
}

func TestFullJoin(t *testing.T) {
	left := frame.New("term", "area")
	left.AppendRow("Tobacco", "a1")
	left.AppendRow("Cancer", "a2")
	right := frame.New("term", "scale")
	right.AppendRow("Tobacco", "s1")
	right.AppendRow("Tobacco", "s2")
	right.AppendRow("Orphan", "s3")

	got, err := frame.FullJoin(left, right, "term")
	if err != nil {
		t.Fatal(err)
	}
	if got.NumRows() != 4 {
		t.Fatalf("expected 4 rows, got %d", got.NumRows())
	}
	// Two matches for Tobacco, multiplicity preserved.
	if got.Get(0, "scale") != "s1" || got.Get(1, "scale") != "s2" {
		t.Fatalf("unexpected match rows: %v %v", got.Get(0, "scale"), got.Get(1, "scale"))
	}
	// Unmatched left row keeps nil right cells.
	if got.Get(2, "term") != "Cancer" || got.Get(2, "scale") != nil {
		t.Fatalf("unexpected unmatched-left row")
	}
	// Unmatched right row is appended with nil left cells.
	if got.Get(3, "term") != "Orphan" || got.Get(3, "area") != nil {
		t.Fatalf("unexpected unmatched-right row")
	}
}

func TestFullJoinColumnCollision(t *testing.T) {
	left := frame.New("term", "v")
	right := frame.New("term", "v")
	if _, err := frame.FullJoin(left, right, "term"); err == nil {
		t.Fatal("expected collision error")
	}
}

func TestCoerce(t *testing.T) {
	tbl := frame.New("a", "b")
	tbl.AppendRow(int64(3), "")
	tbl.AppendRow("x", "7")

	tbl.CoerceString()
	if tbl.Get(0, "a") != "3" {
		t.Fatalf("int not coerced: %v", tbl.Get(0, "a"))
	}
	if tbl.Get(0, "b") != nil {
		t.Fatalf("empty string not nulled: %v", tbl.Get(0, "b"))
	}

	tbl.CoerceInt("b")
	if tbl.Get(1, "b") != int64(7) {
		t.Fatalf("string not coerced to int: %v", tbl.Get(1, "b"))
	}
	if tbl.Get(1, "a") != "x" {
		t.Fatalf("untargeted column changed: %v", tbl.Get(1, "a"))
	}
}

func TestPrependAndDropColumn(t *testing.T) {
	tbl := frame.New("a")
	tbl.AppendRow("1")
	tbl.AppendRow("2")
	if err := tbl.PrependColumn("id", []interface{}{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns(), []string{"id", "a"}) {
		t.Fatalf("unexpected columns: %v", tbl.Columns())
	}
	tbl.DropColumn("id")
	if !reflect.DeepEqual(tbl.Columns(), []string{"a"}) {
		t.Fatalf("unexpected columns after drop: %v", tbl.Columns())
	}
	if tbl.Get(0, "a") != "1" {
		t.Fatalf("cells shifted after drop: %v", tbl.Get(0, "a"))
	}
}
