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
	"reflect"
	"testing"

	"github.com/maelstrom-research/mdk/frame"
)

func TestDictFromDataset(t *testing.T) {
	data := frame.New("age", "sex", "blank")
	data.AppendRow("42", "m", nil)
	data.AppendRow(int64(7), "f", nil)
	ds := &frame.Dataset{Name: "demo", Data: data}

	dict := frame.DictFromDataset(ds)
	if !reflect.DeepEqual(dict.VariableNames(), []string{"age", "sex", "blank"}) {
		t.Fatalf("unexpected variables: %v", dict.VariableNames())
	}
	types := make(map[string]interface{})
	for i := 0; i < dict.Variables.NumRows(); i++ {
		name, _ := frame.AsString(dict.Variables.Get(i, "name"))
		types[name] = dict.Variables.Get(i, "valueType")
	}
	if types["age"] != "integer" {
		t.Fatalf("age should infer integer, got %v", types["age"])
	}
	if types["sex"] != "text" {
		t.Fatalf("sex should infer text, got %v", types["sex"])
	}
	// A column with no values cannot be called numeric.
	if types["blank"] != "text" {
		t.Fatalf("blank should infer text, got %v", types["blank"])
	}
}

func TestApplyDict(t *testing.T) {
	data := frame.New("age")
	data.AppendRow("42")
	ds := &frame.Dataset{Name: "demo", Data: data}

	dict := frame.NewDataDict()
	dict.Variables.AppendRow("age", "integer")
	if err := frame.ApplyDict(ds, dict); err != nil {
		t.Fatal(err)
	}

	dict.Variables.AppendRow("height", "decimal")
	if err := frame.ApplyDict(ds, dict); err == nil {
		t.Fatal("expected error for variable absent from dataset")
	}

	dict = frame.NewDataDict()
	if err := frame.ApplyDict(ds, dict); err == nil {
		t.Fatal("expected error for undeclared dataset column")
	}
}

func TestDictValidate(t *testing.T) {
	dict := frame.NewDataDict()
	dict.Variables.AppendRow("age", "integer")
	dict.Variables.AppendRow("age", "text")
	if err := dict.Validate(); err == nil {
		t.Fatal("expected error for duplicate variable name")
	}

	dict = frame.NewDataDict()
	dict.Variables.AppendRow(nil, "text")
	if err := dict.Validate(); err == nil {
		t.Fatal("expected error for unnamed variable")
	}

	dict = frame.NewDataDict()
	dict.Variables.AppendRow("age", "integer")
	dict.Categories = frame.New("variable")
	if err := dict.Validate(); err == nil {
		t.Fatal("expected error for Categories without name column")
	}
}

func TestMergeVariables(t *testing.T) {
	dst := frame.NewDataDict()
	dst.Variables.AppendRow("age", "integer")
	src := frame.NewDataDict()
	src.Variables.AddColumn("label", nil)
	src.Variables.AppendRow("age", "text", "Age label")
	src.Variables.AppendRow("sex", "text", "Sex label")

	frame.MergeVariables(dst, src)
	if !reflect.DeepEqual(dst.VariableNames(), []string{"age", "sex"}) {
		t.Fatalf("unexpected variables after merge: %v", dst.VariableNames())
	}
	// Existing definition wins on collision.
	if dst.Variables.Get(0, "valueType") != "integer" {
		t.Fatalf("dst definition lost: %v", dst.Variables.Get(0, "valueType"))
	}
	// Missing columns from src appear on dst, nil for pre-existing rows.
	if dst.Variables.Get(0, "label") != nil {
		t.Fatalf("expected nil label on dst row, got %v", dst.Variables.Get(0, "label"))
	}
	if dst.Variables.Get(1, "label") != "Sex label" {
		t.Fatalf("merged row lost label: %v", dst.Variables.Get(1, "label"))
	}
}

func TestWithIDColumn(t *testing.T) {
	data := frame.New("v")
	data.AppendRow("a")
	data.AppendRow("b")
	ds := &frame.Dataset{Name: "demo", Data: data}

	got, err := frame.WithIDColumn(ds, "mdk_index_1")
	if err != nil {
		t.Fatal(err)
	}
	if got.IDColumn() != "mdk_index_1" {
		t.Fatalf("unexpected id column: %s", got.IDColumn())
	}
	if got.Data.Get(0, "mdk_index_1") != "1" || got.Data.Get(1, "mdk_index_1") != "2" {
		t.Fatalf("unexpected ids: %v %v", got.Data.Get(0, "mdk_index_1"), got.Data.Get(1, "mdk_index_1"))
	}
	// The source dataset is untouched.
	if ds.Data.NumCols() != 1 {
		t.Fatalf("source dataset modified")
	}
}

func TestDossierValidate(t *testing.T) {
	d := frame.Dossier{
		{Name: "a", Dataset: &frame.Dataset{Name: "a", Data: frame.New("x")}},
		{Name: "a", Dict: frame.NewDataDict()},
	}
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for duplicate table name")
	}

	d = frame.Dossier{{Name: "a"}}
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for unit with neither dataset nor dictionary")
	}
}
