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

package mdk_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/maelstrom-research/mdk"
	"github.com/maelstrom-research/mdk/opal"
)

func TestNormalizeDictionary(t *testing.T) {
	raw := opal.RawDictionary{
		"project": "demo",
		"table":   "t1",
		"variables": []interface{}{
			map[string]interface{}{"name": "age", "valueType": "integer", "index": float64(1)},
			map[string]interface{}{"name": "sex", "valueType": "text", "label": "Sex"},
		},
		"categories": []interface{}{
			map[string]interface{}{"variable": "sex", "name": "m"},
			map[string]interface{}{"variable": "sex", "name": "f"},
		},
		"extraneous": "ignored",
	}

	dict, err := mdk.NormalizeDictionary(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dict.VariableNames(), []string{"age", "sex"}) {
		t.Fatalf("unexpected variables: %v", dict.VariableNames())
	}
	// Columns come out in first-appearance order, name leading.
	wantCols := []string{"name", "index", "valueType", "label"}
	if !reflect.DeepEqual(dict.Variables.Columns(), wantCols) {
		t.Fatalf("unexpected variable columns: %v", dict.Variables.Columns())
	}
	// All cells are strings after normalization.
	if dict.Variables.Get(0, "index") != "1" {
		t.Fatalf("numeric cell not stringified: %v", dict.Variables.Get(0, "index"))
	}
	// The age row has no label, so the cell is nil.
	if dict.Variables.Get(0, "label") != nil {
		t.Fatalf("expected nil label, got %v", dict.Variables.Get(0, "label"))
	}
	if dict.Categories == nil || dict.Categories.NumRows() != 2 {
		t.Fatalf("unexpected categories: %+v", dict.Categories)
	}
}

func TestNormalizeDictionaryMissingKeys(t *testing.T) {
	raw := opal.RawDictionary{
		"variables": []interface{}{},
		"table":     "t1",
	}
	_, err := mdk.NormalizeDictionary(raw)
	var ferr *mdk.InputFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
	for _, key := range []string{"categories", "project"} {
		if !strings.Contains(ferr.Reason, key) {
			t.Fatalf("error does not name missing key %q: %s", key, ferr.Reason)
		}
	}
}

func TestNormalizeDictionaryEmptyCategories(t *testing.T) {
	raw := opal.RawDictionary{
		"project":    "demo",
		"table":      "t1",
		"variables":  []interface{}{map[string]interface{}{"name": "age"}},
		"categories": []interface{}{},
	}
	dict, err := mdk.NormalizeDictionary(raw)
	if err != nil {
		t.Fatal(err)
	}
	if dict.Categories != nil {
		t.Fatalf("expected no Categories table, got %+v", dict.Categories)
	}
}

func TestNormalizeDictionaryBadVariables(t *testing.T) {
	raw := opal.RawDictionary{
		"project":    "demo",
		"table":      "t1",
		"variables":  "not a list",
		"categories": []interface{}{},
	}
	_, err := mdk.NormalizeDictionary(raw)
	var ferr *mdk.InputFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
}
