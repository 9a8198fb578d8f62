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

package mdk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maelstrom-research/mdk/frame"
	"github.com/maelstrom-research/mdk/opal"
)

// rawDictKeys are the keys a server-native dictionary record must carry.
// Extra keys are ignored.
var rawDictKeys = []string{"variables", "categories", "table", "project"}

// NormalizeDictionary converts a dictionary from the server's native shape
// (a record with variables, categories, table and project keys) into the
// Variables/Categories pair used locally. The Categories table is present
// only when the source categories had at least one row. Every cell is
// coerced to string form and empty strings become nil. The transform is
// pure - no server calls are made.
func NormalizeDictionary(raw opal.RawDictionary) (*frame.DataDict, error) {
	var missing []string
	for _, k := range rawDictKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &InputFormatError{
			Reason: fmt.Sprintf("dictionary record is missing keys: %s", strings.Join(missing, ", ")),
		}
	}

	variables, err := recordsToTable(raw["variables"])
	if err != nil {
		return nil, &InputFormatError{Reason: "variables: " + err.Error()}
	}
	categories, err := recordsToTable(raw["categories"])
	if err != nil {
		return nil, &InputFormatError{Reason: "categories: " + err.Error()}
	}

	dict := &frame.DataDict{Variables: variables}
	if categories.NumRows() > 0 {
		dict.Categories = categories
	}
	dict.Coerce()
	return dict, nil
}

// recordsToTable turns a list of records into a table whose columns are the
// record keys in order of first appearance.
func recordsToTable(v interface{}) (*frame.Table, error) {
	records, err := asRecords(v)
	if err != nil {
		return nil, err
	}
	var cols []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range recordKeys(rec) {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	t := frame.New(cols...)
	for _, rec := range records {
		t.AppendMap(rec)
	}
	return t, nil
}

func asRecords(v interface{}) ([]map[string]interface{}, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []map[string]interface{}:
		return list, nil
	case []interface{}:
		records := make([]map[string]interface{}, 0, len(list))
		for i, item := range list {
			rec, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("entry %d is %T, want a record", i, item)
			}
			records = append(records, rec)
		}
		return records, nil
	}
	return nil, fmt.Errorf("got %T, want a list of records", v)
}

// recordKeys returns a record's keys with "name" first when present, the
// rest sorted for determinism.
func recordKeys(rec map[string]interface{}) []string {
	keys := make([]string, 0, len(rec))
	if _, ok := rec["name"]; ok {
		keys = append(keys, "name")
	}
	rest := make([]string, 0, len(rec))
	for k := range rec {
		if k != "name" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
