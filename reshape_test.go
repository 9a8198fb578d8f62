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
	"testing"

	"github.com/maelstrom-research/mdk"
	"github.com/maelstrom-research/mdk/frame"
)

// flatRow appends one flat taxonomy row.
func flatRow(tbl *frame.Table, taxoIdx int64, taxo string, vocabIdx int64, vocab string, termIdx int64, term string) {
	tbl.AppendMap(map[string]interface{}{
		"index_taxonomy":   taxoIdx,
		"taxonomy":         taxo,
		"index_vocabulary": vocabIdx,
		"vocabulary":       vocab,
		"index_term":       termIdx,
		"term":             term,
	})
}

func newFlatFixture() *frame.Table {
	tbl := frame.NewTaxonomyTable()
	flatRow(tbl, 0, "Unknown_taxonomy", 0, "Unknown_taxonomy_Unknown_vocabulary", 0, "Unknown_taxonomy_Unknown_vocabulary_Unknown_term")
	flatRow(tbl, 1, "Mlstr_area", 1, "Lifestyle_behaviours", 1, "Tobacco")
	flatRow(tbl, 1, "Mlstr_area", 1, "Lifestyle_behaviours", 2, "Alcohol")
	flatRow(tbl, 1, "Mlstr_area", 1, "Lifestyle_behaviours", 3, "Sleep")
	flatRow(tbl, 1, "Mlstr_area", 2, "Diseases", 1, "Cancer")
	flatRow(tbl, 2, "Mlstr_habits", 1, "tobacco", 1, "Smoking, Vaping")
	flatRow(tbl, 2, "Mlstr_habits", 2, "sleep", 0, "sleep_Unknown_term")
	return tbl
}

func findByTerm(t *testing.T, tbl *frame.Table, term string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for i := 0; i < tbl.NumRows(); i++ {
		if tbl.Get(i, "term") == term {
			out = append(out, tbl.RowMap(i))
		}
	}
	return out
}

func TestReshapeMaelstrom(t *testing.T) {
	got, err := mdk.ReshapeMaelstrom(newFlatFixture(), mdk.TaxonomyOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got.NumRows() != 5 {
		t.Fatalf("expected 5 rows, got %d", got.NumRows())
	}

	// The multi-valued scale term expands one row per value, both carrying
	// the area term they refine.
	tobacco := findByTerm(t, got, "Tobacco")
	if len(tobacco) != 2 {
		t.Fatalf("expected 2 Tobacco rows, got %d", len(tobacco))
	}
	if tobacco[0]["term_scale"] != "Smoking" || tobacco[1]["term_scale"] != "Vaping" {
		t.Fatalf("unexpected scale values: %v %v", tobacco[0]["term_scale"], tobacco[1]["term_scale"])
	}
	for _, row := range tobacco {
		if row["vocabulary_short"] != "LSB" {
			t.Fatalf("unexpected vocabulary_short: %v", row["vocabulary_short"])
		}
		if row["taxonomy_scale"] != "Mlstr_habits" || row["vocabulary_scale"] != "tobacco" {
			t.Fatalf("unexpected scale provenance: %v", row)
		}
		if row["index_term_scale"] != int64(1) {
			t.Fatalf("unexpected index_term_scale: %v", row["index_term_scale"])
		}
	}

	// An area term with no scale rows at all keeps null scale columns.
	alcohol := findByTerm(t, got, "Alcohol")
	if len(alcohol) != 1 {
		t.Fatalf("expected 1 Alcohol row, got %d", len(alcohol))
	}
	if alcohol[0]["term_scale"] != nil || alcohol[0]["taxonomy_scale"] != nil {
		t.Fatalf("expected null scale columns: %v", alcohol[0])
	}

	// An area term whose only scale row is the placeholder also comes out as
	// one row with null scale columns.
	sleep := findByTerm(t, got, "Sleep")
	if len(sleep) != 1 {
		t.Fatalf("expected 1 Sleep row, got %d", len(sleep))
	}
	for _, col := range frame.TaxonomyScaleColumns {
		if sleep[0][col] != nil {
			t.Fatalf("expected null %s, got %v", col, sleep[0][col])
		}
	}

	cancer := findByTerm(t, got, "Cancer")
	if len(cancer) != 1 || cancer[0]["vocabulary_short"] != "DIS" {
		t.Fatalf("unexpected Cancer rows: %v", cancer)
	}

	// Synthetic placeholder rows are gone by default.
	if rows := findByTerm(t, got, "Unknown_taxonomy_Unknown_vocabulary_Unknown_term"); len(rows) != 0 {
		t.Fatalf("placeholder row survived default filter")
	}
}

func TestReshapeMaelstromQualityCheck(t *testing.T) {
	got, err := mdk.ReshapeMaelstrom(newFlatFixture(), mdk.TaxonomyOptions{QualityCheck: true})
	if err != nil {
		t.Fatal(err)
	}

	if rows := findByTerm(t, got, "Unknown_taxonomy_Unknown_vocabulary_Unknown_term"); len(rows) != 1 {
		t.Fatalf("expected the placeholder row to survive, got %d", len(rows))
	}

	// Sleep keeps both the null-scale row and the raw placeholder row.
	sleep := findByTerm(t, got, "Sleep")
	if len(sleep) != 2 {
		t.Fatalf("expected 2 Sleep rows, got %d", len(sleep))
	}
	var sawNull, sawZero bool
	for _, row := range sleep {
		switch row["index_term_scale"] {
		case nil:
			sawNull = true
		case int64(0):
			sawZero = true
			if row["term_scale"] != "sleep_Unknown_term" {
				t.Fatalf("unexpected placeholder term_scale: %v", row["term_scale"])
			}
		}
	}
	if !sawNull || !sawZero {
		t.Fatalf("expected one null-scale and one placeholder Sleep row: %v", sleep)
	}
}

func TestReshapeMaelstromUnknownVocabularyCode(t *testing.T) {
	tbl := frame.NewTaxonomyTable()
	flatRow(tbl, 1, "Mlstr_area", 0, "Mlstr_area_Unknown_vocabulary", 0, "Mlstr_area_Unknown_vocabulary_Unknown_term")
	flatRow(tbl, 1, "Mlstr_area", 1, "Private_vocabulary", 1, "Private_term")

	got, err := mdk.ReshapeMaelstrom(tbl, mdk.TaxonomyOptions{QualityCheck: true})
	if err != nil {
		t.Fatal(err)
	}
	if got.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.NumRows())
	}
	// The unknown-vocabulary placeholder maps to ERR; an unlisted vocabulary
	// stays unmapped.
	if got.Get(0, "vocabulary_short") != "ERR" {
		t.Fatalf("unexpected code for placeholder vocabulary: %v", got.Get(0, "vocabulary_short"))
	}
	if got.Get(1, "vocabulary_short") != nil {
		t.Fatalf("expected null code for unlisted vocabulary: %v", got.Get(1, "vocabulary_short"))
	}
}
