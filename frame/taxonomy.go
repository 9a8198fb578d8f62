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

// TaxonomyColumns is the declared schema of a flat taxonomy table: one row
// per (taxonomy, vocabulary, term) triple with dense zero-based indices at
// each level.
var TaxonomyColumns = []string{
	"index_taxonomy",
	"taxonomy",
	"taxonomy_title",
	"taxonomy_description",
	"index_vocabulary",
	"vocabulary",
	"index_term",
	"term",
	"term_title",
	"term_description",
}

// TaxonomyScaleColumns are the scale-side columns that the Maelstrom
// reshape joins onto area rows.
var TaxonomyScaleColumns = []string{
	"index_term_scale",
	"taxonomy_scale",
	"vocabulary_scale",
	"term_scale",
	"term_title_scale",
	"term_description_scale",
}

// TaxonomyIndexColumns are the integer columns of the reshaped table.
var TaxonomyIndexColumns = []string{
	"index_taxonomy",
	"index_vocabulary",
	"index_term",
	"index_term_scale",
}

// NewTaxonomyTable returns an empty table carrying the flat taxonomy
// schema.
func NewTaxonomyTable() *Table {
	return New(TaxonomyColumns...)
}

// ValidateTaxonomyShape checks the flat taxonomy contract: all declared
// columns present, the three name columns non-null, and the index columns
// integer or nil.
func ValidateTaxonomyShape(t *Table) error {
	for _, col := range TaxonomyColumns {
		if !t.HasColumn(col) {
			return errors.Errorf("taxonomy table missing column %q", col)
		}
	}
	for i := 0; i < t.NumRows(); i++ {
		for _, col := range []string{"taxonomy", "vocabulary", "term"} {
			if t.Get(i, col) == nil {
				return errors.Errorf("row %d has null %s", i, col)
			}
		}
		for _, col := range []string{"index_taxonomy", "index_vocabulary", "index_term"} {
			v := t.Get(i, col)
			if v == nil {
				return errors.Errorf("row %d has null %s", i, col)
			}
			if _, ok := AsInt(v); !ok {
				return errors.Errorf("row %d has non-integer %s: %v", i, col, v)
			}
		}
	}
	return nil
}

// ValidateMaelstromShape checks the reshaped taxonomy contract: the flat
// schema plus the vocabulary_short and scale columns. Scale cells may be
// nil on any row, and a row may be scale-only (null area cells) when the
// server carries a scale entry with no area counterpart; index columns must
// be integer or nil.
func ValidateMaelstromShape(t *Table) error {
	cols := append([]string{}, TaxonomyColumns...)
	cols = append(cols, "vocabulary_short")
	cols = append(cols, TaxonomyScaleColumns...)
	for _, col := range cols {
		if !t.HasColumn(col) {
			return errors.Errorf("maelstrom taxonomy table missing column %q", col)
		}
	}
	for i := 0; i < t.NumRows(); i++ {
		if t.Get(i, "term") == nil {
			return errors.Errorf("row %d has null term", i)
		}
		for _, col := range TaxonomyIndexColumns {
			if v := t.Get(i, col); v != nil {
				if _, ok := AsInt(v); !ok {
					return errors.Errorf("row %d has non-integer %s: %v", i, col, v)
				}
			}
		}
	}
	return nil
}
