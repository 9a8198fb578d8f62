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
	"github.com/pkg/errors"

	"github.com/maelstrom-research/mdk/frame"
)

// noScale is the sentinel marking an area term with no real scale
// subdivision; rows tagged with it get their scale columns nulled after the
// multi-value expansion.
const noScale = "[NO_SCALE]"

// ReshapeMaelstrom re-derives the Maelstrom taxonomy shape from a flat
// taxonomy table as produced by FetchTaxonomies. Area vocabularies get
// their three-letter vocabulary_short codes, scale taxonomies are joined
// onto area rows by the canonical term each scale vocabulary refines,
// multi-valued scale terms are expanded one row per value, and indices and
// types are re-normalized. By default rows carrying a non-positive index
// (the synthetic placeholders) are dropped; opts.QualityCheck keeps them.
// The result is checked against the Maelstrom shape contract and a
// ShapeValidationError is returned when it is violated.
func ReshapeMaelstrom(tbl *frame.Table, opts TaxonomyOptions) (*frame.Table, error) {
	taxoOf := func(t *frame.Table) func(int) string {
		return func(i int) string {
			s, _ := frame.AsString(t.Get(i, "taxonomy"))
			return s
		}
	}
	name := taxoOf(tbl)

	unknown := tbl.Filter(func(i int) bool { return name(i) == unknownTaxonomy })
	additional := tbl.Filter(func(i int) bool { return name(i) == taxoAdditional })
	area := tbl.Filter(func(i int) bool { return name(i) == taxoArea })
	harmo := tbl.Filter(func(i int) bool { return name(i) == taxoHarmo })
	scale := tbl.Filter(func(i int) bool { return scaleTaxonomies[name(i)] })

	if err := area.AddColumn("vocabulary_short", nil); err != nil {
		return nil, errors.Wrap(err, "adding vocabulary_short")
	}
	for i := 0; i < area.NumRows(); i++ {
		vocab, _ := frame.AsString(area.Get(i, "vocabulary"))
		if code, ok := areaShortCodes[vocab]; ok {
			area.Set(i, "vocabulary_short", code)
		}
	}

	scaleSide := scaleJoinSide(scale)
	joined, err := frame.FullJoin(area, scaleSide, "term")
	if err != nil {
		return nil, errors.Wrap(err, "joining scale onto area")
	}

	out := unknown.Concat(additional).Concat(joined).Concat(harmo).Distinct()
	for _, col := range append([]string{"vocabulary_short"}, frame.TaxonomyScaleColumns...) {
		if !out.HasColumn(col) {
			out.AddColumn(col, nil)
		}
	}

	// Tag placeholder scale entries so the expansion below splits the
	// sentinel into its own row.
	for i := 0; i < out.NumRows(); i++ {
		if idx, ok := frame.AsInt(out.Get(i, "index_term_scale")); ok && idx == 0 {
			ts, _ := frame.AsString(out.Get(i, "term_scale"))
			out.Set(i, "term_scale", noScale+", "+ts)
		}
	}

	out = out.ExplodeColumn("term_scale", ",")

	for i := 0; i < out.NumRows(); i++ {
		if ts, _ := frame.AsString(out.Get(i, "term_scale")); ts == noScale {
			out.Set(i, "index_term_scale", nil)
			out.Set(i, "taxonomy_scale", nil)
			out.Set(i, "vocabulary_scale", nil)
			out.Set(i, "term_scale", nil)
			out.Set(i, "term_title_scale", nil)
			out.Set(i, "term_description_scale", nil)
		}
	}

	out.CoerceString()
	out.CoerceInt(frame.TaxonomyIndexColumns...)
	out.SortBy("index_taxonomy", "index_vocabulary", "index_term")

	if !opts.QualityCheck {
		out = out.Filter(func(i int) bool {
			for _, col := range []string{"index_term", "index_term_scale"} {
				if n, ok := frame.AsInt(out.Get(i, col)); ok && n <= 0 {
					return false
				}
			}
			return true
		})
	}

	if err := frame.ValidateMaelstromShape(out); err != nil {
		return nil, &ShapeValidationError{Err: err}
	}
	return out, nil
}

// scaleJoinSide renames a scale slice's columns to their _scale
// counterparts and derives the canonical area term used as the join key.
// Rows whose (taxonomy, vocabulary) pair has no canonical term cannot join
// and are left out.
func scaleJoinSide(scale *frame.Table) *frame.Table {
	out := frame.New("term", "index_term_scale", "taxonomy_scale", "vocabulary_scale",
		"term_scale", "term_title_scale", "term_description_scale")
	for i := 0; i < scale.NumRows(); i++ {
		taxo, _ := frame.AsString(scale.Get(i, "taxonomy"))
		vocab, _ := frame.AsString(scale.Get(i, "vocabulary"))
		canonical, ok := scaleTermNames[scaleKey{taxo, vocab}]
		if !ok {
			continue
		}
		out.AppendMap(map[string]interface{}{
			"term":                   canonical,
			"index_term_scale":       scale.Get(i, "index_term"),
			"taxonomy_scale":         taxo,
			"vocabulary_scale":       vocab,
			"term_scale":             scale.Get(i, "term"),
			"term_title_scale":       scale.Get(i, "term_title"),
			"term_description_scale": scale.Get(i, "term_description"),
		})
	}
	return out
}
