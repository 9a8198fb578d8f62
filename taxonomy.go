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
	"context"

	"github.com/pkg/errors"

	"github.com/maelstrom-research/mdk/frame"
	"github.com/maelstrom-research/mdk/opal"
)

const (
	unknownTaxonomy   = "Unknown_taxonomy"
	unknownVocabSufx  = "_Unknown_vocabulary"
	unknownTermSuffix = "_Unknown_term"
)

// TaxonomyOptions configures taxonomy fetching and reshaping. QualityCheck
// retains the synthetic placeholder rows (index 0) that are filtered out by
// default; its effect on output shape is significant, so it is an explicit
// parameter rather than a constant.
type TaxonomyOptions struct {
	QualityCheck bool
}

// FetchTaxonomies downloads the server's full taxonomy tree and flattens it
// into one table, one row per (taxonomy, vocabulary, term) triple, with
// dense zero-based indices recomputed at each level. A synthetic
// Unknown_taxonomy is prepended, and every taxonomy gets a synthetic
// "<taxonomy>_Unknown_vocabulary" (at vocabulary index 0) and every
// vocabulary a synthetic "<vocabulary>_Unknown_term" (at term index 0), so
// each level is always addressable. Placeholder term rows survive only for
// vocabularies with no real terms unless opts.QualityCheck retains them
// all. An empty server taxonomy list yields an empty table with the full
// declared schema.
func FetchTaxonomies(ctx context.Context, client *opal.Client, opts TaxonomyOptions) (*frame.Table, error) {
	taxos, err := client.Taxonomies(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing taxonomies")
	}
	if len(taxos) == 0 {
		return frame.NewTaxonomyTable(), nil
	}

	taxos = append([]opal.Taxonomy{{Name: unknownTaxonomy}}, taxos...)

	type termRow struct {
		taxoIdx   int64
		taxo      opal.Taxonomy
		vocabIdx  int64
		vocab     string
		realVocab bool
		termIdx   int64
		term      string
		realTerm  bool
	}
	var rows []termRow

	for ti, taxo := range taxos {
		vocabs := append([]string{taxo.Name + unknownVocabSufx}, vocabNames(taxo)...)
		for vi, vocab := range vocabs {
			real := vi > 0
			var termNames []string
			if real {
				termNames, err = client.VocabularyTerms(ctx, taxo.Name, vocab)
				if err != nil {
					return nil, errors.Wrapf(err, "fetching terms of %s/%s", taxo.Name, vocab)
				}
			}
			terms := append([]string{vocab + unknownTermSuffix}, termNames...)
			for tmi, term := range terms {
				keep := tmi > 0 || len(termNames) == 0 || opts.QualityCheck
				if !keep {
					continue
				}
				rows = append(rows, termRow{
					taxoIdx:   int64(ti),
					taxo:      taxo,
					vocabIdx:  int64(vi),
					vocab:     vocab,
					realVocab: real,
					termIdx:   int64(tmi),
					term:      term,
					realTerm:  tmi > 0,
				})
			}
		}
	}

	info, err := fetchTermInfo(ctx, client, taxos)
	if err != nil {
		return nil, err
	}

	out := frame.NewTaxonomyTable()
	joined := 0
	for _, r := range rows {
		m := map[string]interface{}{
			"index_taxonomy":   r.taxoIdx,
			"taxonomy":         r.taxo.Name,
			"index_vocabulary": r.vocabIdx,
			"vocabulary":       r.vocab,
			"index_term":       r.termIdx,
			"term":             r.term,
		}
		if r.taxo.Title != "" {
			m["taxonomy_title"] = r.taxo.Title
		}
		if r.taxo.Description != "" {
			m["taxonomy_description"] = r.taxo.Description
		}
		hits := info[termKey{r.taxo.Name, r.vocab, r.term}]
		if !r.realTerm || len(hits) == 0 {
			joined++
			out.AppendMap(m)
			continue
		}
		// A duplicated metadata entry multiplies the row here; the count
		// check below turns that into a ConsistencyError.
		for _, h := range hits {
			joined++
			if h.Title != "" {
				m["term_title"] = h.Title
			}
			if h.Description != "" {
				m["term_description"] = h.Description
			}
			out.AppendMap(m)
		}
	}
	if joined != len(rows) {
		return nil, &ConsistencyError{Expected: len(rows), Got: joined}
	}

	out.SortBy("index_taxonomy", "index_vocabulary", "index_term")
	return out, nil
}

type termKey struct {
	taxonomy   string
	vocabulary string
	term       string
}

// fetchTermInfo pulls title/description metadata for every real
// (taxonomy, vocabulary) pair.
func fetchTermInfo(ctx context.Context, client *opal.Client, taxos []opal.Taxonomy) (map[termKey][]opal.Term, error) {
	info := make(map[termKey][]opal.Term)
	for _, taxo := range taxos {
		for _, vocab := range vocabNames(taxo) {
			terms, err := client.VocabularyTermInfo(ctx, taxo.Name, vocab)
			if err != nil {
				return nil, errors.Wrapf(err, "fetching term info of %s/%s", taxo.Name, vocab)
			}
			for _, t := range terms {
				k := termKey{taxo.Name, vocab, t.Name}
				info[k] = append(info[k], t)
			}
		}
	}
	return info, nil
}

func vocabNames(taxo opal.Taxonomy) []string {
	names := make([]string, len(taxo.Vocabularies))
	for i, v := range taxo.Vocabularies {
		names[i] = v.Name
	}
	return names
}
