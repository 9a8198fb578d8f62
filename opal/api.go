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

package opal

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Taxonomy is one server-side taxonomy with its vocabularies. Term details
// are fetched separately per vocabulary.
type Taxonomy struct {
	Name         string       `json:"name"`
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	Vocabularies []Vocabulary `json:"vocabularies,omitempty"`
}

// Vocabulary is one named grouping of terms within a taxonomy.
type Vocabulary struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Term is one controlled-vocabulary value.
type Term struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// TableData carries a table's cells over the wire with an explicit column
// order. Cells are strings or null.
type TableData struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// RawDictionary is a table dictionary in the server's native shape: a
// record with variables, categories, table and project keys.
type RawDictionary map[string]interface{}

// SaveTableRequest is the body of a table save.
type SaveTableRequest struct {
	Data      TableData `json:"data"`
	IDColumn  string    `json:"idColumn"`
	Overwrite bool      `json:"overwrite"`
	Force     bool      `json:"force"`
}

// ProjectExists reports whether the named project exists.
func (c *Client) ProjectExists(ctx context.Context, project string) (bool, error) {
	ok, err := c.exists(ctx, "/ws/project/"+escape(project))
	return ok, errors.Wrapf(err, "checking project %q", project)
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, project string) error {
	body := map[string]string{"name": project}
	err := c.do(ctx, http.MethodPost, "/ws/projects", nil, body, nil)
	return errors.Wrapf(err, "creating project %q", project)
}

// ProjectTables lists the table names of a project in server order.
func (c *Client) ProjectTables(ctx context.Context, project string) ([]string, error) {
	var tables []string
	err := c.do(ctx, http.MethodGet, "/ws/project/"+escape(project)+"/tables", nil, nil, &tables)
	return tables, errors.Wrapf(err, "listing tables of %q", project)
}

// TableExists reports whether the named table exists in the project.
func (c *Client) TableExists(ctx context.Context, project, table string) (bool, error) {
	ok, err := c.exists(ctx, "/ws/project/"+escape(project)+"/table/"+escape(table))
	return ok, errors.Wrapf(err, "checking table %q.%q", project, table)
}

// CreateTable creates an empty table in the project.
func (c *Client) CreateTable(ctx context.Context, project, table string) error {
	body := map[string]string{"name": table}
	err := c.do(ctx, http.MethodPost, "/ws/project/"+escape(project)+"/tables", nil, body, nil)
	return errors.Wrapf(err, "creating table %q.%q", project, table)
}

// SaveTable writes a table's data. The server decides between replace and
// merge from the overwrite and force flags; the id column names the
// identifier variable.
func (c *Client) SaveTable(ctx context.Context, project, table string, req SaveTableRequest) error {
	err := c.do(ctx, http.MethodPut, "/ws/project/"+escape(project)+"/table/"+escape(table)+"/data", nil, req, nil)
	return errors.Wrapf(err, "saving table %q.%q", project, table)
}

// GetTable fetches a table's data.
func (c *Client) GetTable(ctx context.Context, project, table string) (TableData, error) {
	var td TableData
	err := c.do(ctx, http.MethodGet, "/ws/project/"+escape(project)+"/table/"+escape(table)+"/data", nil, nil, &td)
	return td, errors.Wrapf(err, "getting table %q.%q", project, table)
}

// GetDictionary fetches a table's dictionary in the server's native shape.
// A table with no dictionary yields a RawDictionary with empty variables.
func (c *Client) GetDictionary(ctx context.Context, project, table string) (RawDictionary, error) {
	var raw RawDictionary
	err := c.do(ctx, http.MethodGet, "/ws/project/"+escape(project)+"/table/"+escape(table)+"/dictionary", nil, nil, &raw)
	return raw, errors.Wrapf(err, "getting dictionary of %q.%q", project, table)
}

// UpdateDictionary replaces a table's variable and category metadata.
func (c *Client) UpdateDictionary(ctx context.Context, project, table string, variables, categories []map[string]interface{}) error {
	body := map[string]interface{}{
		"variables":  variables,
		"categories": categories,
	}
	err := c.do(ctx, http.MethodPut, "/ws/project/"+escape(project)+"/table/"+escape(table)+"/dictionary", nil, body, nil)
	return errors.Wrapf(err, "updating dictionary of %q.%q", project, table)
}

// Taxonomies lists all taxonomies with their vocabularies, in server order.
func (c *Client) Taxonomies(ctx context.Context) ([]Taxonomy, error) {
	var taxos []Taxonomy
	err := c.do(ctx, http.MethodGet, "/ws/taxonomies", nil, nil, &taxos)
	return taxos, errors.Wrap(err, "listing taxonomies")
}

// VocabularyTerms lists the term names of one vocabulary, in server order.
func (c *Client) VocabularyTerms(ctx context.Context, taxonomy, vocabulary string) ([]string, error) {
	var names []string
	err := c.do(ctx, http.MethodGet, "/ws/taxonomy/"+escape(taxonomy)+"/vocabulary/"+escape(vocabulary)+"/terms", nil, nil, &names)
	return names, errors.Wrapf(err, "listing terms of %s/%s", taxonomy, vocabulary)
}

// VocabularyTermInfo fetches title and description for every term of one
// vocabulary.
func (c *Client) VocabularyTermInfo(ctx context.Context, taxonomy, vocabulary string) ([]Term, error) {
	var terms []Term
	q := url.Values{"details": []string{strconv.FormatBool(true)}}
	err := c.do(ctx, http.MethodGet, "/ws/taxonomy/"+escape(taxonomy)+"/vocabulary/"+escape(vocabulary)+"/terms", q, nil, &terms)
	return terms, errors.Wrapf(err, "getting term info of %s/%s", taxonomy, vocabulary)
}
