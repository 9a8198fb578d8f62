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
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/maelstrom-research/mdk/frame"
	"github.com/maelstrom-research/mdk/opal"
)

// Content selects what a pull fetches per table.
type Content string

// Content selector values.
const (
	ContentAll      Content = "all"
	ContentDataset  Content = "dataset"
	ContentDataDict Content = "data_dict"
)

// Transfer coordinates table uploads and downloads between local
// dataset/dictionary pairs and a remote project. Tables are processed
// strictly sequentially in the order supplied (push) or returned by the
// server (pull). Progress goes to the injected Logger and Statter.
type Transfer struct {
	Client *opal.Client
	Log    Logger
	Stats  Statter

	idSeq uint64
}

// NewTransfer returns a Transfer over the given client with no-op
// observers.
func NewTransfer(client *opal.Client) *Transfer {
	return &Transfer{
		Client: client,
		Log:    NopLogger{},
		Stats:  NopStatter{},
	}
}

// idColumnName returns a fresh synthetic identifier column name, unique
// within this process.
func (tr *Transfer) idColumnName() string {
	return fmt.Sprintf("mdk_index_%d", atomic.AddUint64(&tr.idSeq, 1))
}

// PushRequest describes one push. Exactly one of the three input forms must
// be supplied: a single dataset (with an optional dictionary), a dictionary
// alone, or a dossier. The single forms additionally need exactly one table
// name in Tables.
type PushRequest struct {
	Project string
	Tables  []string
	Dataset *frame.Dataset
	Dict    *frame.DataDict
	Dossier frame.Dossier

	// Force creates the project and any absent tables instead of failing.
	Force bool
	// Overwrite lets the server replace existing table data; the server
	// makes its own replace-vs-merge decision from the flag.
	Overwrite bool
}

// TableResult reports what happened to one table during a transfer.
type TableResult struct {
	Table    string
	Rows     int
	Messages []string
}

func (req *PushRequest) validate() error {
	if req.Project == "" {
		return &MissingArgumentError{Reason: "project name is required"}
	}
	single := req.Dataset != nil || req.Dict != nil
	switch {
	case single && req.Dossier != nil:
		return &ArgumentConflictError{Reason: "supply a dataset/dictionary or a dossier, not both"}
	case !single && req.Dossier == nil:
		return &MissingArgumentError{Reason: "one of dataset, dictionary or dossier is required"}
	}
	if single {
		if len(req.Tables) == 0 {
			return &MissingArgumentError{Reason: "a table name is required with a dataset or dictionary"}
		}
		if len(req.Tables) > 1 {
			return &ArgumentConflictError{Reason: "a single dataset or dictionary takes exactly one table name"}
		}
	}
	return req.Dossier.Validate()
}

// units builds the per-table work list from the request's input form.
func (req *PushRequest) units() frame.Dossier {
	if req.Dossier != nil {
		return req.Dossier
	}
	return frame.Dossier{{Name: req.Tables[0], Dataset: req.Dataset, Dict: req.Dict}}
}

// Push uploads one or more tables. All argument validation happens before
// any network activity. For each table, a missing dictionary is inferred
// from the dataset and a missing dataset is synthesized from the
// dictionary's declared variables; a dataset with a supplied dictionary is
// validated against it. A synthetic identifier column is prepended before
// transfer, then the data is saved and the dictionary pushed as a separate
// update.
func (tr *Transfer) Push(ctx context.Context, req PushRequest) ([]TableResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	if err := tr.ensureProject(ctx, req.Project, req.Force); err != nil {
		return nil, err
	}

	var results []TableResult
	for _, unit := range req.units() {
		res, err := tr.pushTable(ctx, req, unit)
		if err != nil {
			return results, errors.Wrapf(err, "pushing table %q", unit.Name)
		}
		results = append(results, res)
		tr.Stats.Count("push.tables", 1, 1)
	}
	return results, nil
}

func (tr *Transfer) ensureProject(ctx context.Context, project string, force bool) error {
	exists, err := tr.Client.ProjectExists(ctx, project)
	if err != nil {
		return err
	}
	switch {
	case exists:
		tr.Log.Debugf("project %s already exists", project)
	case force:
		if err := tr.Client.CreateProject(ctx, project); err != nil {
			return err
		}
		tr.Log.Printf("created project %s", project)
	default:
		return errors.Errorf("project %q does not exist (use force to create it)", project)
	}
	return nil
}

func (tr *Transfer) pushTable(ctx context.Context, req PushRequest, unit *frame.TableUnit) (TableResult, error) {
	res := TableResult{Table: unit.Name}

	dataset, dict := unit.Dataset, unit.Dict
	switch {
	case dataset == nil:
		dataset = frame.DatasetFromDict(dict, unit.Name)
	case dict == nil:
		dict = frame.DictFromDataset(dataset)
	default:
		if err := frame.ApplyDict(dataset, dict); err != nil {
			return res, err
		}
	}

	exists, err := tr.Client.TableExists(ctx, req.Project, unit.Name)
	if err != nil {
		return res, err
	}
	switch {
	case exists:
		res.Messages = append(res.Messages, "table already exists")
		tr.Log.Debugf("table %s.%s already exists", req.Project, unit.Name)
	case req.Force:
		if err := tr.Client.CreateTable(ctx, req.Project, unit.Name); err != nil {
			return res, err
		}
		res.Messages = append(res.Messages, "table created")
		tr.Log.Printf("created table %s.%s", req.Project, unit.Name)
	default:
		return res, errors.Errorf("table %q does not exist (use force to create it)", unit.Name)
	}

	if req.Overwrite {
		res.Messages = append(res.Messages, "tables will be overwritten")
		tr.Log.Printf("tables of %s will be overwritten", req.Project)
	}

	idCol := tr.idColumnName()
	withID, err := frame.WithIDColumn(dataset, idCol)
	if err != nil {
		return res, err
	}

	save := opal.SaveTableRequest{
		Data:      tableData(withID.Data),
		IDColumn:  idCol,
		Overwrite: req.Overwrite,
		Force:     req.Force,
	}
	if err := tr.Client.SaveTable(ctx, req.Project, unit.Name, save); err != nil {
		return res, err
	}
	res.Rows = withID.Data.NumRows()
	tr.Stats.Count("push.rows", int64(res.Rows), 1)

	if err := tr.Client.UpdateDictionary(ctx, req.Project, unit.Name, tableMaps(dict.Variables), tableMaps(dict.Categories)); err != nil {
		return res, err
	}
	return res, nil
}

// PullRequest describes one pull. Tables defaults to every table of the
// project, in server order.
type PullRequest struct {
	Project string
	Tables  []string
	// Content selects datasets, dictionaries or both (the default).
	Content Content
	// KeepAsDossier forces a dossier result even for a single table.
	KeepAsDossier bool
	// RemoveID drops the synthetic identifier column added at upload time.
	RemoveID bool
}

// PullResult is what a pull returns: a single dataset/dictionary pair when
// exactly one table was requested and KeepAsDossier was off, otherwise the
// dossier keyed by table name.
type PullResult struct {
	Dossier frame.Dossier
	Dataset *frame.Dataset
	Dict    *frame.DataDict
}

// Pull downloads one or more tables. A no-op server round trip validates
// the session before the table loop starts. Each table's dictionary is
// fetched and normalized (or synthesized empty), its data fetched when
// requested, and the identifier column's metadata reconciled into the
// dictionary unless RemoveID drops the column.
func (tr *Transfer) Pull(ctx context.Context, req PullRequest) (*PullResult, error) {
	if req.Project == "" {
		return nil, &MissingArgumentError{Reason: "project name is required"}
	}
	content := req.Content
	if content == "" {
		content = ContentAll
	}
	switch content {
	case ContentAll, ContentDataset, ContentDataDict:
	default:
		return nil, &InputFormatError{Reason: fmt.Sprintf("unknown content selector %q", content)}
	}

	if err := tr.Client.Execute(ctx); err != nil {
		return nil, errors.Wrap(err, "validating session")
	}

	tables := req.Tables
	if len(tables) == 0 {
		var err error
		tables, err = tr.Client.ProjectTables(ctx, req.Project)
		if err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			return nil, &EmptyProjectError{Project: req.Project}
		}
	}

	var dossier frame.Dossier
	for _, table := range tables {
		unit, err := tr.pullTable(ctx, req.Project, table, content, req.RemoveID)
		if err != nil {
			return nil, errors.Wrapf(err, "pulling table %q", table)
		}
		dossier = append(dossier, unit)
		tr.Stats.Count("pull.tables", 1, 1)
	}

	if len(req.Tables) == 1 && !req.KeepAsDossier {
		return &PullResult{Dataset: dossier[0].Dataset, Dict: dossier[0].Dict}, nil
	}
	return &PullResult{Dossier: dossier}, nil
}

func (tr *Transfer) pullTable(ctx context.Context, project, table string, content Content, removeID bool) (*frame.TableUnit, error) {
	raw, err := tr.Client.GetDictionary(ctx, project, table)
	if err != nil {
		return nil, err
	}
	var dict *frame.DataDict
	if hasVariables(raw) {
		dict, err = NormalizeDictionary(raw)
		if err != nil {
			return nil, err
		}
	} else {
		dict = frame.NewDataDict()
		tr.Log.Debugf("table %s.%s has no dictionary, synthesized an empty one", project, table)
	}

	unit := &frame.TableUnit{Name: table, Dict: dict}
	if content == ContentDataDict {
		return unit, nil
	}

	td, err := tr.Client.GetTable(ctx, project, table)
	if err != nil {
		return nil, err
	}
	dataset := &frame.Dataset{Name: table, Data: tableFromData(td)}

	if idCol := dataset.IDColumn(); idCol != "" {
		if removeID {
			dataset.Data.DropColumn(idCol)
		} else if !dict.HasVariable(idCol) {
			idData := frame.New(idCol)
			for i := 0; i < dataset.Data.NumRows(); i++ {
				idData.AppendRow(dataset.Data.Get(i, idCol))
			}
			idDict := frame.DictFromDataset(&frame.Dataset{Name: table, Data: idData})
			frame.MergeVariables(dict, idDict)
		}
	}

	if content == ContentDataset {
		unit.Dict = nil
	}
	unit.Dataset = dataset
	tr.Stats.Count("pull.rows", int64(dataset.Data.NumRows()), 1)
	return unit, nil
}

func hasVariables(raw opal.RawDictionary) bool {
	switch v := raw["variables"].(type) {
	case []interface{}:
		return len(v) > 0
	case []map[string]interface{}:
		return len(v) > 0
	}
	return false
}

// tableData converts a local table to its wire shape, coercing cells to
// string or null.
func tableData(t *frame.Table) opal.TableData {
	c := t.Copy()
	c.CoerceString()
	td := opal.TableData{Columns: c.Columns()}
	for i := 0; i < c.NumRows(); i++ {
		row := make([]interface{}, 0, c.NumCols())
		for _, col := range td.Columns {
			row = append(row, c.Get(i, col))
		}
		td.Rows = append(td.Rows, row)
	}
	return td
}

// tableFromData converts wire table data back to a local table.
func tableFromData(td opal.TableData) *frame.Table {
	t := frame.New(td.Columns...)
	for _, row := range td.Rows {
		vals := make([]interface{}, len(td.Columns))
		copy(vals, row)
		t.AppendRow(vals...)
	}
	return t
}

// tableMaps converts a table to a list of records, one per row. A nil
// table yields nil.
func tableMaps(t *frame.Table) []map[string]interface{} {
	if t == nil {
		return nil
	}
	maps := make([]map[string]interface{}, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		maps = append(maps, t.RowMap(i))
	}
	return maps
}
