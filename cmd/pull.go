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

package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/maelstrom-research/mdk"
	"github.com/maelstrom-research/mdk/frame"
	"github.com/maelstrom-research/mdk/termstat"
)

// PullMain holds the flags and logic of the pull subcommand.
type PullMain struct {
	ServerOpts

	Project  string   `help:"Project to pull from."`
	Tables   []string `help:"Tables to pull; default is every table of the project."`
	Content  string   `help:"What to pull: all, dataset or data_dict."`
	RemoveID bool     `help:"Drop the synthetic identifier column added at upload time."`
	Out      string   `help:"Directory to write csv files into."`

	stderr io.Writer
}

// NewPullMain returns a PullMain with defaults.
func NewPullMain() *PullMain {
	return &PullMain{
		Content: string(mdk.ContentAll),
		Out:     ".",
		stderr:  os.Stderr,
	}
}

// Run pulls tables from the server and writes each as csv files under the
// output directory.
func (m *PullMain) Run() error {
	client, err := m.Client()
	if err != nil {
		return errors.Wrap(err, "building client")
	}
	tr := mdk.NewTransfer(client)
	tr.Log = mdk.StdLogger{Logger: log.New(m.stderr, "", log.LstdFlags)}
	tr.Stats = termstat.NewCollector(m.stderr)

	res, err := tr.Pull(context.Background(), mdk.PullRequest{
		Project:       m.Project,
		Tables:        m.Tables,
		Content:       mdk.Content(m.Content),
		KeepAsDossier: true,
		RemoveID:      m.RemoveID,
	})
	if err != nil {
		return errors.Wrap(err, "pulling")
	}

	for _, unit := range res.Dossier {
		if unit.Dataset != nil {
			if err := writeCSVFile(filepath.Join(m.Out, unit.Name+".csv"), unit.Dataset.Data); err != nil {
				return err
			}
		}
		if unit.Dict != nil {
			if err := writeCSVFile(filepath.Join(m.Out, unit.Name+"_variables.csv"), unit.Dict.Variables); err != nil {
				return err
			}
			if unit.Dict.Categories != nil {
				if err := writeCSVFile(filepath.Join(m.Out, unit.Name+"_categories.csv"), unit.Dict.Categories); err != nil {
					return err
				}
			}
		}
		tr.Log.Printf("pulled %s", unit.Name)
	}
	return nil
}

func writeCSVFile(path string, t *frame.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := frame.WriteCSV(f, t); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

// NewPullCommand returns a new cobra command wrapping PullMain.
func NewPullCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	main := NewPullMain()
	main.stderr = stderr
	pullCommand := &cobra.Command{
		Use:   "pull",
		Short: "pull tables from an Opal project into csv files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	if err := commandeer.Flags(pullCommand.Flags(), main); err != nil {
		panic(err)
	}
	return pullCommand
}

func init() {
	subcommandFns["pull"] = NewPullCommand
}
