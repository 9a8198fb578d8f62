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
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/maelstrom-research/mdk"
	"github.com/maelstrom-research/mdk/frame"
	"github.com/maelstrom-research/mdk/termstat"
)

// PushMain holds the flags and logic of the push subcommand.
type PushMain struct {
	ServerOpts

	Project   string `help:"Project to push into."`
	Table     string `help:"Table name on the server."`
	Data      string `help:"Path to a headered csv file holding the dataset."`
	Variables string `help:"Optional path to a csv file holding variable metadata."`
	Force     bool   `help:"Create the project and table if absent."`
	Overwrite bool   `help:"Let the server overwrite existing table data."`

	stderr io.Writer
}

// NewPushMain returns a PushMain with defaults.
func NewPushMain() *PushMain {
	return &PushMain{stderr: os.Stderr}
}

// Run pushes one csv dataset to the server.
func (m *PushMain) Run() error {
	f, err := os.Open(m.Data)
	if err != nil {
		return errors.Wrap(err, "opening dataset")
	}
	defer f.Close()
	data, err := frame.ReadCSV(f)
	if err != nil {
		return errors.Wrap(err, "reading dataset")
	}

	var dict *frame.DataDict
	if m.Variables != "" {
		vf, err := os.Open(m.Variables)
		if err != nil {
			return errors.Wrap(err, "opening variables")
		}
		defer vf.Close()
		vars, err := frame.ReadCSV(vf)
		if err != nil {
			return errors.Wrap(err, "reading variables")
		}
		dict = &frame.DataDict{Variables: vars}
	}

	client, err := m.Client()
	if err != nil {
		return errors.Wrap(err, "building client")
	}
	tr := mdk.NewTransfer(client)
	tr.Log = mdk.StdLogger{Logger: log.New(m.stderr, "", log.LstdFlags)}
	tr.Stats = termstat.NewCollector(m.stderr)

	results, err := tr.Push(context.Background(), mdk.PushRequest{
		Project:   m.Project,
		Tables:    []string{m.Table},
		Dataset:   &frame.Dataset{Name: m.Table, Data: data},
		Dict:      dict,
		Force:     m.Force,
		Overwrite: m.Overwrite,
	})
	if err != nil {
		return errors.Wrap(err, "pushing")
	}
	for _, res := range results {
		tr.Log.Printf("pushed %s: %d rows", res.Table, res.Rows)
	}
	return nil
}

// NewPushCommand returns a new cobra command wrapping PushMain.
func NewPushCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	main := NewPushMain()
	main.stderr = stderr
	pushCommand := &cobra.Command{
		Use:   "push",
		Short: "push a csv dataset and its dictionary to an Opal project",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := main.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	if err := commandeer.Flags(pushCommand.Flags(), main); err != nil {
		panic(err)
	}
	return pushCommand
}

func init() {
	subcommandFns["push"] = NewPushCommand
}
