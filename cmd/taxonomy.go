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
	"os"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/maelstrom-research/mdk"
	"github.com/maelstrom-research/mdk/frame"
)

// TaxonomyMain holds the flags and logic of the taxonomy subcommand.
type TaxonomyMain struct {
	ServerOpts

	Reshape      bool   `help:"Reshape the flat taxonomy into the Maelstrom area/scale form."`
	QualityCheck bool   `help:"Keep the synthetic placeholder rows for inspection."`
	Out          string `help:"File to write csv to; default is stdout."`

	stdout io.Writer
}

// NewTaxonomyMain returns a TaxonomyMain with defaults.
func NewTaxonomyMain() *TaxonomyMain {
	return &TaxonomyMain{stdout: os.Stdout}
}

// Run downloads the server taxonomy, optionally reshapes it, and writes it
// as csv.
func (m *TaxonomyMain) Run() error {
	client, err := m.Client()
	if err != nil {
		return errors.Wrap(err, "building client")
	}
	opts := mdk.TaxonomyOptions{QualityCheck: m.QualityCheck}
	tbl, err := mdk.FetchTaxonomies(context.Background(), client, opts)
	if err != nil {
		return errors.Wrap(err, "fetching taxonomies")
	}
	if m.Reshape {
		tbl, err = mdk.ReshapeMaelstrom(tbl, opts)
		if err != nil {
			return errors.Wrap(err, "reshaping taxonomies")
		}
	}

	out := m.stdout
	if m.Out != "" {
		f, err := os.Create(m.Out)
		if err != nil {
			return errors.Wrapf(err, "creating %s", m.Out)
		}
		defer f.Close()
		out = f
	}
	return errors.Wrap(frame.WriteCSV(out, tbl), "writing csv")
}

// NewTaxonomyCommand returns a new cobra command wrapping TaxonomyMain.
func NewTaxonomyCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	main := NewTaxonomyMain()
	main.stdout = stdout
	taxonomyCommand := &cobra.Command{
		Use:   "taxonomy",
		Short: "download the server taxonomy as a flat or Maelstrom-shaped csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	if err := commandeer.Flags(taxonomyCommand.Flags(), main); err != nil {
		panic(err)
	}
	return taxonomyCommand
}

func init() {
	subcommandFns["taxonomy"] = NewTaxonomyCommand
}
