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

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// FileMain holds the flags and logic of the file subcommand.
type FileMain struct {
	ServerOpts

	Up   bool   `help:"Upload instead of download."`
	Src  string `help:"Source path (local when uploading, remote otherwise)."`
	Dest string `help:"Destination path (remote when uploading, local otherwise)."`
}

// NewFileMain returns a FileMain with defaults.
func NewFileMain() *FileMain {
	return &FileMain{}
}

// Run transfers one file between the local filesystem and the server file
// store.
func (m *FileMain) Run() error {
	client, err := m.Client()
	if err != nil {
		return errors.Wrap(err, "building client")
	}
	if m.Up {
		return errors.Wrap(client.UploadFile(context.Background(), m.Src, m.Dest), "uploading")
	}
	return errors.Wrap(client.DownloadFile(context.Background(), m.Src, m.Dest), "downloading")
}

// NewFileCommand returns a new cobra command wrapping FileMain.
func NewFileCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	main := NewFileMain()
	fileCommand := &cobra.Command{
		Use:   "file",
		Short: "move a file between the local filesystem and the Opal file store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	if err := commandeer.Flags(fileCommand.Flags(), main); err != nil {
		panic(err)
	}
	return fileCommand
}

func init() {
	subcommandFns["file"] = NewFileCommand
}
