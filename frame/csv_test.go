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

package frame_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maelstrom-research/mdk/frame"
)

func TestReadCSV(t *testing.T) {
	tbl, err := frame.ReadCSV(strings.NewReader("a,b\n1,\n,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.NumRows())
	}
	if tbl.Get(0, "a") != "1" || tbl.Get(0, "b") != nil {
		t.Fatalf("unexpected first row: %v %v", tbl.Get(0, "a"), tbl.Get(0, "b"))
	}
	if tbl.Get(1, "a") != nil || tbl.Get(1, "b") != "2" {
		t.Fatalf("unexpected second row: %v %v", tbl.Get(1, "a"), tbl.Get(1, "b"))
	}
}

func TestReadCSVBadHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty stream", in: ""},
		{name: "empty header field", in: "a,,c\n1,2,3\n"},
		{name: "duplicate header field", in: "a,b,a\n1,2,3\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := frame.ReadCSV(strings.NewReader(test.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := frame.New("a", "b")
	tbl.AppendRow("1", nil)
	tbl.AppendRow(int64(2), "x")

	var buf bytes.Buffer
	if err := frame.WriteCSV(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	want := "a,b\n1,\n2,x\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
