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

import "fmt"

// InputFormatError reports an input record that does not have the shape an
// operation requires.
type InputFormatError struct {
	Reason string
}

func (e *InputFormatError) Error() string {
	return "bad input format: " + e.Reason
}

// ConsistencyError reports server-returned taxonomy data that disagrees
// with itself. It is fatal and never retried.
type ConsistencyError struct {
	Expected int
	Got      int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent taxonomy data from server: expected %d term rows, got %d", e.Expected, e.Got)
}

// ShapeValidationError reports a reshaped taxonomy table that fails its
// structural contract.
type ShapeValidationError struct {
	Err error
}

func (e *ShapeValidationError) Error() string {
	return "taxonomy shape validation failed: " + e.Err.Error()
}

func (e *ShapeValidationError) Unwrap() error { return e.Err }

// ArgumentConflictError reports mutually exclusive transfer arguments
// supplied together.
type ArgumentConflictError struct {
	Reason string
}

func (e *ArgumentConflictError) Error() string {
	return "conflicting arguments: " + e.Reason
}

// MissingArgumentError reports a required transfer argument that was not
// supplied.
type MissingArgumentError struct {
	Reason string
}

func (e *MissingArgumentError) Error() string {
	return "missing argument: " + e.Reason
}

// EmptyProjectError reports a pull from a project that has no tables.
type EmptyProjectError struct {
	Project string
}

func (e *EmptyProjectError) Error() string {
	return fmt.Sprintf("project %q has no tables", e.Project)
}
