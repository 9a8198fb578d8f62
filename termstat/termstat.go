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

// Package termstat provides a stats implementation which periodically
// prints transfer progress to the given writer. It is meant for watching
// long push/pull batches at the terminal in lieu of a real metrics
// collector.
package termstat

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Collector accumulates transfer counts and prints them to the terminal.
type Collector struct {
	lock    sync.Mutex
	indexes map[string]int
	names   []string
	counts  []int64
	changed bool
	out     io.Writer
}

// NewCollector initializes and returns a new Collector writing to out.
func NewCollector(out io.Writer) *Collector {
	c := &Collector{
		indexes: make(map[string]int),
		out:     out,
	}
	go func() {
		tick := time.NewTicker(time.Second * 2)
		for ; ; <-tick.C {
			c.write()
		}
	}()
	return c
}

// Count adds value to the named counter. The rate and tags arguments exist
// to satisfy the Statter interface and are ignored.
func (c *Collector) Count(name string, value int64, rate float64, tags ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.changed = true

	idx, ok := c.indexes[name]
	if !ok {
		idx = len(c.counts)
		c.counts = append(c.counts, 0)
		c.names = append(c.names, name)
		c.indexes[name] = idx
	}
	c.counts[idx] += value
}

func (c *Collector) write() {
	sb := strings.Builder{}
	c.lock.Lock()
	if !c.changed {
		c.lock.Unlock()
		return
	}
	for i := 0; i < len(c.counts); i++ {
		fmt.Fprintf(&sb, "%s: %d ", c.names[i], c.counts[i])
	}
	c.changed = false
	fmt.Fprintf(c.out, "\r"+sb.String())
	c.lock.Unlock()
}

// Gauge does nothing.
func (c *Collector) Gauge(name string, value float64, rate float64, tags ...string) {}

// Timing does nothing.
func (c *Collector) Timing(name string, value time.Duration, rate float64, tags ...string) {}
