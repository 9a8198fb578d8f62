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

// Package mock provides an in-memory stand-in for the Opal server's REST
// API, for tests and local experimentation. It implements just enough of
// the wire surface that the opal client consumes.
package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/maelstrom-research/mdk/opal"
)

type mockTable struct {
	data       opal.TableData
	idColumn   string
	variables  []map[string]interface{}
	categories []map[string]interface{}
}

type mockProject struct {
	tables map[string]*mockTable
	order  []string
}

// Server holds the fake repository state and serves the Opal wire API.
type Server struct {
	mu         sync.Mutex
	projects   map[string]*mockProject
	taxonomies []opal.Taxonomy
	terms      map[string][]opal.Term
	// TermInfo, when set for a taxonomy/vocabulary key, overrides the
	// metadata answered by the details endpoint. Used to simulate
	// inconsistent server data.
	TermInfo map[string][]opal.Term
	files    map[string][]byte
}

// NewServer returns an empty fake repository.
func NewServer() *Server {
	return &Server{
		projects: make(map[string]*mockProject),
		terms:    make(map[string][]opal.Term),
		files:    make(map[string][]byte),
	}
}

func vocabKey(taxonomy, vocabulary string) string { return taxonomy + "/" + vocabulary }

// AddTaxonomy registers a taxonomy and the terms of each of its
// vocabularies.
func (s *Server) AddTaxonomy(taxo opal.Taxonomy, terms map[string][]opal.Term) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxonomies = append(s.taxonomies, taxo)
	for vocab, list := range terms {
		s.terms[vocabKey(taxo.Name, vocab)] = list
	}
}

// SeedProject creates a project directly in the store.
func (s *Server) SeedProject(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProject(name)
}

// SeedTable creates a table with data directly in the store.
func (s *Server) SeedTable(project, table string, data opal.TableData, variables, categories []map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ensureProject(project)
	p.ensureTable(table)
	p.tables[table].data = data
	p.tables[table].variables = variables
	p.tables[table].categories = categories
}

// HasProject reports whether the named project exists in the store.
func (s *Server) HasProject(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.projects[name]
	return ok
}

// NumProjects returns how many projects the store holds.
func (s *Server) NumProjects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// TableData returns the stored data of a table.
func (s *Server) TableData(project, table string) (opal.TableData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[project]
	if !ok {
		return opal.TableData{}, false
	}
	t, ok := p.tables[table]
	if !ok {
		return opal.TableData{}, false
	}
	return t.data, true
}

// File returns the stored bytes of a server-side file.
func (s *Server) File(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[strings.TrimLeft(path, "/")]
	return b, ok
}

func (s *Server) ensureProject(name string) *mockProject {
	p, ok := s.projects[name]
	if !ok {
		p = &mockProject{tables: make(map[string]*mockTable)}
		s.projects[name] = p
	}
	return p
}

func (p *mockProject) ensureTable(name string) *mockTable {
	t, ok := p.tables[name]
	if !ok {
		t = &mockTable{}
		p.tables[name] = t
		p.order = append(p.order, name)
	}
	return t
}

// ServeHTTP implements http.Handler for the Opal wire API.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/ws/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && path == "execute":
		w.WriteHeader(http.StatusNoContent)
	case strings.HasPrefix(path, "files/"):
		s.serveFiles(w, r, strings.TrimPrefix(path, "files/"))
	case r.Method == http.MethodGet && path == "taxonomies":
		writeJSON(w, s.taxonomies)
	case len(parts) == 5 && parts[0] == "taxonomy" && parts[2] == "vocabulary" && parts[4] == "terms":
		s.serveTerms(w, r, parts[1], parts[3])
	case r.Method == http.MethodPost && path == "projects":
		s.createProject(w, r)
	case len(parts) >= 2 && parts[0] == "project":
		s.serveProject(w, r, parts[1], parts[2:])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveTerms(w http.ResponseWriter, r *http.Request, taxonomy, vocabulary string) {
	key := vocabKey(taxonomy, vocabulary)
	terms, ok := s.terms[key]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("details") == "true" {
		if override, ok := s.TermInfo[key]; ok {
			writeJSON(w, override)
			return
		}
		writeJSON(w, terms)
		return
	}
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Name
	}
	writeJSON(w, names)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		http.Error(w, "bad project body", http.StatusBadRequest)
		return
	}
	if _, ok := s.projects[body.Name]; ok {
		http.Error(w, "project exists", http.StatusConflict)
		return
	}
	s.ensureProject(body.Name)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) serveProject(w http.ResponseWriter, r *http.Request, name string, rest []string) {
	p, ok := s.projects[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(rest) == 0:
		writeJSON(w, map[string]string{"name": name})
	case len(rest) == 1 && rest[0] == "tables" && r.Method == http.MethodGet:
		writeJSON(w, p.order)
	case len(rest) == 1 && rest[0] == "tables" && r.Method == http.MethodPost:
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			http.Error(w, "bad table body", http.StatusBadRequest)
			return
		}
		p.ensureTable(body.Name)
		w.WriteHeader(http.StatusCreated)
	case len(rest) >= 2 && rest[0] == "table":
		s.serveTable(w, r, name, p, rest[1], rest[2:])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveTable(w http.ResponseWriter, r *http.Request, project string, p *mockProject, table string, rest []string) {
	t, ok := p.tables[table]
	switch {
	case len(rest) == 0:
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]string{"name": table})
	case rest[0] == "data" && r.Method == http.MethodPut:
		var req opal.SaveTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad save body", http.StatusBadRequest)
			return
		}
		if !ok {
			if !req.Force {
				http.NotFound(w, r)
				return
			}
			t = p.ensureTable(table)
		}
		if req.Overwrite || len(t.data.Rows) == 0 {
			t.data = req.Data
		} else {
			t.data.Rows = append(t.data.Rows, req.Data.Rows...)
		}
		t.idColumn = req.IDColumn
		w.WriteHeader(http.StatusOK)
	case rest[0] == "data" && r.Method == http.MethodGet:
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, t.data)
	case rest[0] == "dictionary" && r.Method == http.MethodGet:
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]interface{}{
			"variables":  t.variables,
			"categories": t.categories,
			"table":      table,
			"project":    project,
		})
	case rest[0] == "dictionary" && r.Method == http.MethodPut:
		if !ok {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Variables  []map[string]interface{} `json:"variables"`
			Categories []map[string]interface{} `json:"categories"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad dictionary body", http.StatusBadRequest)
			return
		}
		t.variables = body.Variables
		t.categories = body.Categories
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveFiles(w http.ResponseWriter, r *http.Request, path string) {
	switch r.Method {
	case http.MethodPost:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading body", http.StatusBadRequest)
			return
		}
		s.files[path] = b
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		b, ok := s.files[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(b)
	default:
		http.Error(w, "unsupported method", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
