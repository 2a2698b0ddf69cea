// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package filesink buffers generated file content in memory and only
// touches disk when the buffered bytes differ from what is already
// there, so re-running the generator against unchanged input leaves
// file modification times (and downstream build caches) untouched.
package filesink

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stage", "filesink")

// Counts summarizes what a Flush actually did to disk.
type Counts struct {
	Created     int
	Overwritten int
	Skipped     int
	Deleted     int
}

// Sink is a buffered write-through cache over a directory tree.
type Sink struct {
	dir   string
	files map[string]*bytes.Buffer
	order []string
}

// New creates a Sink rooted at dir. dir is created on first Flush if it
// doesn't already exist.
func New(dir string) *Sink {
	return &Sink{dir: dir, files: make(map[string]*bytes.Buffer)}
}

// NewFile returns a fresh buffer for relPath (relative to the sink's
// root); writing into it does not touch disk until Flush.
func (s *Sink) NewFile(relPath string) *bytes.Buffer {
	if _, exists := s.files[relPath]; !exists {
		s.order = append(s.order, relPath)
	}
	buf := new(bytes.Buffer)
	s.files[relPath] = buf
	return buf
}

// Flush compares every buffered file against the bytes on disk and
// writes only those that are new or different, then removes any
// existing regular file under the sink's root that wasn't produced in
// this run's buffer set -- the generator's analogue of "remove files
// belonging to pruned types".
func (s *Sink) Flush() (Counts, error) {
	var counts Counts

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return counts, err
	}

	produced := make(map[string]bool, len(s.files))
	for _, relPath := range s.order {
		produced[relPath] = true
		fullPath := filepath.Join(s.dir, relPath)

		existing, err := os.ReadFile(fullPath)
		switch {
		case err != nil && !os.IsNotExist(err):
			return counts, err
		case err != nil:
			if err := writeFile(fullPath, s.files[relPath].Bytes()); err != nil {
				return counts, err
			}
			counts.Created++
		case bytes.Equal(existing, s.files[relPath].Bytes()):
			counts.Skipped++
		default:
			if err := writeFile(fullPath, s.files[relPath].Bytes()); err != nil {
				return counts, err
			}
			counts.Overwritten++
		}
	}

	deleted, err := s.removeStale(produced)
	if err != nil {
		return counts, err
	}
	counts.Deleted = deleted

	log.WithField("created", counts.Created).
		WithField("overwritten", counts.Overwritten).
		WithField("skipped", counts.Skipped).
		WithField("deleted", counts.Deleted).
		Info("flushed generated sources")
	return counts, nil
}

// removeStale deletes every regular file directly under the sink's
// root (generated output is always a flat directory of per-class and
// per-enum files) that this run did not (re)produce -- the on-disk
// remnant of a class or enum the prune sweep dropped.
func (s *Sink) removeStale(produced map[string]bool) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	var deleted int
	for _, e := range entries {
		if e.IsDir() || !produced[e.Name()] {
			if e.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// MergeFilesInto concatenates every buffered file into a single output
// file at path: header-extension files (".h") first, then every
// remaining file in alphabetical order. It exists for golden-file test
// harnesses that want to diff one combined expectation instead of a
// whole directory tree.
func (s *Sink) MergeFilesInto(path string) error {
	headers := make([]string, 0, len(s.order))
	rest := make([]string, 0, len(s.order))
	for _, relPath := range s.order {
		if strings.HasSuffix(relPath, ".h") {
			headers = append(headers, relPath)
		} else {
			rest = append(rest, relPath)
		}
	}
	sort.Strings(headers)
	sort.Strings(rest)

	var out bytes.Buffer
	for _, relPath := range append(headers, rest...) {
		out.WriteString("// === ")
		out.WriteString(relPath)
		out.WriteString(" ===\n")
		out.Write(s.files[relPath].Bytes())
	}
	return os.WriteFile(path, out.Bytes(), 0o644)
}
