// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*

Cpacsgen generates a Go object model from the CPACS XML Schema: one
struct plus XML reader/writer per complex type, one scoped enumeration
per collapsed simple type, choice validators, UID-registry hooks and
tree manipulators.

Usage: cpacsgen [options] <configDir> <runtimeSrcDir> <outputDir> [<graphOutputPath>]

  configDir       XSD file(s), the seven config tables, and optional
                  one-level-deep subnamespace directories
  runtimeSrcDir   hand-written helper files copied verbatim into outputDir
  outputDir       where generated .go files are written
  graphOutputPath optional: GraphViz DOT dump of the resolved type graph

  -p string
        Go package name the generated files declare (default "cpacsobjects")
  -v    Shows cpacsgen version

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cpacsgen/cpacsgen/internal/emitter"
	"github.com/cpacsgen/cpacsgen/internal/filesink"
	"github.com/cpacsgen/cpacsgen/internal/schema"
	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// Version is set at build time via -ldflags.
var Version string

var (
	vers = flag.Bool("v", false, "Shows cpacsgen version")
	pkg  = flag.String("p", "cpacsobjects", "Go package name the generated files declare")
)

var log = logrus.WithField("stage", "cmd")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <configDir> <runtimeSrcDir> <outputDir> [<graphOutputPath>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *vers {
		fmt.Println(Version)
		return
	}

	args := flag.Args()
	if len(args) < 3 || len(args) > 4 {
		flag.Usage()
		os.Exit(1)
	}
	configDir, runtimeSrcDir, outputDir := args[0], args[1], args[2]
	var graphOutputPath string
	if len(args) == 4 {
		graphOutputPath = args[3]
	}

	if err := run(configDir, runtimeSrcDir, outputDir, graphOutputPath, *pkg); err != nil {
		log.WithError(err).Error("cpacsgen failed")
		os.Exit(1)
	}
}

func run(configDir, runtimeSrcDir, outputDir, graphOutputPath, pkgName string) error {
	tbls := tables.Load(configDir)

	st, err := schema.Parse(configDir)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	ts, err := typesystem.Build(st, tbls)
	if err != nil {
		return fmt.Errorf("typesystem: %w", err)
	}
	typesystem.CollapseEnums(ts)
	typesystem.DisambiguateEnumValues(ts)
	typesystem.Prune(ts, tbls.PruneList)

	if graphOutputPath != "" {
		if err := os.WriteFile(graphOutputPath, []byte(emitter.WriteGraph(ts)), 0o644); err != nil {
			return fmt.Errorf("graph output: %w", err)
		}
	}

	sink := filesink.New(outputDir)
	counts, err := emitter.Emit(ts, tbls, pkgName, sink)
	if err != nil {
		return fmt.Errorf("emitter: %w", err)
	}

	if err := copyRuntimeSources(runtimeSrcDir, outputDir); err != nil {
		return fmt.Errorf("runtime sources: %w", err)
	}

	flushCounts, err := sink.Flush()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	log.WithField("classes", counts.Classes).
		WithField("enums", counts.Enums).
		WithField("pruned", counts.Pruned).
		WithField("created", flushCounts.Created).
		WithField("overwritten", flushCounts.Overwritten).
		WithField("skipped", flushCounts.Skipped).
		WithField("deleted", flushCounts.Deleted).
		Info("generation complete")
	return nil
}

// copyRuntimeSources copies every regular file directly under
// runtimeSrcDir into outputDir verbatim: hand-written helper files the
// generated tree depends on but that this generator does not itself
// produce (out of scope per spec.md §1).
func copyRuntimeSources(runtimeSrcDir, outputDir string) error {
	entries, err := os.ReadDir(runtimeSrcDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(runtimeSrcDir, e.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outputDir, e.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
