// Package pkg holds the public libraries of the lockfile toolkit.
//
// # Overview
//
//  1. [lockfile] - Canonical Package type, Parser interface, Registry and
//     shared decoding helpers
//  2. [lockfile/formats] - Every supported format in detection order
//  3. [errors] - Coded errors (UNCLAIMED_FORMAT, MALFORMED_DOCUMENT, ...)
//  4. [observability] - Optional hooks for instrumenting scans
//  5. [buildinfo] - Version information injected at build time
//
// # Data flow
//
//	file name ──▶ Registry.Detect ──▶ Parser
//	file bytes ──▶ Parser.Parse ──▶ []Package
//
// # Quick Start
//
//	reg := formats.Default()
//	data, _ := os.ReadFile("package-lock.json")
//	pkgs, err := reg.Parse("package-lock.json", data)
//	if errs.Is(err, errs.ErrCodeMalformedDocument) {
//	    // report the Diagnostic position
//	}
//
// [lockfile]: github.com/matzehuels/lockfile/pkg/lockfile
// [lockfile/formats]: github.com/matzehuels/lockfile/pkg/lockfile/formats
// [errors]: github.com/matzehuels/lockfile/pkg/errors
// [observability]: github.com/matzehuels/lockfile/pkg/observability
// [buildinfo]: github.com/matzehuels/lockfile/pkg/buildinfo
package pkg
