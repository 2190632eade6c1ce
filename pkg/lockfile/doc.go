// Package lockfile converts dependency manifests from many package ecosystems
// into one canonical list of declared packages.
//
// # Overview
//
// Every supported syntax is a [Parser]. A [Registry] holds parsers in a fixed
// priority order and dispatches a file to the first one whose Supports method
// claims its name:
//
//	reg := formats.Default()
//	pkgs, err := reg.Parse("src/App/App.csproj", data)
//
// Callers read the bytes; this package performs no I/O, keeps no shared
// state and never logs, so any number of files may be parsed concurrently.
//
// # Packages
//
// Each result is a [Package] with Name, Version and [Ecosystem]. Names and
// versions are copied from the document as written. Entries without a pinned
// version get an empty Version rather than failing the document. Results keep
// document order and are never deduplicated.
//
// # Errors
//
// Failures carry codes from [errs]:
//
//   - UNCLAIMED_FORMAT: no parser claims the file name
//   - MALFORMED_DOCUMENT: the document is structurally invalid; the cause is a
//     [Diagnostic] with the decoder's line and column where available
//   - ENCODING_ANOMALY: the bytes are not valid text; reported nested inside
//     MALFORMED_DOCUMENT
//
// Leading byte-order markers, including the visible "ï»¿" left behind by
// some editors, are stripped before parsing and never cause a failure.
//
// # Formats
//
// Parsers live in ecosystem subpackages:
//
//   - [nuget]: .csproj, packages.config, packages.lock.json
//   - [javascript]: package-lock.json, yarn.lock, pnpm-lock.yaml
//   - [python]: requirements.txt, Pipfile.lock, poetry.lock
//   - [ruby]: Gemfile.lock
//   - [java]: pom.xml, gradle.lockfile
//   - [rust]: Cargo.lock
//   - [golang]: go.mod
//   - [php]: composer.lock
//
// [formats] assembles them into the default registry.
//
// [errs]: github.com/matzehuels/lockfile/pkg/errors
// [nuget]: github.com/matzehuels/lockfile/pkg/lockfile/nuget
// [javascript]: github.com/matzehuels/lockfile/pkg/lockfile/javascript
// [python]: github.com/matzehuels/lockfile/pkg/lockfile/python
// [ruby]: github.com/matzehuels/lockfile/pkg/lockfile/ruby
// [java]: github.com/matzehuels/lockfile/pkg/lockfile/java
// [rust]: github.com/matzehuels/lockfile/pkg/lockfile/rust
// [golang]: github.com/matzehuels/lockfile/pkg/lockfile/golang
// [php]: github.com/matzehuels/lockfile/pkg/lockfile/php
// [formats]: github.com/matzehuels/lockfile/pkg/lockfile/formats
package lockfile
