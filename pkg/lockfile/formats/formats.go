// Package formats provides the complete, ordered list of lockfile parsers.
//
// This package exists to break import cycles: the ecosystem packages
// (nuget, python, ...) import pkg/lockfile, so pkg/lockfile cannot import
// them back. Consumers that need every format import this package instead.
//
// Usage:
//
//	import "github.com/matzehuels/lockfile/pkg/lockfile/formats"
//
//	reg := formats.Default()
//	pkgs, err := reg.Parse("web/Web.csproj", data)
package formats

import (
	"github.com/matzehuels/lockfile/pkg/lockfile"
	"github.com/matzehuels/lockfile/pkg/lockfile/golang"
	"github.com/matzehuels/lockfile/pkg/lockfile/java"
	"github.com/matzehuels/lockfile/pkg/lockfile/javascript"
	"github.com/matzehuels/lockfile/pkg/lockfile/nuget"
	"github.com/matzehuels/lockfile/pkg/lockfile/php"
	"github.com/matzehuels/lockfile/pkg/lockfile/python"
	"github.com/matzehuels/lockfile/pkg/lockfile/ruby"
	"github.com/matzehuels/lockfile/pkg/lockfile/rust"
)

// All lists every supported format in detection priority order.
var All = []lockfile.Parser{
	nuget.CSProj{},
	nuget.PackagesConfig{},
	nuget.PackagesLock{},
	javascript.PackageLock{},
	javascript.YarnLock{},
	javascript.PnpmLock{},
	python.Requirements{},
	python.PipfileLock{},
	python.PoetryLock{},
	ruby.GemfileLock{},
	java.POM{},
	java.GradleLockfile{},
	rust.CargoLock{},
	golang.GoMod{},
	php.ComposerLock{},
}

// Default returns a registry holding every format in All.
func Default() *lockfile.Registry {
	return lockfile.NewRegistry(All...)
}
