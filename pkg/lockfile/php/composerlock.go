// Package php parses Composer lockfiles.
package php

import (
	"encoding/json"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// ComposerLock parses composer.lock. Runtime packages come before
// development packages.
type ComposerLock struct{}

func (ComposerLock) Type() string                  { return "composer.lock" }
func (ComposerLock) Ecosystem() lockfile.Ecosystem { return lockfile.Composer }
func (ComposerLock) Supports(name string) bool     { return name == "composer.lock" }

func (p ComposerLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var lock composerLock
	if err := json.Unmarshal(text, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}

	pkgs := make([]lockfile.Package, 0, len(lock.Packages)+len(lock.PackagesDev))
	for _, group := range [][]composerPackage{lock.Packages, lock.PackagesDev} {
		for _, pkg := range group {
			pkgs = append(pkgs, lockfile.Package{Name: pkg.Name, Version: pkg.Version, Ecosystem: lockfile.Composer})
		}
	}
	return pkgs, nil
}

type composerLock struct {
	Packages    []composerPackage `json:"packages"`
	PackagesDev []composerPackage `json:"packages-dev"`
}

type composerPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
