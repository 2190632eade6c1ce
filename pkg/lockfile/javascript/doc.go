// Package javascript parses npm ecosystem lockfiles.
//
// # Formats
//
//   - [PackageLock]: package-lock.json and npm-shrinkwrap.json, lockfile
//     versions 1 (nested "dependencies") through 3 (flat "packages")
//   - [YarnLock]: yarn.lock, both the classic v1 syntax and the YAML syntax
//     written by Yarn 2+
//   - [PnpmLock]: pnpm-lock.yaml, lockfile versions 5 through 9
//
// All three contain the full resolved tree, so the result includes
// transitive packages.
package javascript
