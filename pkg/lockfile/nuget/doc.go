// Package nuget parses .NET dependency manifests.
//
// # Formats
//
//   - [CSProj]: MSBuild project files (.csproj, .fsproj, .vbproj) with
//     PackageReference items
//   - [PackagesConfig]: legacy packages.config files
//   - [PackagesLock]: packages.lock.json written by NuGet restore with
//     RestorePackagesWithLockFile enabled
//
// Project files only declare direct references; packages.lock.json also
// lists transitive packages per target framework.
package nuget
