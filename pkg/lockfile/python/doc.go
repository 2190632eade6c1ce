// Package python parses PyPI dependency manifests: requirements files,
// Pipfile.lock and poetry.lock.
package python
