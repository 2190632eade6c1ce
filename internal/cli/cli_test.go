package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Cargo.lock", "version = 3\n\n[[package]]\nname = \"serde\"\nversion = \"1.0.193\"\n")

	out, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Cargo.lock")
	assert.Contains(t, out, "serde")
	assert.Contains(t, out, "1.0.193")
}

func TestParseCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "go.mod", "module m\n\nrequire github.com/spf13/cobra v1.8.0\n")
	bad := writeFile(t, dir, "composer.lock", "{")

	out, err := execute(t, "parse", "-o", "json", good, bad)
	require.Error(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "go.mod", reports[0].Type)
	assert.Equal(t, []lockfile.Package{{Name: "github.com/spf13/cobra", Version: "v1.8.0", Ecosystem: lockfile.Golang}}, reports[0].Packages)
	assert.Empty(t, reports[0].Error)

	assert.Equal(t, errs.ErrCodeMalformedDocument, reports[1].Code)
	assert.NotEmpty(t, reports[1].Error)
	assert.Empty(t, reports[1].Packages)
}

func TestParseCommand_ForcedType(t *testing.T) {
	path := writeFile(t, t.TempDir(), "prod.pip", "flask==3.0.0\n")

	_, err := execute(t, "parse", path)
	require.Error(t, err, "unclaimed name should fail without --type")

	out, err := execute(t, "parse", "--type", "requirements.txt", "-o", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "flask"`)

	_, err = execute(t, "parse", "--type", "setup.py", path)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
}

func TestParseCommand_BadOutput(t *testing.T) {
	_, err := execute(t, "parse", "-o", "yaml", "go.mod")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "api/go.mod", "module api\n\nrequire golang.org/x/sync v0.6.0\n")
	writeFile(t, dir, "web/package-lock.json", `{"lockfileVersion": 3, "packages": {"": {}, "node_modules/zod": {"version": "3.22.4"}}}`)
	writeFile(t, dir, "skipme/Gemfile.lock", "GEM\n  specs:\n    rack (3.0.8)\n")

	out, err := execute(t, "scan", dir, "-o", "json", "--workers", "2", "--skip", "skipme")
	require.NoError(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "api/go.mod", reports[0].Path)
	assert.Equal(t, "web/package-lock.json", reports[1].Path)
	assert.Equal(t, lockfile.Npm, reports[1].Ecosystem)
	assert.Len(t, reports[1].Packages, 1)
}

func TestScanCommand_TextSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "poetry.lock", "[[package]]\nname = \"certifi\"\nversion = \"2023.11.17\"\n")
	writeFile(t, dir, "Pipfile.lock", "not json")

	out, err := execute(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "certifi")
	assert.Contains(t, out, "1 of 2 files could not be parsed")
	assert.Contains(t, out, "1 packages in 1 files")
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats", "-o", "json")
	require.NoError(t, err)

	var infos []formatInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 15)
	assert.Equal(t, "csproj", infos[0].Type)
	assert.Equal(t, "composer.lock", infos[14].Type)

	out, err = execute(t, "formats", "--ecosystem", "maven")
	require.NoError(t, err)
	assert.Contains(t, out, "pom.xml")
	assert.Contains(t, out, "gradle.lockfile")
	assert.NotContains(t, out, "yarn.lock")

	_, err = execute(t, "formats", "--ecosystem", "bower")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "lockfile")
		})
	}

	_, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestFlagCompletion(t *testing.T) {
	out, err := execute(t, "__complete", "parse", "--type", "")
	require.NoError(t, err)
	assert.Contains(t, out, "csproj\n")
	assert.Contains(t, out, "composer.lock\n")

	out, err = execute(t, "__complete", "formats", "--ecosystem", "")
	require.NoError(t, err)
	assert.Contains(t, out, "nuget\n")
	assert.Contains(t, out, "golang\n")

	out, err = execute(t, "__complete", "scan", "--output", "")
	require.NoError(t, err)
	assert.Contains(t, out, "json\n")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "lockfile version: ")
	assert.Contains(t, out, "commit: ")
}
