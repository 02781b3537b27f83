package lgx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/lgx/dgzip"
	"github.com/meigma/lgx/ustar"
)

func TestExtractVariant(t *testing.T) {
	path := pkgPath(t)
	pkg, err := Create(path, "pkg")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "run"), []byte("#!/bin/sh"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# hi"), 0o644))
	require.NoError(t, pkg.AddVariant("linux-amd64", dir, "bin/run"))

	out := t.TempDir()
	require.NoError(t, pkg.ExtractVariant("LINUX-amd64", out))

	got, err := os.ReadFile(filepath.Join(out, "linux-amd64", "bin", "run"))
	require.NoError(t, err)
	assert.Equal(t, []byte("#!/bin/sh"), got)

	got, err = os.ReadFile(filepath.Join(out, "linux-amd64", "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, []byte("# hi"), got)
}

func TestExtractVariantNotFound(t *testing.T) {
	path := pkgPath(t)
	pkg, err := Create(path, "pkg")
	require.NoError(t, err)

	err = pkg.ExtractVariant("ghost", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestExtractAll(t *testing.T) {
	path := pkgPath(t)
	pkg, err := Create(path, "pkg")
	require.NoError(t, err)
	require.NoError(t, pkg.AddVariant("linux-amd64", writeSourceFile(t, "a.so", []byte("a")), ""))
	require.NoError(t, pkg.AddVariant("darwin-arm64", writeSourceFile(t, "b.dylib", []byte("b")), ""))

	out := t.TempDir()
	n, err := pkg.ExtractAll(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.FileExists(t, filepath.Join(out, "linux-amd64", "a.so"))
	assert.FileExists(t, filepath.Join(out, "darwin-arm64", "b.dylib"))
}

func TestExtractRefusesUnsafePaths(t *testing.T) {
	// Hand-build an archive whose variant entry path traverses upward.
	w := ustar.NewWriter()
	w.AddFile("manifest.json", minimalManifest())
	w.AddDirectory("variants")
	w.AddDirectory("variants/evil")
	w.AddFile("variants/evil/../../../tmp/pwned", []byte("pwned"))
	tarData, err := w.Finalize()
	require.NoError(t, err)
	gz, err := dgzip.Compress(tarData)
	require.NoError(t, err)
	path := writeSourceFile(t, "evil.lgx", gz)

	pkg, err := Load(path)
	require.NoError(t, err)

	out := t.TempDir()
	err = pkg.ExtractVariant("evil", out)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(out, "..", "..", "tmp", "pwned"))
}

func TestEndToEnd(t *testing.T) {
	// create → add directory variant → save → verify → extract, with
	// extracted bytes identical to the staged sources.
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o750))
	index := []byte("export const main = () => {}")
	lib := []byte("export const helper = () => {}")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "index.js"), index, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "lib.js"), lib, 0o644))

	path := pkgPath(t)
	pkg, err := Create(path, "x")
	require.NoError(t, err)
	require.NoError(t, pkg.AddVariant("web", dir, "dist/index.js"))
	require.NoError(t, pkg.Save(path))

	result := Verify(path)
	require.True(t, result.Valid, "errors: %v", result.Errors)
	require.Empty(t, result.Errors)

	loaded, err := Load(path)
	require.NoError(t, err)
	out := t.TempDir()
	require.NoError(t, loaded.ExtractVariant("web", out))

	got, err := os.ReadFile(filepath.Join(out, "web", "dist", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, index, got)
	got, err = os.ReadFile(filepath.Join(out, "web", "dist", "lib.js"))
	require.NoError(t, err)
	assert.Equal(t, lib, got)
}
