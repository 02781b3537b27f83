package lgx

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/lgx/dgzip"
	"github.com/meigma/lgx/manifest"
	"github.com/meigma/lgx/ustar"
)

// ManifestName is the archive path of the package manifest.
const ManifestName = "manifest.json"

// VariantsDir is the archive directory holding all variant subtrees.
const VariantsDir = "variants"

// Entry is a single archive member. Alias of [ustar.Entry].
type Entry = ustar.Entry

// Package is the in-memory form of one .lgx file: a manifest plus the
// archive entries. It is exclusively owned by its holder; no internal
// locking is provided, and a load-mutate-save cycle is last-save-wins
// across processes.
//
// Every operation either completes or returns an error leaving the
// Package unchanged; there is no partially mutated state.
type Package struct {
	// Manifest is the package metadata. Fields may be edited directly
	// between Load and Save.
	Manifest *manifest.Manifest

	// entries holds everything except manifest.json, which is
	// regenerated from Manifest on every save.
	entries []Entry

	logger *slog.Logger
}

// Option configures a Package.
type Option func(*Package)

// WithLogger sets the logger used for operation tracing. Without it,
// logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(p *Package) { p.logger = l }
}

func (p *Package) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Entries returns the current archive entries, excluding manifest.json.
// The returned slice is shared; callers must not modify it.
func (p *Package) Entries() []Entry {
	return p.entries
}

// Load reads an .lgx file into memory.
//
// The file is gunzipped, tar-decoded, and its manifest.json located and
// parsed. A missing or unparsable manifest is a load error, not a
// warning. All other entries are retained verbatim.
func Load(path string, opts ...Option) (*Package, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}

	pkg, err := decode(raw)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(pkg)
	}

	pkg.log().Debug("package loaded", "path", path, "entries", len(pkg.entries), "variants", pkg.Variants())
	return pkg, nil
}

// decode builds a Package from raw .lgx bytes.
func decode(raw []byte) (*Package, error) {
	tarData, err := dgzip.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress package: %w", err)
	}

	entries, err := ustar.Read(tarData)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	pkg := &Package{}
	for _, e := range entries {
		if !e.Dir && trimSlashes(e.Path) == ManifestName {
			m, err := manifest.Parse(e.Data)
			if err != nil {
				return nil, fmt.Errorf("parse manifest: %w", err)
			}
			pkg.Manifest = m
			continue
		}
		pkg.entries = append(pkg.entries, e)
	}
	if pkg.Manifest == nil {
		return nil, ErrMissingManifest
	}

	return pkg, nil
}

// Digest returns the canonical content digest of the package: the
// sha256 of the exact bytes Save would write for the current state.
func (p *Package) Digest() (digest.Digest, error) {
	data, err := p.encode()
	if err != nil {
		return "", err
	}
	return digest.FromBytes(data), nil
}

// trimSlashes strips leading and trailing slashes for path comparison.
func trimSlashes(p string) string {
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	for len(p) > 0 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	return p
}
