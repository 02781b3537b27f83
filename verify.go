package lgx

import (
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/lgx/dgzip"
	"github.com/meigma/lgx/pathnorm"
	"github.com/meigma/lgx/ustar"
)

// allowedRootEntries is the allow-list of first path segments permitted
// in a package archive.
var allowedRootEntries = map[string]bool{
	ManifestName:    true,
	"manifest.cose": true, // reserved for future signing support
	VariantsDir:     true,
	"docs":          true,
	"licenses":      true,
}

// VerifyResult reports every problem found in a package in one pass.
type VerifyResult struct {
	Valid    bool
	Errors   []string
	Warnings []string

	// Digest is the sha256 of the file bytes, set whenever the file
	// could be read.
	Digest digest.Digest
}

func (r *VerifyResult) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Verify loads and validates the package at path.
//
// Validation errors are collected, not short-circuited: the result
// lists every field violation, forbidden root entry, unsafe path,
// forbidden entry type, completeness mismatch, and dangling main
// entry found. A package that cannot be loaded at all is invalid with
// the load error as its only entry.
func Verify(path string) VerifyResult {
	result := VerifyResult{Valid: true}

	raw, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		result.addError("read package: %v", err)
		return result
	}
	result.Digest = digest.FromBytes(raw)

	tarData, err := dgzip.Decompress(raw)
	if err != nil {
		result.addError("decompress package: %v", err)
		return result
	}

	// Header metadata drives the forbidden-type check; the decoder
	// stores links and specials so they can be rejected here with a
	// reason instead of failing the parse.
	infos, err := ustar.ReadInfo(tarData)
	if err != nil {
		result.addError("read archive: %v", err)
		return result
	}
	for _, info := range infos {
		if !info.IsRegular() && !info.IsDir() {
			result.addError("forbidden entry type %q for %s", info.Typeflag, info.Path)
		}
	}

	pkg, err := decode(raw)
	if err != nil {
		result.addError("%v", err)
		return result
	}

	for _, err := range pkg.Manifest.Validate() {
		result.addError("manifest: %v", err)
	}

	hasVariantsDir := false
	var foundVariants []string
	seenVariants := map[string]bool{}

	for _, e := range pkg.entries {
		root := pathnorm.RootComponent(e.Path)

		if !allowedRootEntries[root] {
			result.addError("forbidden root entry: %s", root)
		}

		if root == VariantsDir {
			hasVariantsDir = true

			segs := pathnorm.Split(e.Path)
			if len(segs) >= 2 {
				name := pathnorm.ToLower(segs[1])
				if !seenVariants[name] {
					seenVariants[name] = true
					foundVariants = append(foundVariants, name)
				}
			}
			// Only variant directories may sit directly under variants/.
			if len(segs) == 2 && !e.Dir {
				result.addError("file directly under variants/: %s", e.Path)
			}
		}

		if err := pathnorm.ValidateArchivePath(trimSlashes(e.Path)); err != nil {
			result.addError("invalid path %q: %v", e.Path, err)
		}
	}

	// decode already required manifest.json; only variants/ can be absent.
	if !hasVariantsDir {
		result.addError("missing %s/ directory", VariantsDir)
	}

	for _, err := range pkg.Manifest.ValidateCompleteness(foundVariants) {
		result.addError("%v", err)
	}

	// Every main entry must resolve to an existing regular file.
	for _, variant := range pkg.Manifest.Variants() {
		mainPath, _ := pkg.Manifest.GetMain(variant)
		if !pkg.hasFile(pathnorm.Join(VariantsDir, variant, mainPath)) {
			result.addError("main[%s] points to non-existent file: %s", variant, mainPath)
		}
	}

	return result
}

// hasFile reports whether a non-directory entry exists at path.
func (p *Package) hasFile(path string) bool {
	want := trimSlashes(path)
	for _, e := range p.entries {
		if !e.Dir && trimSlashes(e.Path) == want {
			return true
		}
	}
	return false
}
