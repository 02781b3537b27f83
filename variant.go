package lgx

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meigma/lgx/pathnorm"
)

// AddVariant stages the file or directory at sourcePath as the named
// variant and records mainPath as its entry point.
//
// The variant's identity is its lowercased name. When sourcePath is a
// directory its contents land directly under variants/<name>/ and
// mainPath is mandatory; for a single file mainPath defaults to the
// file's base name. Any existing content under variants/<name>/ is
// removed first: adding an existing variant replaces it, never merges.
//
// Every staged archive path is NFC-normalized; a path that cannot be
// normalized aborts the whole operation with the package unchanged.
func (p *Package) AddVariant(variant, sourcePath, mainPath string) error {
	name := pathnorm.ToLower(variant)
	if name == "" {
		return ErrEmptyVariantName
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("source path: %w", err)
	}
	isDir := info.IsDir()

	resolvedMain := mainPath
	if isDir {
		if resolvedMain == "" {
			return ErrMainRequired
		}
	} else if resolvedMain == "" {
		resolvedMain = filepath.Base(sourcePath)
	}
	if err := pathnorm.ValidateArchivePath(resolvedMain); err != nil {
		return fmt.Errorf("invalid main path: %w", err)
	}

	// Stage into a separate slice so a mid-walk failure leaves the
	// package untouched.
	staged, err := stageEntries(name, sourcePath, isDir)
	if err != nil {
		return err
	}

	replaced := p.HasVariant(name)
	p.removeVariantEntries(name)
	p.entries = append(p.entries, staged...)
	p.Manifest.SetMain(name, resolvedMain)

	p.log().Info("variant added", "variant", name, "entries", len(staged), "replaced", replaced)
	return nil
}

// stageEntries builds the archive entries for a variant from the
// filesystem, NFC-normalizing every resulting path.
func stageEntries(name, sourcePath string, isDir bool) ([]Entry, error) {
	base, err := pathnorm.ToNFC(pathnorm.Join(VariantsDir, name))
	if err != nil {
		return nil, err
	}

	staged := []Entry{{Path: base, Dir: true}}

	if !isDir {
		data, err := os.ReadFile(sourcePath) //nolint:gosec // User-provided path is intentional
		if err != nil {
			return nil, fmt.Errorf("read source file: %w", err)
		}
		path, err := pathnorm.ToNFC(pathnorm.Join(base, filepath.Base(sourcePath)))
		if err != nil {
			return nil, err
		}
		return append(staged, Entry{Path: path, Data: data}), nil
	}

	root, err := os.OpenRoot(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open source directory: %w", err)
	}
	defer root.Close()

	err = fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == "." {
			return nil
		}

		archivePath, err := pathnorm.ToNFC(pathnorm.Join(base, path))
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			staged = append(staged, Entry{Path: archivePath, Dir: true})
		case d.Type().IsRegular():
			f, err := root.Open(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			staged = append(staged, Entry{Path: archivePath, Data: data})
		default:
			// Symlinks and special files are never packaged.
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return staged, nil
}

// RemoveVariant deletes a variant's subtree and its main entry.
// Removing a variant that does not exist is an error.
func (p *Package) RemoveVariant(variant string) error {
	name := pathnorm.ToLower(variant)
	if name == "" {
		return ErrEmptyVariantName
	}
	if !p.HasVariant(name) {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, variant)
	}

	p.removeVariantEntries(name)
	p.Manifest.RemoveMain(name)

	p.log().Info("variant removed", "variant", name)
	return nil
}

// HasVariant reports whether the named variant has any entries,
// matching case-insensitively.
func (p *Package) HasVariant(variant string) bool {
	name := pathnorm.ToLower(variant)
	exact := pathnorm.Join(VariantsDir, name)
	prefix := exact + "/"

	for _, e := range p.entries {
		path := trimSlashes(e.Path)
		if path == exact || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Variants returns the sorted lowercase names of all variants present
// in the entry set.
func (p *Package) Variants() []string {
	seen := map[string]bool{}
	for _, e := range p.entries {
		segs := pathnorm.Split(e.Path)
		if len(segs) >= 2 && segs[0] == VariantsDir {
			seen[pathnorm.ToLower(segs[1])] = true
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// WouldMainChange reports whether setting candidateMain as the variant's
// entry point would change an existing main entry. A variant with no
// main entry reports false.
func (p *Package) WouldMainChange(variant, candidateMain string) bool {
	current, ok := p.Manifest.GetMain(variant)
	return ok && current != candidateMain
}

// removeVariantEntries drops every entry under variants/<name>/ plus
// the variant directory itself.
func (p *Package) removeVariantEntries(name string) {
	exact := pathnorm.Join(VariantsDir, pathnorm.ToLower(name))
	prefix := exact + "/"

	kept := p.entries[:0]
	for _, e := range p.entries {
		path := trimSlashes(e.Path)
		if path == exact || strings.HasPrefix(path, prefix) {
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
}
