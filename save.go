package lgx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meigma/lgx/dgzip"
	"github.com/meigma/lgx/pathnorm"
	"github.com/meigma/lgx/ustar"
)

// Save writes the package to path as a canonical .lgx file.
//
// The archive is fully assembled in memory first, then written via a
// temp file and rename, so a failed save never truncates or corrupts
// the destination.
func (p *Package) Save(path string) error {
	data, err := p.encode()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write package: %w", err)
	}

	p.log().Debug("package saved", "path", path, "bytes", len(data))
	return nil
}

// encode produces the canonical archive bytes for the current state:
// manifest.json regenerated from the Manifest, parent directories
// materialized for every stored path, a variants/ entry even when no
// variants exist, and no duplicate directory entries.
func (p *Package) encode() ([]byte, error) {
	manifestData, err := p.Manifest.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize manifest: %w", err)
	}

	w := ustar.NewWriter()
	w.AddFile(ManifestName, manifestData)

	addedDirs := map[string]bool{}
	addDir := func(dir string) {
		if dir != "" && !addedDirs[dir] {
			w.AddDirectory(dir)
			addedDirs[dir] = true
		}
	}

	for _, e := range p.entries {
		if trimSlashes(e.Path) == ManifestName {
			continue // regenerated above
		}

		// Intermediate directories are always materialized, even if
		// they were never explicitly added.
		for _, dir := range parentDirs(e.Path) {
			addDir(dir)
		}

		if e.Dir {
			addDir(trimSlashes(e.Path))
		} else {
			w.AddFile(e.Path, e.Data)
		}
	}

	addDir(VariantsDir)

	tarData, err := w.Finalize()
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}

	gzData, err := dgzip.Compress(tarData)
	if err != nil {
		return nil, fmt.Errorf("compress package: %w", err)
	}
	return gzData, nil
}

// parentDirs returns every ancestor directory of path, shallowest first.
func parentDirs(path string) []string {
	segs := pathnorm.Split(path)
	if len(segs) < 2 {
		return nil
	}
	dirs := make([]string, 0, len(segs)-1)
	current := ""
	for _, seg := range segs[:len(segs)-1] {
		current = pathnorm.Join(current, seg)
		dirs = append(dirs, current)
	}
	return dirs
}

// writeFileAtomic writes data to a temp file then renames to target,
// ensuring atomic replacement of the target file.
func writeFileAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".lgx-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
