package lgx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meigma/lgx/pathnorm"
)

// ExtractVariant writes every entry under variants/<variant>/ to
// outputDir/<variant>/, creating directories as needed. Entry paths are
// re-validated before any filesystem write so a hostile archive cannot
// escape outputDir.
func (p *Package) ExtractVariant(variant, outputDir string) error {
	name := pathnorm.ToLower(variant)
	if !p.HasVariant(name) {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, variant)
	}

	variantDir := filepath.Join(outputDir, name)
	prefix := pathnorm.Join(VariantsDir, name) + "/"

	for _, e := range p.entries {
		if !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		rel := trimSlashes(strings.TrimPrefix(e.Path, prefix))
		if rel == "" {
			continue
		}
		if err := pathnorm.ValidateArchivePath(rel); err != nil {
			return fmt.Errorf("unsafe entry path %q: %w", e.Path, err)
		}

		dest := filepath.Join(variantDir, filepath.FromSlash(rel))
		if e.Dir {
			if err := os.MkdirAll(dest, 0o750); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(dest, e.Data, 0o644); err != nil { //nolint:gosec // Archive file modes are fixed
			return fmt.Errorf("write file: %w", err)
		}
	}

	p.log().Info("variant extracted", "variant", name, "dir", variantDir)
	return nil
}

// ExtractAll extracts every variant into outputDir, stopping at the
// first failure. It returns the number of variants extracted.
func (p *Package) ExtractAll(outputDir string) (int, error) {
	variants := p.Variants()
	for i, variant := range variants {
		if err := p.ExtractVariant(variant, outputDir); err != nil {
			return i, err
		}
	}
	return len(variants), nil
}
