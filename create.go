package lgx

import (
	"github.com/meigma/lgx/manifest"
)

// Create builds a skeleton package and saves it to outputPath.
//
// The skeleton has the lowercased name, version "0.0.1", empty metadata
// fields, no main entries, and an empty variants/ directory. Callers
// who must not overwrite an existing file check before calling.
func Create(outputPath, name string, opts ...Option) (*Package, error) {
	pkg := &Package{
		Manifest: manifest.New(name),
		entries: []Entry{
			{Path: VariantsDir, Dir: true},
		},
	}
	for _, opt := range opts {
		opt(pkg)
	}

	if err := pkg.Save(outputPath); err != nil {
		return nil, err
	}

	pkg.log().Info("package created", "path", outputPath, "name", pkg.Manifest.Name)
	return pkg, nil
}
