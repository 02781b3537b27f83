package lgx

import "fmt"

// Sign is reserved for future signing support; the manifest.cose root
// entry is the planned home for the signature. It always fails with
// ErrNotImplemented.
func Sign(path string) error {
	return fmt.Errorf("sign %s: %w", path, ErrNotImplemented)
}
