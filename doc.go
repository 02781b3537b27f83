// Package lgx implements the lgx package format: a deterministic,
// content-addressable archive for distributing multi-variant software
// artifacts.
//
// An .lgx file is gzip(tar(entries)) with every non-content byte fixed:
// entries sorted by path, zeroed tar metadata, and a zero-metadata gzip
// envelope, so the same package contents always produce the same file
// bytes. Each package carries a manifest.json and any number of
// variants, named platform- or target-specific subtrees under
// variants/. Re-adding a variant replaces its previous contents; it
// never merges.
//
// # Quick start
//
// Create a package, add a variant, and verify it:
//
//	pkg, err := lgx.Create("mylib.lgx", "mylib")
//	if err != nil {
//	    return err
//	}
//	if err := pkg.AddVariant("linux-amd64", "./build/libfoo.so", ""); err != nil {
//	    return err
//	}
//	if err := pkg.Save("mylib.lgx"); err != nil {
//	    return err
//	}
//	result := lgx.Verify("mylib.lgx")
//	if !result.Valid {
//	    // result.Errors lists every problem found
//	}
//
// The lower-level codecs live in the [ustar], [dgzip], [manifest], and
// [pathnorm] subpackages.
package lgx
