// Package pathnorm provides Unicode-safe path normalization and the
// archive-path validation rules used throughout the lgx format.
//
// Every path stored in an archive is forward-slash separated, relative,
// and NFC-normalized. Validation is strict because archive paths are
// joined directly under extraction directories: a path that passes
// [ValidateArchivePath] cannot escape its base directory.
package pathnorm

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Validation failures returned by ValidateArchivePath. Callers can match
// with errors.Is to distinguish the rejection reason.
var (
	ErrEmptyPath     = errors.New("path is empty")
	ErrBackslash     = errors.New("path contains backslashes")
	ErrAbsolutePath  = errors.New("path is absolute")
	ErrParentSegment = errors.New("path contains '..' segment")
	ErrNotNFC        = errors.New("path is not NFC-normalized")
	ErrInvalidUTF8   = errors.New("invalid UTF-8")
)

// ToNFC returns s in Unicode Normalization Form C.
//
// Malformed UTF-8 is an error, never passed through: a string that
// cannot be normalized cannot be given one canonical byte representation.
func ToNFC(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("normalize %q: %w", s, ErrInvalidUTF8)
	}
	return norm.NFC.String(s), nil
}

// IsNFC reports whether s is already in Normalization Form C.
// Malformed UTF-8 is never considered normalized.
func IsNFC(s string) bool {
	return utf8.ValidString(s) && norm.NFC.IsNormalString(s)
}

// ToLower lowercases s using full Unicode case mapping, not an
// ASCII-only fold. Accented letters lowercase correctly ("É" → "é").
func ToLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ValidateArchivePath reports whether p is safe to store in an archive
// and to join under an extraction directory. Checks run in a fixed
// order and the first failure wins: empty path, backslashes, absolute
// path (leading slash or drive letter), ".." segments, non-NFC form.
func ValidateArchivePath(p string) error {
	if p == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(p, '\\') {
		return ErrBackslash
	}
	if IsAbs(p) {
		return ErrAbsolutePath
	}
	for _, seg := range Split(p) {
		if seg == ".." {
			return ErrParentSegment
		}
	}
	if !IsNFC(p) {
		return ErrNotNFC
	}
	return nil
}

// NormalizeSeparators converts backslashes to forward slashes, collapses
// separator runs, and strips any trailing slash (a bare "/" is kept).
func NormalizeSeparators(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	lastWasSep := false
	for _, c := range p {
		if c == '\\' || c == '/' {
			if !lastWasSep {
				b.WriteByte('/')
				lastWasSep = true
			}
			continue
		}
		b.WriteRune(c)
		lastWasSep = false
	}
	out := b.String()
	for len(out) > 1 && out[len(out)-1] == '/' {
		out = out[:len(out)-1]
	}
	return out
}

// Join joins path elements with single forward slashes. Empty elements
// are skipped; leading and trailing slashes on interior elements are
// not duplicated.
func Join(elems ...string) string {
	var out string
	for _, e := range elems {
		if e == "" {
			continue
		}
		if out == "" {
			out = e
			continue
		}
		if out[len(out)-1] != '/' {
			out += "/"
		}
		out += strings.TrimPrefix(e, "/")
	}
	return out
}

// Base returns the final element of p after separator normalization.
func Base(p string) string {
	n := NormalizeSeparators(p)
	if i := strings.LastIndexByte(n, '/'); i >= 0 {
		return n[i+1:]
	}
	return n
}

// Dir returns everything before the final element of p, "" when p has
// no separator, and "/" when the final separator is at the root.
func Dir(p string) string {
	n := NormalizeSeparators(p)
	i := strings.LastIndexByte(n, '/')
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	default:
		return n[:i]
	}
}

// IsAbs reports whether p is absolute: a leading slash, or a Windows
// drive-letter prefix like "C:\" or "C:/".
func IsAbs(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' {
		return true
	}
	if len(p) >= 3 && isASCIIAlpha(p[0]) && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return false
}

// Split returns the segments of p, dropping empty and "." segments.
func Split(p string) []string {
	n := NormalizeSeparators(p)
	parts := strings.Split(n, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}

// RootComponent returns the first segment of p, or "" when p has none.
func RootComponent(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
