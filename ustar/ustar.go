// Package ustar implements a deterministic USTAR encoder and decoder.
//
// The encoder emits a canonical byte stream: entries sorted by path,
// fixed zero uid/gid/mtime, fixed modes, and no extension headers. For
// any set of entries the output is byte-identical regardless of
// insertion order, clock, or host identity. The decoder parses the same
// subset plus enough of classic tar (hardlinks, symlinks, old-format
// headers) to let higher layers reject unsupported content with a
// specific reason instead of a parse failure.
package ustar

import "errors"

const (
	blockSize  = 512
	nameSize   = 100
	prefixSize = 155

	fileMode = 0o644
	dirMode  = 0o755
)

// Header field offsets within a 512-byte block.
const (
	offName     = 0
	offMode     = 100
	offUID      = 108
	offGID      = 116
	offSize     = 124
	offMtime    = 136
	offChecksum = 148
	offTypeflag = 156
	offLinkname = 157
	offMagic    = 257
	offVersion  = 263
	offDevmajor = 329
	offDevminor = 337
	offPrefix   = 345
)

// Typeflag values recognized by the decoder.
const (
	TypeRegular  = '0'
	TypeHardlink = '1'
	TypeSymlink  = '2'
	TypeDir      = '5'
)

var (
	// ErrPathTooLong is returned when a path cannot be split into the
	// USTAR name and prefix fields at a slash boundary.
	ErrPathTooLong = errors.New("path too long for ustar format")

	// ErrChecksum is returned when a header checksum does not verify.
	ErrChecksum = errors.New("invalid header checksum")

	// ErrTruncated is returned when the stream ends inside a header or
	// file content.
	ErrTruncated = errors.New("truncated archive")

	// ErrNotFound is returned by ReadFile when no entry matches.
	ErrNotFound = errors.New("file not found in archive")
)

// Entry is a single archive member: a file with content or a directory.
type Entry struct {
	Path string
	Data []byte
	Dir  bool
}

// Info is the decoded metadata of one header block, without content.
type Info struct {
	Path       string
	Mode       int64
	UID        int64
	GID        int64
	Size       int64
	ModTime    int64
	Typeflag   byte
	LinkTarget string
}

// IsDir reports whether the entry is a directory.
func (i Info) IsDir() bool { return i.Typeflag == TypeDir }

// IsRegular reports whether the entry is a regular file. The NUL
// typeflag of pre-POSIX archives counts as regular.
func (i Info) IsRegular() bool { return i.Typeflag == TypeRegular || i.Typeflag == 0 }

// IsSymlink reports whether the entry is a symbolic link.
func (i Info) IsSymlink() bool { return i.Typeflag == TypeSymlink }

// IsHardlink reports whether the entry is a hard link.
func (i Info) IsHardlink() bool { return i.Typeflag == TypeHardlink }

// tarPath returns the path as stored in a header: no leading slashes,
// exactly one trailing slash for directories.
func tarPath(path string, dir bool) string {
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if dir && path != "" && path[len(path)-1] != '/' {
		path += "/"
	}
	return path
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

func isZeroBlock(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// checksum sums all header bytes with the checksum field itself treated
// as eight ASCII spaces.
func checksum(header []byte) uint32 {
	var sum uint32
	for i, c := range header[:blockSize] {
		if i >= offChecksum && i < offChecksum+8 {
			sum += ' '
		} else {
			sum += uint32(c)
		}
	}
	return sum
}
