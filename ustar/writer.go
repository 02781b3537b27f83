package ustar

import (
	"bytes"
	"fmt"
	"sort"
)

// Writer accumulates entries and encodes them as a canonical USTAR
// stream. The zero value is ready to use.
//
// Finalize output depends only on the set of entries, never on the
// order they were added.
type Writer struct {
	entries []Entry
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddFile adds a regular file entry.
func (w *Writer) AddFile(path string, data []byte) {
	w.entries = append(w.entries, Entry{Path: path, Data: data})
}

// AddDirectory adds a directory entry.
func (w *Writer) AddDirectory(path string) {
	w.entries = append(w.entries, Entry{Path: path, Dir: true})
}

// AddEntry adds a prebuilt entry.
func (w *Writer) AddEntry(e Entry) {
	w.entries = append(w.entries, e)
}

// Clear removes all accumulated entries.
func (w *Writer) Clear() {
	w.entries = w.entries[:0]
}

// Len returns the number of accumulated entries.
func (w *Writer) Len() int {
	return len(w.entries)
}

// Finalize encodes all entries and returns the archive bytes.
//
// Entries are sorted ascending by their tar-normalized path (bytewise
// over UTF-8, directories compared with their trailing slash), each
// emitted as a 512-byte header plus zero-padded content blocks, then
// two zero blocks terminate the archive.
func (w *Writer) Finalize() ([]byte, error) {
	sorted := make([]Entry, len(w.entries))
	copy(sorted, w.entries)
	sort.Slice(sorted, func(i, j int) bool {
		return tarPath(sorted[i].Path, sorted[i].Dir) < tarPath(sorted[j].Path, sorted[j].Dir)
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		header, err := makeHeader(e)
		if err != nil {
			return nil, err
		}
		buf.Write(header)

		if !e.Dir && len(e.Data) > 0 {
			buf.Write(e.Data)
			if pad := (blockSize - len(e.Data)%blockSize) % blockSize; pad > 0 {
				buf.Write(make([]byte, pad))
			}
		}
	}

	// End-of-archive marker
	buf.Write(make([]byte, 2*blockSize))
	return buf.Bytes(), nil
}

// splitPath splits a tar path into USTAR name (≤100 bytes) and prefix
// (≤155 bytes) at a slash boundary. Returns false if no valid split
// exists; long paths are an error, never silently truncated.
func splitPath(path string) (name, prefix string, ok bool) {
	if len(path) <= nameSize {
		return path, "", true
	}

	// Prefer the earliest slash that keeps the name within bounds.
	for i := len(path) - nameSize; i < len(path) && i <= prefixSize; i++ {
		if path[i] == '/' {
			name, prefix = path[i+1:], path[:i]
			if len(prefix) <= prefixSize && len(name) <= nameSize {
				return name, prefix, true
			}
		}
	}

	// Fall back to the latest slash within the prefix field.
	for i := min(prefixSize, len(path)-1); i > 0; i-- {
		if path[i] == '/' {
			name, prefix = path[i+1:], path[:i]
			if len(name) <= nameSize {
				return name, prefix, true
			}
		}
	}

	return "", "", false
}

// writeOctal writes value as zero-padded ASCII octal with a trailing NUL.
func writeOctal(dst []byte, value int64) {
	s := fmt.Sprintf("%0*o", len(dst)-1, value)
	copy(dst, s)
	dst[len(dst)-1] = 0
}

func makeHeader(e Entry) ([]byte, error) {
	p := tarPath(e.Path, e.Dir)

	name, prefix, ok := splitPath(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathTooLong, p)
	}

	header := make([]byte, blockSize)
	copy(header[offName:offName+nameSize], name)

	mode := int64(fileMode)
	if e.Dir {
		mode = dirMode
	}
	writeOctal(header[offMode:offMode+8], mode)
	writeOctal(header[offUID:offUID+8], 0)
	writeOctal(header[offGID:offGID+8], 0)

	var size int64
	if !e.Dir {
		size = int64(len(e.Data))
	}
	writeOctal(header[offSize:offSize+12], size)
	writeOctal(header[offMtime:offMtime+12], 0)

	if e.Dir {
		header[offTypeflag] = TypeDir
	} else {
		header[offTypeflag] = TypeRegular
	}

	copy(header[offMagic:], "ustar\x00")
	header[offVersion] = '0'
	header[offVersion+1] = '0'

	// uname/gname left empty for determinism
	writeOctal(header[offDevmajor:offDevmajor+8], 0)
	writeOctal(header[offDevminor:offDevminor+8], 0)

	copy(header[offPrefix:offPrefix+prefixSize], prefix)

	// Checksum: six octal digits, NUL, space
	sum := checksum(header)
	copy(header[offChecksum:], fmt.Sprintf("%06o", sum))
	header[offChecksum+6] = 0
	header[offChecksum+7] = ' '

	return header, nil
}
