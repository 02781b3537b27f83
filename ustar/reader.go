package ustar

import (
	"bytes"
	"fmt"
)

// readOctal parses a zero-padded, NUL- or space-terminated octal field.
// Leading spaces and NULs are skipped; parsing stops at the first
// non-octal byte.
func readOctal(field []byte) int64 {
	var value int64
	i := 0
	for i < len(field) && (field[i] == ' ' || field[i] == 0) {
		i++
	}
	for i < len(field) && field[i] >= '0' && field[i] <= '7' {
		value = value*8 + int64(field[i]-'0')
		i++
	}
	return value
}

// cstring returns the bytes of field up to the first NUL.
func cstring(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// parseHeader decodes the header block at offset. A zero block returns
// (Info{}, false, nil); callers handle end-of-archive counting.
func parseHeader(data []byte, offset int) (Info, bool, error) {
	if offset+blockSize > len(data) {
		return Info{}, false, fmt.Errorf("%w: incomplete header at offset %d", ErrTruncated, offset)
	}
	header := data[offset : offset+blockSize]

	if isZeroBlock(header) {
		return Info{}, false, nil
	}

	stored := uint32(readOctal(header[offChecksum : offChecksum+8]))
	if stored != checksum(header) {
		return Info{}, false, fmt.Errorf("%w at offset %d", ErrChecksum, offset)
	}

	info := Info{
		Mode:     readOctal(header[offMode : offMode+8]),
		UID:      readOctal(header[offUID : offUID+8]),
		GID:      readOctal(header[offGID : offGID+8]),
		Size:     readOctal(header[offSize : offSize+12]),
		ModTime:  readOctal(header[offMtime : offMtime+12]),
		Typeflag: header[offTypeflag],
	}

	// Reconstruct a split long path from prefix + name.
	name := cstring(header[offName : offName+nameSize])
	prefix := cstring(header[offPrefix : offPrefix+prefixSize])
	if prefix != "" {
		info.Path = prefix + "/" + name
	} else {
		info.Path = name
	}

	if info.IsSymlink() || info.IsHardlink() {
		info.LinkTarget = cstring(header[offLinkname : offLinkname+100])
	}

	return info, true, nil
}

// contentBlocks returns the number of bytes occupied by size content
// bytes after padding to the block boundary.
func contentBlocks(size int64) int {
	return int((size + blockSize - 1) / blockSize * blockSize)
}

// Read parses a complete archive into entries. Two consecutive zero
// blocks terminate the archive; an unparsable non-zero block is an
// error with its byte offset.
func Read(data []byte) ([]Entry, error) {
	var entries []Entry
	err := Iterate(data, func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadInfo traverses the archive collecting header metadata without
// loading file content. Useful for listing and validation.
func ReadInfo(data []byte) ([]Info, error) {
	var infos []Info
	offset, zeroBlocks := 0, 0

	for offset < len(data) {
		info, ok, err := parseHeader(data, offset)
		if err != nil {
			return nil, err
		}
		if !ok {
			zeroBlocks++
			offset += blockSize
			if zeroBlocks >= 2 {
				break
			}
			continue
		}
		zeroBlocks = 0
		infos = append(infos, info)

		offset += blockSize
		if info.IsRegular() && info.Size > 0 {
			offset += contentBlocks(info.Size)
		}
	}

	return infos, nil
}

// ReadFile scans for path and returns its content. Lookup is
// insensitive to leading and trailing slashes on either side.
// Returns ErrNotFound if no regular file matches.
func ReadFile(data []byte, path string) ([]byte, error) {
	search := trimSlashes(path)
	offset, zeroBlocks := 0, 0

	for offset < len(data) {
		info, ok, err := parseHeader(data, offset)
		if err != nil {
			return nil, err
		}
		if !ok {
			zeroBlocks++
			offset += blockSize
			if zeroBlocks >= 2 {
				break
			}
			continue
		}
		zeroBlocks = 0
		offset += blockSize

		if info.IsRegular() && trimSlashes(info.Path) == search {
			if info.Size == 0 {
				return []byte{}, nil
			}
			if offset+int(info.Size) > len(data) {
				return nil, fmt.Errorf("%w: incomplete content for %s", ErrTruncated, info.Path)
			}
			return data[offset : offset+int(info.Size)], nil
		}

		if info.IsRegular() && info.Size > 0 {
			offset += contentBlocks(info.Size)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Iterate streams entries to visit in archive order. Returning false
// from visit stops the traversal without error.
func Iterate(data []byte, visit func(Entry) bool) error {
	offset, zeroBlocks := 0, 0

	for offset < len(data) {
		info, ok, err := parseHeader(data, offset)
		if err != nil {
			return err
		}
		if !ok {
			zeroBlocks++
			offset += blockSize
			if zeroBlocks >= 2 {
				return nil
			}
			continue
		}
		zeroBlocks = 0
		offset += blockSize

		entry := Entry{Path: info.Path, Dir: info.IsDir()}
		if info.IsRegular() && info.Size > 0 {
			if offset+int(info.Size) > len(data) {
				return fmt.Errorf("%w: incomplete content for %s", ErrTruncated, info.Path)
			}
			entry.Data = data[offset : offset+int(info.Size)]
			offset += contentBlocks(info.Size)
		}

		if !visit(entry) {
			return nil
		}
	}

	return nil
}

// IsValid reports whether data begins with a verifiable tar header.
// The USTAR magic is informative only: old-format archives with a valid
// checksum also pass.
func IsValid(data []byte) bool {
	if len(data) < blockSize {
		return false
	}
	stored := uint32(readOctal(data[offChecksum : offChecksum+8]))
	return stored == checksum(data[:blockSize])
}
