package pathnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNFC(t *testing.T) {
	// "é" as base letter + combining acute accent
	decomposed := "caf\u0065\u0301"
	composed := "caf\u00e9"

	got, err := ToNFC(decomposed)
	require.NoError(t, err)
	assert.Equal(t, composed, got)

	// Already composed input is unchanged
	got, err = ToNFC(composed)
	require.NoError(t, err)
	assert.Equal(t, composed, got)
}

func TestToNFCInvalidUTF8(t *testing.T) {
	_, err := ToNFC("abc\xff\xfe")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestIsNFC(t *testing.T) {
	assert.True(t, IsNFC("plain-ascii/path.txt"))
	assert.True(t, IsNFC("caf\u00e9"))
	assert.False(t, IsNFC("caf\u0065\u0301"))
	assert.False(t, IsNFC("bad\xff"))
}

func TestToLower(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Linux-AMD64", "linux-amd64"},
		{"CAFÉ", "café"},
		{"ÀÉÎÕÜ", "àéîõü"},
		{"already-lower", "already-lower"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToLower(tt.in), "input %q", tt.in)
	}
}

func TestValidateArchivePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid relative", "variants/linux-amd64/lib.so", nil},
		{"valid single segment", "manifest.json", nil},
		{"empty", "", ErrEmptyPath},
		{"backslash", "variants\\linux\\lib.so", ErrBackslash},
		{"leading slash", "/etc/passwd", ErrAbsolutePath},
		{"drive letter backslash", "C:\\Windows\\system32", ErrBackslash},
		{"drive letter forward", "C:/Windows/system32", ErrAbsolutePath},
		{"dotdot segment", "variants/../../../etc/passwd", ErrParentSegment},
		{"dotdot only", "..", ErrParentSegment},
		{"not nfc", "caf\u0065\u0301/lib.so", ErrNotNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArchivePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateArchivePathRejectionOrder(t *testing.T) {
	// A path with several violations reports the earliest rule that fails.
	err := ValidateArchivePath("/a\\b/../c")
	assert.ErrorIs(t, err, ErrBackslash)

	err = ValidateArchivePath("/a/../b")
	assert.ErrorIs(t, err, ErrAbsolutePath)
}

func TestNormalizeSeparators(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a\\b\\c", "a/b/c"},
		{"a//b///c", "a/b/c"},
		{"a/b/", "a/b"},
		{"a/b///", "a/b"},
		{"/", "/"},
		{"", ""},
		{"mixed\\and/slashes", "mixed/and/slashes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSeparators(tt.in), "input %q", tt.in)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b/c", Join("a", "b", "c"))
	assert.Equal(t, "a/b", Join("a/", "b"))
	assert.Equal(t, "a/b", Join("a", "/b"))
	assert.Equal(t, "b", Join("", "b"))
	assert.Equal(t, "a", Join("a", ""))
	assert.Equal(t, "", Join())
}

func TestBaseDir(t *testing.T) {
	assert.Equal(t, "lib.so", Base("variants/linux/lib.so"))
	assert.Equal(t, "lib.so", Base("lib.so"))
	assert.Equal(t, "variants/linux", Dir("variants/linux/lib.so"))
	assert.Equal(t, "", Dir("lib.so"))
	assert.Equal(t, "/", Dir("/lib.so"))
}

func TestIsAbs(t *testing.T) {
	assert.True(t, IsAbs("/etc"))
	assert.True(t, IsAbs("C:\\Windows"))
	assert.True(t, IsAbs("c:/users"))
	assert.False(t, IsAbs("relative/path"))
	assert.False(t, IsAbs(""))
	assert.False(t, IsAbs("C:relative"))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("a/b/c"))
	assert.Equal(t, []string{"a", "b"}, Split("a/./b/"))
	assert.Equal(t, []string{"a", "..", "b"}, Split("a/../b"))
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("."))
}

func TestRootComponent(t *testing.T) {
	assert.Equal(t, "variants", RootComponent("variants/linux/lib.so"))
	assert.Equal(t, "manifest.json", RootComponent("manifest.json"))
	assert.Equal(t, "", RootComponent(""))
}
