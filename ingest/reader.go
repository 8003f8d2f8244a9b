package ingest

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// decompress wraps r with the matching decompressor when the stream
// starts with a zstd or lz4 frame magic, and passes plain streams
// through untouched.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		// Too short to carry a frame header; let the parser report it.
		return br, nil
	}
	switch {
	case bytes.Equal(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case bytes.Equal(magic, lz4Magic):
		return lz4.NewReader(br), nil
	default:
		return br, nil
	}
}
