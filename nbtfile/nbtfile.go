// Package nbtfile supplies the byte buffers the nbt codec consumes: it strips
// gzip or zlib framing from files on read and applies it on write.
package nbtfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies the framing around an NBT payload.
type Compression uint8

const (
	None Compression = iota
	Gzip
	Zlib
)

// String returns the flag name of c.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a name produced by Compression.String. "auto" is
// not accepted here; callers handle detection themselves.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	default:
		return None, fmt.Errorf("unknown compression: %q", name)
	}
}

// MaxUncompressed bounds how much a compressed input may expand to.
const MaxUncompressed = 256 << 20

// Detect inspects the leading bytes of b. Gzip starts with 1f 8b; zlib starts
// with a CMF byte of deflate/32K window (0x78) whose header checksum holds.
// Anything else, including a bare NBT root tag 0x0a, is None.
func Detect(b []byte) Compression {
	if len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b {
		return Gzip
	}
	if len(b) >= 2 && b[0] == 0x78 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0 {
		return Zlib
	}
	return None
}

// Unwrap removes whatever compression Detect finds and returns the raw
// payload together with the detected compression.
func Unwrap(b []byte) ([]byte, Compression, error) {
	c := Detect(b)
	out, err := Decompress(b, c)
	return out, c, err
}

// Decompress removes compression c from b. For None it returns b unchanged.
func Decompress(b []byte, c Compression) ([]byte, error) {
	var (
		r   io.ReadCloser
		err error
	)
	switch c {
	case None:
		return b, nil
	case Gzip:
		r, err = gzip.NewReader(bytes.NewReader(b))
	case Zlib:
		r, err = zlib.NewReader(bytes.NewReader(b))
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
	if err != nil {
		return nil, fmt.Errorf("%v decompress: %w", c, err)
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, MaxUncompressed+1))
	if err != nil {
		return nil, fmt.Errorf("%v decompress: %w", c, err)
	}
	if len(out) > MaxUncompressed {
		return nil, fmt.Errorf("%v decompress: payload exceeds %d bytes", c, MaxUncompressed)
	}
	return out, nil
}

// Wrap applies compression c to payload.
func Wrap(payload []byte, c Compression) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
	)
	switch c {
	case None:
		return payload, nil
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zlib:
		w = zlib.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, fmt.Errorf("%v compress: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%v compress: %w", c, err)
	}
	return buf.Bytes(), nil
}

// ReadFile reads path and unwraps any compression.
func ReadFile(path string) ([]byte, Compression, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, None, err
	}
	out, c, err := Unwrap(raw)
	if err != nil {
		return nil, c, fmt.Errorf("%s: %w", path, err)
	}
	return out, c, nil
}

// WriteFile compresses payload with c and writes it to path.
func WriteFile(path string, payload []byte, c Compression) error {
	data, err := Wrap(payload, c)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
