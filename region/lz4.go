package region

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
	"github.com/starfederation/nbt-go/nbtfile"
)

// lz4-java LZ4BlockOutputStream framing: each block is a 21-byte header
// followed by its payload, and the stream ends with an empty raw block.
const (
	lz4Magic        = "LZ4Block"
	lz4HeaderSize   = len(lz4Magic) + 13
	lz4MethodRaw    = 0x10
	lz4MethodLZ4    = 0x20
	lz4LevelBase    = 10
	lz4BlockSize    = 64 << 10
	lz4MaxBlockSize = 32 << 20
)

var errLZ4Stream = errors.New("lz4 block stream")

// decodeLZ4Stream decompresses every block up to the end marker and verifies
// each block checksum.
func decodeLZ4Stream(src []byte) ([]byte, error) {
	var out []byte
	for off := 0; ; {
		if len(src)-off < lz4HeaderSize {
			return nil, fmt.Errorf("%w: truncated header at offset %d", errLZ4Stream, off)
		}
		h := src[off : off+lz4HeaderSize]
		if string(h[:len(lz4Magic)]) != lz4Magic {
			return nil, fmt.Errorf("%w: bad magic at offset %d", errLZ4Stream, off)
		}
		token := h[8]
		method := token & 0xF0
		blockSize := 1 << (lz4LevelBase + int(token&0x0F))
		compressedLen := int(int32(binary.LittleEndian.Uint32(h[9:])))
		originalLen := int(int32(binary.LittleEndian.Uint32(h[13:])))
		checksum := binary.LittleEndian.Uint32(h[17:])
		off += lz4HeaderSize

		if method != lz4MethodRaw && method != lz4MethodLZ4 {
			return nil, fmt.Errorf("%w: unknown method %#x", errLZ4Stream, method)
		}
		if originalLen < 0 || compressedLen < 0 || originalLen > blockSize || originalLen > lz4MaxBlockSize ||
			(method == lz4MethodRaw && compressedLen != originalLen) ||
			(originalLen == 0 && compressedLen != 0) || (originalLen != 0 && compressedLen == 0) {
			return nil, fmt.Errorf("%w: invalid block lengths %d/%d", errLZ4Stream, compressedLen, originalLen)
		}
		if originalLen == 0 {
			if checksum != 0 {
				return nil, fmt.Errorf("%w: end block carries checksum %#x", errLZ4Stream, checksum)
			}
			return out, nil
		}
		if len(out)+originalLen > nbtfile.MaxUncompressed {
			return nil, fmt.Errorf("%w: payload exceeds %d bytes", errLZ4Stream, nbtfile.MaxUncompressed)
		}
		if len(src)-off < compressedLen {
			return nil, fmt.Errorf("%w: truncated block at offset %d", errLZ4Stream, off)
		}
		payload := src[off : off+compressedLen]
		off += compressedLen

		start := len(out)
		if method == lz4MethodRaw {
			out = append(out, payload...)
		} else {
			out = append(out, make([]byte, originalLen)...)
			n, err := lz4.UncompressBlock(payload, out[start:])
			if err != nil {
				return nil, fmt.Errorf("lz4 decompress: %w", err)
			}
			if n != originalLen {
				return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, originalLen)
			}
		}
		if got := blockChecksum(out[start:]); got != checksum {
			return nil, fmt.Errorf("%w: checksum %#x, expected %#x", errLZ4Stream, got, checksum)
		}
	}
}

// encodeLZ4Stream writes data as an lz4-java block stream with 64 KiB blocks.
// Blocks that do not shrink are stored raw.
func encodeLZ4Stream(data []byte) ([]byte, error) {
	level := byte(6) // log2(lz4BlockSize) - lz4LevelBase
	out := make([]byte, 0, len(data)+lz4HeaderSize*2)
	scratch := make([]byte, lz4.CompressBlockBound(lz4BlockSize))
	for len(data) > 0 {
		block := data[:min(len(data), lz4BlockSize)]
		data = data[len(block):]

		written, err := lz4.CompressBlock(block, scratch, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		method, payload := byte(lz4MethodLZ4), scratch[:written]
		if written == 0 || written >= len(block) {
			method, payload = lz4MethodRaw, block
		}
		out = appendLZ4Header(out, method|level, len(payload), len(block), blockChecksum(block))
		out = append(out, payload...)
	}
	return appendLZ4Header(out, lz4MethodRaw|level, 0, 0, 0), nil
}

func appendLZ4Header(dst []byte, token byte, compressedLen, originalLen int, checksum uint32) []byte {
	dst = append(dst, lz4Magic...)
	dst = append(dst, token)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(compressedLen))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(originalLen))
	return binary.LittleEndian.AppendUint32(dst, checksum)
}
