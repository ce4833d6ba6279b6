// Package region reads and writes Anvil region files (.mca), the 32x32 chunk
// containers whose entries are compressed classic NBT documents.
package region

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/starfederation/nbt-go"
	"github.com/starfederation/nbt-go/nbtfile"
)

const (
	// SectorSize is the allocation unit of a region file.
	SectorSize = 4096
	// Width is the number of chunks along each axis of a region.
	Width = 32
	// HeaderSize covers the location table and the timestamp table.
	HeaderSize = 2 * SectorSize

	chunkCount   = Width * Width
	externalFlag = 0x80
	maxSectors   = 0xFF
	maxOffset    = 1<<24 - 1
)

var (
	ErrChunkNotFound          = errors.New("region: chunk not present")
	ErrExternalChunk          = errors.New("region: chunk stored in external .mcc file")
	ErrUnsupportedCompression = errors.New("region: unsupported chunk compression")
	ErrCorrupt                = errors.New("region: corrupt file")
	ErrOutOfRange             = errors.New("region: chunk coordinates out of range")
	ErrTimestampRange         = errors.New("region: timestamp not representable as uint32 seconds")
)

// Compression is the per-chunk compression byte.
type Compression uint8

const (
	Gzip   Compression = 1
	Zlib   Compression = 2
	None   Compression = 3
	LZ4    Compression = 4
	Custom Compression = 127
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a name produced by Compression.String. Custom is
// not writable and is rejected.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("unknown chunk compression: %q", name)
	}
}

// ChunkInfo describes one occupied slot of the location table.
type ChunkInfo struct {
	X, Z      int
	Sector    int
	Sectors   int
	Timestamp time.Time
}

// File is a parsed region file. It holds data without copying.
type File struct {
	data       []byte
	locations  [chunkCount]uint32
	timestamps [chunkCount]uint32
}

// Parse reads the header tables of a region file. A zero-length input is an
// empty region. Chunk payloads are only validated when read.
func Parse(data []byte) (*File, error) {
	f := &File{data: data}
	if len(data) == 0 {
		return f, nil
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrCorrupt, HeaderSize, len(data))
	}
	for i := range chunkCount {
		f.locations[i] = binary.BigEndian.Uint32(data[4*i:])
		f.timestamps[i] = binary.BigEndian.Uint32(data[SectorSize+4*i:])
	}
	for i, loc := range f.locations {
		if loc == 0 {
			continue
		}
		sector, count := int(loc>>8), int(loc&0xFF)
		if sector < HeaderSize/SectorSize || count == 0 {
			return nil, fmt.Errorf("%w: chunk %d,%d has location %d+%d", ErrCorrupt, i%Width, i/Width, sector, count)
		}
	}
	return f, nil
}

func index(x, z int) (int, error) {
	if x < 0 || x >= Width || z < 0 || z >= Width {
		return 0, fmt.Errorf("%w: %d,%d", ErrOutOfRange, x, z)
	}
	return x + z*Width, nil
}

// Chunks lists the occupied slots in location-table order.
func (f *File) Chunks() []ChunkInfo {
	var out []ChunkInfo
	for i, loc := range f.locations {
		if loc == 0 {
			continue
		}
		info := ChunkInfo{X: i % Width, Z: i / Width, Sector: int(loc >> 8), Sectors: int(loc & 0xFF)}
		if ts := f.timestamps[i]; ts != 0 {
			info.Timestamp = time.Unix(int64(ts), 0).UTC()
		}
		out = append(out, info)
	}
	return out
}

// Has reports whether chunk x,z is present.
func (f *File) Has(x, z int) bool {
	i, err := index(x, z)
	return err == nil && f.locations[i] != 0
}

// Chunk returns the decompressed NBT payload of chunk x,z and the compression
// it was stored with.
func (f *File) Chunk(x, z int) ([]byte, Compression, error) {
	raw, c, err := f.RawChunk(x, z)
	if err != nil {
		return nil, c, err
	}
	var out []byte
	switch c {
	case Gzip:
		out, err = nbtfile.Decompress(raw, nbtfile.Gzip)
	case Zlib:
		out, err = nbtfile.Decompress(raw, nbtfile.Zlib)
	case None:
		out = raw
	case LZ4:
		out, err = decodeLZ4Stream(raw)
	default:
		return nil, c, fmt.Errorf("%w: %v in chunk %d,%d", ErrUnsupportedCompression, c, x, z)
	}
	if err != nil {
		return nil, c, fmt.Errorf("chunk %d,%d: %w", x, z, err)
	}
	return out, c, nil
}

// RawChunk returns the still-compressed bytes of chunk x,z.
func (f *File) RawChunk(x, z int) ([]byte, Compression, error) {
	i, err := index(x, z)
	if err != nil {
		return nil, 0, err
	}
	loc := f.locations[i]
	if loc == 0 {
		return nil, 0, fmt.Errorf("%w: %d,%d", ErrChunkNotFound, x, z)
	}
	start, span := int(loc>>8)*SectorSize, int(loc&0xFF)*SectorSize
	if start+5 > len(f.data) {
		return nil, 0, fmt.Errorf("%w: chunk %d,%d starts past end of file", ErrCorrupt, x, z)
	}
	length := int(binary.BigEndian.Uint32(f.data[start:]))
	if length < 1 || 4+length > span || start+4+length > len(f.data) {
		return nil, 0, fmt.Errorf("%w: chunk %d,%d has length %d", ErrCorrupt, x, z, length)
	}
	flag := f.data[start+4]
	c := Compression(flag &^ externalFlag)
	if flag&externalFlag != 0 {
		return nil, c, fmt.Errorf("%w: %d,%d", ErrExternalChunk, x, z)
	}
	return f.data[start+5 : start+4+length], c, nil
}

// Document decodes chunk x,z as a classic NBT document.
func (f *File) Document(x, z int, opts ...nbt.Option) (nbt.Document, error) {
	payload, _, err := f.Chunk(x, z)
	if err != nil {
		return nbt.Document{}, err
	}
	doc, err := nbt.NewCodec(nbt.NamedRoot{}, opts...).Decode(payload)
	if err != nil {
		return nbt.Document{}, fmt.Errorf("chunk %d,%d: %w", x, z, err)
	}
	return doc, nil
}
