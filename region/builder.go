package region

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/starfederation/nbt-go"
	"github.com/starfederation/nbt-go/nbtfile"
)

// Builder assembles a region file from chunk payloads. Chunks are compressed
// as they are added and laid out in sector order by Bytes.
type Builder struct {
	compression Compression
	chunks      [chunkCount][]byte
	timestamps  [chunkCount]uint32
}

// NewBuilder creates an empty builder that compresses chunks with c.
func NewBuilder(c Compression) (*Builder, error) {
	switch c {
	case Gzip, Zlib, None, LZ4:
		return &Builder{compression: c}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, c)
	}
}

// Add stores payload as chunk x,z, replacing any previous chunk there. A zero
// modified time is written as 0; times before 1970 or after 2106 fail with
// ErrTimestampRange.
func (b *Builder) Add(x, z int, payload []byte, modified time.Time) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}
	var ts uint32
	if !modified.IsZero() {
		secs := modified.Unix()
		if secs < 0 || secs > math.MaxUint32 {
			return fmt.Errorf("%w: chunk %d,%d at %v", ErrTimestampRange, x, z, modified)
		}
		ts = uint32(secs)
	}
	var data []byte
	switch b.compression {
	case Gzip:
		data, err = nbtfile.Wrap(payload, nbtfile.Gzip)
	case Zlib:
		data, err = nbtfile.Wrap(payload, nbtfile.Zlib)
	case None:
		data = payload
	case LZ4:
		data, err = encodeLZ4Stream(payload)
	}
	if err != nil {
		return fmt.Errorf("chunk %d,%d: %w", x, z, err)
	}
	entry := make([]byte, 5, 5+len(data))
	binary.BigEndian.PutUint32(entry, uint32(len(data)+1))
	entry[4] = byte(b.compression)
	entry = append(entry, data...)
	if sectorsFor(len(entry)) > maxSectors {
		return fmt.Errorf("chunk %d,%d: %d bytes exceeds %d sectors", x, z, len(entry), maxSectors)
	}
	b.chunks[i] = entry
	b.timestamps[i] = ts
	return nil
}

// AddDocument encodes doc with classic framing and stores it as chunk x,z.
func (b *Builder) AddDocument(x, z int, doc nbt.Document, modified time.Time) error {
	payload, err := nbt.Encode(doc)
	if err != nil {
		return fmt.Errorf("chunk %d,%d: %w", x, z, err)
	}
	return b.Add(x, z, payload, modified)
}

// Remove clears chunk x,z.
func (b *Builder) Remove(x, z int) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}
	b.chunks[i] = nil
	b.timestamps[i] = 0
	return nil
}

// Bytes returns the complete region file. Each chunk is padded to a whole
// number of sectors.
func (b *Builder) Bytes() ([]byte, error) {
	out := make([]byte, HeaderSize)
	sector := HeaderSize / SectorSize
	for i, entry := range b.chunks {
		if entry == nil {
			continue
		}
		count := sectorsFor(len(entry))
		if sector > maxOffset {
			return nil, fmt.Errorf("region: sector offset %d exceeds %d", sector, maxOffset)
		}
		binary.BigEndian.PutUint32(out[4*i:], uint32(sector)<<8|uint32(count))
		binary.BigEndian.PutUint32(out[SectorSize+4*i:], b.timestamps[i])
		out = append(out, entry...)
		out = append(out, make([]byte, count*SectorSize-len(entry))...)
		sector += count
	}
	return out, nil
}

func sectorsFor(n int) int {
	return (n + SectorSize - 1) / SectorSize
}
