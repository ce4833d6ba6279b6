package region

import (
	"encoding/binary"
	"math/bits"
)

const (
	prime32x1 uint32 = 0x9E3779B1
	prime32x2 uint32 = 0x85EBCA77
	prime32x3 uint32 = 0xC2B2AE3D
	prime32x4 uint32 = 0x27D4EB2F
	prime32x5 uint32 = 0x165667B1
)

// lz4Seed is the seed lz4-java block streams hash with.
const lz4Seed uint32 = 0x9747b28c

func xxh32Round(acc, lane uint32) uint32 {
	return bits.RotateLeft32(acc+lane*prime32x2, 13) * prime32x1
}

// xxh32 hashes data in one pass.
func xxh32(data []byte, seed uint32) uint32 {
	n := len(data)
	var h uint32
	if n >= 16 {
		v := [4]uint32{seed + prime32x1 + prime32x2, seed + prime32x2, seed, seed - prime32x1}
		for len(data) >= 16 {
			for i := range v {
				v[i] = xxh32Round(v[i], binary.LittleEndian.Uint32(data[4*i:]))
			}
			data = data[16:]
		}
		h = bits.RotateLeft32(v[0], 1) + bits.RotateLeft32(v[1], 7) +
			bits.RotateLeft32(v[2], 12) + bits.RotateLeft32(v[3], 18)
	} else {
		h = seed + prime32x5
	}
	h += uint32(n)
	for ; len(data) >= 4; data = data[4:] {
		h = bits.RotateLeft32(h+binary.LittleEndian.Uint32(data)*prime32x3, 17) * prime32x4
	}
	for _, b := range data {
		h = bits.RotateLeft32(h+uint32(b)*prime32x5, 11) * prime32x1
	}
	h ^= h >> 15
	h *= prime32x2
	h ^= h >> 13
	h *= prime32x3
	h ^= h >> 16
	return h
}

// blockChecksum is the 28-bit checksum stored in each LZ4 block header.
func blockChecksum(data []byte) uint32 {
	return xxh32(data, lz4Seed) & 0x0FFFFFFF
}
