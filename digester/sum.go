package digester

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/xxHash/xxHash32"
	"github.com/zeebo/xxh3"
)

// Sum is a raw digest of up to 128 bits. Hi is zero for
// variants narrower than 128 bits.
type Sum struct {
	Hi   uint64
	Lo   uint64
	Bits int
}

// Sum hashes the UTF-8 bytes of input with seed.
func (v Variant) Sum(input string, seed uint64) Sum {
	switch v {
	case XXH32:
		return Sum{
			Lo: uint64(xxHash32.Checksum(
				[]byte(input), uint32(seed), //nolint:gosec // xxh32 takes the low 32 bits of the seed
			)),
			Bits: 32,
		}
	case XXH64:
		if seed == 0 {
			return Sum{Lo: xxhash.Sum64String(input), Bits: 64}
		}

		dg := xxhash.NewWithSeed(seed)
		_, _ = dg.WriteString(input) //nolint:errcheck // Digest writes never fail

		return Sum{Lo: dg.Sum64(), Bits: 64}
	case XXH3_64:
		if seed == 0 {
			return Sum{Lo: xxh3.HashString(input), Bits: 64}
		}

		return Sum{Lo: xxh3.HashStringSeed(input, seed), Bits: 64}
	case XXH3_128:
		var u xxh3.Uint128
		if seed == 0 {
			u = xxh3.HashString128(input)
		} else {
			u = xxh3.HashString128Seed(input, seed)
		}

		return Sum{Hi: u.Hi, Lo: u.Lo, Bits: 128}
	default:
		return Sum{}
	}
}

// Uint returns the digest as an unsigned integer.
func (s Sum) Uint() *big.Int {
	var buf [16]byte

	binary.BigEndian.PutUint64(buf[:8], s.Hi)
	binary.BigEndian.PutUint64(buf[8:], s.Lo)

	return new(big.Int).SetBytes(buf[:])
}

// Hex returns the digest as Bits/4 lowercase hex digits.
func (s Sum) Hex() string {
	var buf [16]byte

	binary.BigEndian.PutUint64(buf[:8], s.Hi)
	binary.BigEndian.PutUint64(buf[8:], s.Lo)

	return hex.EncodeToString(buf[16-s.Bits/8:])
}
