package digester

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ErrUnknownAlgorithm is returned by Parse for names
// outside the supported set.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// DefaultName is the algorithm used when none is given.
const DefaultName = "xxh64"

// Variant identifies the xxHash function.
type Variant int

// Supported xxHash variants.
const (
	XXH32 Variant = iota + 1
	XXH64
	XXH3_64
	XXH3_128
)

// Bits returns the digest width of the variant.
func (v Variant) Bits() int {
	switch v {
	case XXH32:
		return 32
	case XXH64, XXH3_64:
		return 64
	case XXH3_128:
		return 128
	default:
		return 0
	}
}

func (v Variant) String() string {
	switch v {
	case XXH32:
		return "xxh32"
	case XXH64:
		return "xxh64"
	case XXH3_64:
		return "xxh3_64"
	case XXH3_128:
		return "xxh3_128"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Encoding selects how a digest is rendered.
type Encoding int

// Supported encodings.
const (
	// Decimal renders the unsigned digest in base 10.
	Decimal Encoding = iota

	// Signed renders the two's-complement reading of the
	// digest at the variant's width in base 10.
	Signed

	// Hex renders bits/4 zero-padded lowercase hex digits.
	Hex

	// UUID renders the 128-bit hex digest as a UUID.
	UUID
)

func (en Encoding) String() string {
	switch en {
	case Decimal:
		return "decimal"
	case Signed:
		return "signed"
	case Hex:
		return "hex"
	case UUID:
		return "uuid"
	default:
		return fmt.Sprintf("Encoding(%d)", int(en))
	}
}

// Algorithm is a resolved variant/encoding pair.
type Algorithm struct {
	Name     string
	Variant  Variant
	Encoding Encoding
	Seed     uint64
}

var (
	baseNames = map[string]Variant{
		"xxh32":    XXH32,
		"32":       XXH32,
		"xxh64":    XXH64,
		"64":       XXH64,
		"xxh3_64":  XXH3_64,
		"xxh3_128": XXH3_128,
		"xxh128":   XXH3_128,
		"128":      XXH3_128,
	}

	suffixes = map[string]Encoding{
		"":  Decimal,
		"s": Signed,
		"x": Hex,
	}

	uuidNames = []string{
		"uuid",
		"xxh_uuid",
		"xxh3_uuid",
		"xxh128_uuid",
	}

	// algorithms is the closed dispatch table built from
	// the tables above.
	algorithms = buildTable()
)

func buildTable() map[string]Algorithm {
	table := make(map[string]Algorithm)

	for base, variant := range baseNames {
		for suffix, enc := range suffixes {
			name := base + suffix
			table[name] = Algorithm{
				Name:     name,
				Variant:  variant,
				Encoding: enc,
			}
		}
	}

	// A uuid token always means 128-bit hex rendered as a
	// UUID; any suffix is accepted and ignored.
	for _, base := range uuidNames {
		for suffix := range suffixes {
			name := base + suffix
			table[name] = Algorithm{
				Name:     name,
				Variant:  XXH3_128,
				Encoding: UUID,
			}
		}
	}

	return table
}

// Parse resolves name, case-insensitively, against the
// supported algorithm names.
func Parse(name string) (Algorithm, error) {
	al, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Algorithm{}, fmt.Errorf(
			"%w: %q", ErrUnknownAlgorithm, name,
		)
	}

	return al, nil
}

// IsName reports whether token is a supported algorithm
// name.
func IsName(token string) bool {
	_, ok := algorithms[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Names returns every supported algorithm name, sorted.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WithSeed returns a copy of al hashing with seed.
func (al Algorithm) WithSeed(seed uint64) Algorithm {
	al.Seed = seed
	return al
}

// Digest hashes input and renders the digest in the
// algorithm's encoding.
func (al Algorithm) Digest(input string) (string, error) {
	const errCtx = "computing digest"

	sum := al.Variant.Sum(input, al.Seed)

	var (
		out string
		err error
	)

	switch al.Encoding {
	case Decimal:
		out = sum.Uint().String()
	case Signed:
		var si *big.Int

		si, err = SignedInt(sum.Uint(), sum.Bits)
		if err == nil {
			out = si.String()
		}
	case Hex:
		out = sum.Hex()
	case UUID:
		out, err = HexToUUID(sum.Hex())
	default:
		err = fmt.Errorf("unsupported encoding %s", al.Encoding)
	}

	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", errCtx, al.Name, err)
	}

	return out, nil
}
