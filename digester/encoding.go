package digester

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ErrOutOfRange is returned when a value does not fit the
// requested width.
var ErrOutOfRange = errors.New("value out of range")

const uuidHexLen = 32

// SignedInt reads u as a two's-complement integer of the
// given bit width. It fails when u is negative or needs
// more than bits bits.
func SignedInt(u *big.Int, bits int) (*big.Int, error) {
	if bits <= 0 || u.Sign() < 0 || u.BitLen() > bits {
		return nil, fmt.Errorf(
			"%w: %s does not fit in %d unsigned bits",
			ErrOutOfRange, u, bits,
		)
	}

	if u.Bit(bits-1) == 0 {
		return new(big.Int).Set(u), nil
	}

	modulus := new(big.Int).Lsh(big.NewInt(1), uint(bits))

	return new(big.Int).Sub(u, modulus), nil
}

// HexToUUID left-pads a hex digest to 32 digits and renders
// it in 8-4-4-4-12 form.
func HexToUUID(hx string) (string, error) {
	const errCtx = "formatting uuid"

	if len(hx) > uuidHexLen {
		return "", fmt.Errorf(
			"%s: %w: %d hex digits exceed %d",
			errCtx, ErrOutOfRange, len(hx), uuidHexLen,
		)
	}

	padded := strings.Repeat("0", uuidHexLen-len(hx)) + hx

	raw, err := hex.DecodeString(padded)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	id, err := uuid.FromBytes(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return id.String(), nil
}
