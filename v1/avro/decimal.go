package avro

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var bigTen = big.NewInt(10)

// bytesToBigInt interprets b as a big-endian two's-complement integer.
func bytesToBigInt(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		// negative: subtract 2^(8*len)
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return n
}

// bigIntToBytes returns the shortest big-endian two's-complement encoding of n.
// Zero encodes as a single 0x00 byte.
func bigIntToBytes(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	// Negative: 2^(8*size) + n with the smallest size whose sign bit is set.
	size := (n.BitLen() + 8) / 8
	for {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(size)*8)
		b := new(big.Int).Add(mod, n).Bytes()
		for len(b) < size {
			b = append([]byte{0}, b...)
		}
		if b[0]&0x80 != 0 {
			if size > 1 && b[0] == 0xff && b[1]&0x80 != 0 {
				return b[1:]
			}
			return b
		}
		size++
	}
}

// signExtend widens a two's-complement encoding to exactly size bytes.
func signExtend(b []byte, size int) ([]byte, bool) {
	if len(b) > size {
		return nil, false
	}
	pad := byte(0x00)
	if len(b) > 0 && b[0]&0x80 != 0 {
		pad = 0xff
	}
	out := make([]byte, size)
	offset := size - len(b)
	for i := 0; i < offset; i++ {
		out[i] = pad
	}
	copy(out[offset:], b)
	return out, true
}

// formatDecimal renders unscaled * 10^-scale in plain notation.
func formatDecimal(unscaled *big.Int, scale int) string {
	if scale <= 0 {
		if scale < 0 {
			unscaled = new(big.Int).Mul(unscaled, new(big.Int).Exp(bigTen, big.NewInt(int64(-scale)), nil))
		}
		return unscaled.String()
	}

	digits := new(big.Int).Abs(unscaled).String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	point := len(digits) - scale

	var sb strings.Builder
	if unscaled.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(digits[:point])
	sb.WriteByte('.')
	sb.WriteString(digits[point:])
	return sb.String()
}

// parseDecimal parses a JSON number literal (or the same text quoted) into an unscaled
// integer and its natural scale. Trailing fractional zeros do not count towards the scale,
// and a positive exponent can make the scale negative.
func parseDecimal(text string) (*big.Int, int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, 0, fmt.Errorf("empty decimal")
	}

	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid exponent in %q", text)
		}
		exp = e
		s = s[:i]
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, 0, fmt.Errorf("invalid decimal %q", text)
	}
	for _, part := range []string{intPart, fracPart} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return nil, 0, fmt.Errorf("invalid decimal %q", text)
			}
		}
	}

	fracPart = strings.TrimRight(fracPart, "0")
	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}

	unscaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, 0, fmt.Errorf("invalid decimal %q", text)
	}
	if negative {
		unscaled.Neg(unscaled)
	}
	return unscaled, len(fracPart) - exp, nil
}

// rescale multiplies unscaled so that it is expressed with target scale. It refuses to
// lose digits.
func rescale(unscaled *big.Int, scale, target int) (*big.Int, bool) {
	if scale > target {
		return nil, false
	}
	if scale == target {
		return unscaled, true
	}
	factor := new(big.Int).Exp(bigTen, big.NewInt(int64(target-scale)), nil)
	return new(big.Int).Mul(unscaled, factor), true
}

// fitsPrecision reports whether |n| has at most precision decimal digits.
func fitsPrecision(n *big.Int, precision int) bool {
	limit := new(big.Int).Exp(bigTen, big.NewInt(int64(precision)), nil)
	return new(big.Int).Abs(n).Cmp(limit) < 0
}
