package pool

import (
	"fmt"
	"strings"
)

// Token selects one of the two pool reserves.
type Token uint8

const (
	TokenX Token = iota
	TokenY
)

// ParseToken accepts "x", "y", "0" or "1".
func ParseToken(input string) (Token, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "x", "0":
		return TokenX, nil
	case "y", "1":
		return TokenY, nil
	default:
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidAmount, input)
	}
}

func (t Token) String() string {
	switch t {
	case TokenX:
		return "X"
	case TokenY:
		return "Y"
	default:
		return fmt.Sprintf("Token(%d)", uint8(t))
	}
}

// Other returns the opposite token.
func (t Token) Other() Token {
	if t == TokenX {
		return TokenY
	}
	return TokenX
}

func (t Token) valid() bool {
	return t == TokenX || t == TokenY
}
