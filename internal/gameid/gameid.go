// Package gameid generates the identifiers attached to every dealt hand and
// its records: a UUIDv7 encoded as 26 characters of Crockford base32, so ids
// sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator produces game ids from a byte source.
type Generator struct {
	entropy io.Reader
}

// NewGenerator creates a generator. A nil entropy source uses crypto/rand;
// tests pass a seeded reader to get reproducible random bits.
func NewGenerator(entropy io.Reader) *Generator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{entropy: entropy}
}

// Generate creates a new game ID using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID from the generator's entropy source
func (g *Generator) Generate() string {
	id, err := uuid.NewV7FromReader(g.entropy)
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return encodeBase32(id)
}

// encodeBase32 encodes a 128-bit UUID as a 26-character base32 string
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)

	// 26 groups of 5 bits cover 130 bits; the two high bits are zero.
	for i := 0; i < 26; i++ {
		bitOffset := i*5 - 2
		var value uint8
		for b := 0; b < 5; b++ {
			bit := bitOffset + b
			if bit < 0 {
				continue
			}
			if data[bit/8]&(0x80>>(bit%8)) != 0 {
				value |= 1 << (4 - b)
			}
		}
		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("game ID must be exactly 26 characters, got %d", len(id))
	}

	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
