package provisioning

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*"

	// PasswordCharset is the fixed alphabet temporary passwords are drawn from
	PasswordCharset = lowerChars + upperChars + digitChars + symbolChars

	// DefaultPasswordLength is the length of generated temporary passwords
	DefaultPasswordLength = 14
)

// PasswordGenerator produces one-time temporary passwords
type PasswordGenerator interface {
	Generate() (string, error)
}

// RandomPasswordGenerator draws characters from PasswordCharset using
// crypto/rand. Every password holds at least one character of each class.
type RandomPasswordGenerator struct {
	Length int
}

// NewRandomPasswordGenerator creates a generator for passwords of length n
func NewRandomPasswordGenerator(n int) *RandomPasswordGenerator {
	if n <= 0 {
		n = DefaultPasswordLength
	}
	return &RandomPasswordGenerator{Length: n}
}

// Generate returns a new random password
func (g *RandomPasswordGenerator) Generate() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	if g.Length < len(classes) {
		return "", errors.New("password length too short for required character classes")
	}

	buf := make([]byte, g.Length)
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	for i := len(classes); i < g.Length; i++ {
		c, err := randomChar(PasswordCharset)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}

	// Fisher-Yates so the guaranteed characters are not always in front
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

