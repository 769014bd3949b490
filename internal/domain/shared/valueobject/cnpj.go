package valueobject

import (
	"errors"
	"strings"
)

// CNPJLength is the number of digits in a Brazilian company registration number
const CNPJLength = 14

// ErrInvalidCNPJ is returned when a CNPJ fails the length or check digit validation
var ErrInvalidCNPJ = errors.New("invalid CNPJ")

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// CNPJ is a validated company registration number stored as digits only
type CNPJ struct {
	digits string
}

// NewCNPJ validates and normalizes a CNPJ. Punctuation (".", "/", "-") is stripped.
func NewCNPJ(raw string) (CNPJ, error) {
	digits := onlyDigits(raw)
	if len(digits) != CNPJLength {
		return CNPJ{}, ErrInvalidCNPJ
	}
	if strings.Count(digits, digits[:1]) == CNPJLength {
		return CNPJ{}, ErrInvalidCNPJ
	}
	if cnpjCheckDigit(digits[:12], cnpjFirstWeights) != digits[12] ||
		cnpjCheckDigit(digits[:13], cnpjSecondWeights) != digits[13] {
		return CNPJ{}, ErrInvalidCNPJ
	}
	return CNPJ{digits: digits}, nil
}

// String returns the digits-only form
func (c CNPJ) String() string {
	return c.digits
}

// Formatted returns the CNPJ as 00.000.000/0000-00
func (c CNPJ) Formatted() string {
	if len(c.digits) != CNPJLength {
		return c.digits
	}
	d := c.digits
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// IsEmpty returns true for the zero value
func (c CNPJ) IsEmpty() bool {
	return c.digits == ""
}

func cnpjCheckDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
