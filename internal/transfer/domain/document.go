package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDocument = errors.New("invalid document number")
)

// DocumentType distinguishes personal from company registration numbers.
type DocumentType string

const (
	DocumentCPF  DocumentType = "cpf"
	DocumentCNPJ DocumentType = "cnpj"
)

// Document is a validated CPF or CNPJ registration number, stored as bare
// digits.
type Document struct {
	number  string
	docType DocumentType
}

// NewDocument validates the number and infers its type from length: 11
// digits is a CPF, 14 a CNPJ. Punctuation and spaces are stripped first.
func NewDocument(number string) (Document, error) {
	digits := stripNonDigits(number)

	switch len(digits) {
	case 11:
		if !validCPF(digits) {
			return Document{}, ErrInvalidDocument
		}
		return Document{number: digits, docType: DocumentCPF}, nil
	case 14:
		if !validCNPJ(digits) {
			return Document{}, ErrInvalidDocument
		}
		return Document{number: digits, docType: DocumentCNPJ}, nil
	default:
		return Document{}, ErrInvalidDocument
	}
}

// Number returns the document digits.
func (d Document) Number() string {
	return d.number
}

// Type returns the document type.
func (d Document) Type() DocumentType {
	return d.docType
}

// Formatted returns the number with standard punctuation:
// 111.444.777-35 for a CPF, 11.222.333/0001-81 for a CNPJ.
func (d Document) Formatted() string {
	n := d.number
	if d.docType == DocumentCPF {
		return n[0:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:11]
	}
	return n[0:2] + "." + n[2:5] + "." + n[5:8] + "/" + n[8:12] + "-" + n[12:14]
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// validCPF checks the two CPF verification digits. Numbers made of a single
// repeated digit pass the checksum but are not valid registrations.
func validCPF(digits string) bool {
	if allSameDigit(digits) {
		return false
	}

	for _, pos := range []int{9, 10} {
		sum := 0
		weight := pos + 1
		for i := 0; i < pos; i++ {
			sum += int(digits[i]-'0') * (weight - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != int(digits[pos]-'0') {
			return false
		}
	}
	return true
}

// validCNPJ checks the two CNPJ verification digits using their weighted
// checksums.
func validCNPJ(digits string) bool {
	if allSameDigit(digits) {
		return false
	}

	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for _, pos := range []int{12, 13} {
		sum := 0
		offset := len(weights) - pos
		for i := 0; i < pos; i++ {
			sum += int(digits[i]-'0') * weights[offset+i]
		}
		check := sum % 11
		if check < 2 {
			check = 0
		} else {
			check = 11 - check
		}
		if check != int(digits[pos]-'0') {
			return false
		}
	}
	return true
}
