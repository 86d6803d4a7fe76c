package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "11144477735", true},
		{"valid formatted", "111.444.777-35", true},
		{"bad check digit", "11144477734", false},
		{"repeated digits", "11111111111", false},
		{"too short", "1114447773", false},
		{"letters", "1114447773a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDocument(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidDocument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DocumentCPF, doc.Type())
			assert.Equal(t, "11144477735", doc.Number())
		})
	}
}

func TestDocumentFormatted(t *testing.T) {
	cpf, err := NewDocument("11144477735")
	require.NoError(t, err)
	assert.Equal(t, "111.444.777-35", cpf.Formatted())

	cnpj, err := NewDocument("11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", cnpj.Formatted())
}

func TestNewDocumentCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "11222333000181", true},
		{"valid formatted", "11.222.333/0001-81", true},
		{"bad check digit", "11222333000182", false},
		{"repeated digits", "11111111111111", false},
		{"wrong length", "112223330001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDocument(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidDocument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DocumentCNPJ, doc.Type())
			assert.Equal(t, "11222333000181", doc.Number())
		})
	}
}
