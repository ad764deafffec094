package cfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gimnasio-api/internal/domain/cfe"
)

func TestInvoiceFileName(t *testing.T) {
	cases := []struct {
		name               string
		series, number, id string
		want               string
	}{
		{"caracteres no permitidos", "A/B", "123#456", "", "A_B-123_456.pdf"},
		{"con id", "A", "100", "3f2c-uuid", "A-100-3f2c-uuid.pdf"},
		{"solo id", "", "", "inv_1", "inv_1.pdf"},
		{"espacios cuentan como ausentes", "  ", "", "", "factura.pdf"},
		{"sin datos", "", "", "", "factura.pdf"},
		{"acentos se reemplazan", "Ñ", "7", "", "_-7.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cfe.InvoiceFileName(tc.series, tc.number, tc.id))
		})
	}
}
