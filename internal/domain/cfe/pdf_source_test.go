package cfe_test

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jhoicas/Gimnasio-api/internal/domain/cfe"
)

var (
	testPdfBytes  = []byte("%PDF-1.4\n% comprobante fiscal electronico de prueba\n%%EOF\n")
	testPdfBase64 = base64.StdEncoding.EncodeToString(testPdfBytes)
)

func TestFindInvoicePdfSource_Base64Anidado(t *testing.T) {
	payload := []byte(fmt.Sprintf(`{"estado":"ok","data":{"archivoPdfBase64":%q}}`, testPdfBase64))

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, testPdfBase64, src)
}

// Correr la búsqueda dos veces sobre el mismo documento devuelve lo mismo.
func TestFindInvoicePdfSource_Idempotente(t *testing.T) {
	payload := []byte(`{"a":{"b":"https://cfe.example.com/1.pdf"},"c":[{"link":"https://cfe.example.com/2.pdf"}]}`)

	first, ok1 := cfe.FindInvoicePdfSource(payload)
	second, ok2 := cfe.FindInvoicePdfSource(payload)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestFindInvoicePdfSource_SinCandidatos(t *testing.T) {
	cases := map[string]string{
		"sin strings plausibles": `{"estado":"ok","numero":123,"items":[{"desc":"Cuota mensual"}],"ok":true}`,
		"base64 corto":           `{"codigo":"QUJD"}`,
		"json inválido":          `{"estado":`,
		"vacío":                  ``,
		"pista con string vacío": `{"pdf":"   "}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			src, ok := cfe.FindInvoicePdfSource([]byte(payload))
			assert.False(t, ok)
			assert.Empty(t, src)

			_, again := cfe.FindInvoicePdfSource([]byte(payload))
			assert.False(t, again)
		})
	}
}

func TestFindInvoicePdfSource_ClavesSugeridasPrimero(t *testing.T) {
	payload := []byte(`{"ayuda":"https://example.com/ayuda","pdf":"data:application/pdf;base64,` + testPdfBase64 + `"}`)

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, "data:application/pdf;base64,"+testPdfBase64, src)
}

// La pasada por claves sugeridas entra en profundidad antes de recorrer el resto.
func TestFindInvoicePdfSource_PistaProfundaGanaAlOrden(t *testing.T) {
	payload := []byte(`{"meta":{"ayuda":"https://a.example.com"},"documento":{"contenido":"https://b.example.com/cfe.pdf"}}`)

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, "https://b.example.com/cfe.pdf", src)
}

func TestFindInvoicePdfSource_SinPistasUsaOrdenDelDocumento(t *testing.T) {
	payload := []byte(`{"x":{"y":"https://primero.example.com"},"z":"https://segundo.example.com"}`)

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, "https://primero.example.com", src)
}

func TestFindInvoicePdfSource_PistaAceptaCualquierTexto(t *testing.T) {
	payload := []byte(`{"estado":"ok","enlace_pdf":"pendiente de generación"}`)

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, "pendiente de generación", src)
}

func TestFindInvoicePdfSource_ArraysHeredanLaPista(t *testing.T) {
	payload := []byte(`{"links":["", "ver portal"]}`)

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, "ver portal", src)
}

func TestFinder_PredicadoYPistasConfigurables(t *testing.T) {
	f := cfe.Finder{
		Match:    func(s string) bool { return s == "objetivo" },
		KeyHints: []string{"nota"},
	}
	doc := gjson.Parse(`{"a":[1,{"b":"objetivo"}],"notas":"texto"}`)

	src, ok := f.Find(doc)
	require.True(t, ok)
	assert.Equal(t, "texto", src, "la clave sugerida se revisa antes que el resto")

	src, ok = cfe.Finder{Match: f.Match}.Find(doc)
	require.True(t, ok)
	assert.Equal(t, "objetivo", src)
}

func TestIsPdfCandidate(t *testing.T) {
	assert.True(t, cfe.IsPdfCandidate("data:application/pdf;base64,QUJD"))
	assert.True(t, cfe.IsPdfCandidate("https://cfe.example.com/doc?id=1"))
	assert.True(t, cfe.IsPdfCandidate("http://cfe.example.com/doc"))
	assert.True(t, cfe.IsPdfCandidate(testPdfBase64))
	assert.False(t, cfe.IsPdfCandidate("QUJD"))
	assert.False(t, cfe.IsPdfCandidate("data:image/png;base64,QUJD"))
	assert.False(t, cfe.IsPdfCandidate("texto con espacios que no es base64 ni url ni nada parecido al pdf"))
	assert.False(t, cfe.IsPdfCandidate(" "+testPdfBase64+" "))
	assert.False(t, cfe.IsPdfCandidate(testPdfBase64+"\n"))
}

func TestFindInvoicePdfSource_Base64ConEspaciosSinPistaNoCuenta(t *testing.T) {
	payload := []byte(fmt.Sprintf(`{"x":%q}`, " "+testPdfBase64+" "))

	src, ok := cfe.FindInvoicePdfSource(payload)
	assert.False(t, ok)
	assert.Empty(t, src)
}

func TestFindInvoicePdfSource_Base64ConEspaciosBajoPistaSeDecodifica(t *testing.T) {
	payload := []byte(fmt.Sprintf(`{"archivo":%q}`, " "+testPdfBase64+" "))

	src, ok := cfe.FindInvoicePdfSource(payload)
	require.True(t, ok)
	assert.Equal(t, cfe.SourceInline, cfe.ClassifyPdfSource(src))
	assert.Equal(t, testPdfBytes, cfe.DecodeInlinePdf(src))
}

func TestClassifyYDecode(t *testing.T) {
	assert.Equal(t, cfe.SourceInline, cfe.ClassifyPdfSource("data:application/pdf;base64,"+testPdfBase64))
	assert.Equal(t, cfe.SourceInline, cfe.ClassifyPdfSource(testPdfBase64))
	assert.Equal(t, cfe.SourceRemote, cfe.ClassifyPdfSource("https://cfe.example.com/1.pdf"))
	assert.Equal(t, cfe.SourceRemote, cfe.ClassifyPdfSource("ver portal"))

	assert.Equal(t, testPdfBytes, cfe.DecodeInlinePdf("data:application/pdf;base64,"+testPdfBase64))
	assert.Equal(t, testPdfBytes, cfe.DecodeInlinePdf(testPdfBase64))
	assert.Nil(t, cfe.DecodeInlinePdf("pendiente"))
	assert.Nil(t, cfe.DecodeInlinePdf("data:application/pdf;base64,"))
}
