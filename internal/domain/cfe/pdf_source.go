// Package cfe reúne la lógica pura alrededor de los comprobantes fiscales
// electrónicos (CFE) que devuelve el proveedor: ubicar el PDF dentro de una
// respuesta sin esquema fijo, decodificarlo y nombrar el archivo.
package cfe

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	pdfDataURLRe = regexp.MustCompile(`(?i)^data:application/pdf[^,]*;base64,`)
	httpURLRe    = regexp.MustCompile(`(?i)^https?://\S+$`)
	base64Re     = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

// minBareBase64Len largo mínimo para aceptar un string base64 "suelto" como PDF.
const minBareBase64Len = 50

// pdfKeyHints fragmentos de nombre de clave que sugieren un PDF o un enlace a él.
var pdfKeyHints = []string{"pdf", "archivo", "document", "comprobante", "enlace", "link", "url", "base64"}

// Finder recorre un documento JSON en profundidad buscando el primer string que
// cumpla Match. En cada objeto visita primero las claves cuyo nombre contiene
// alguno de KeyHints y después todas las claves, en el orden del documento.
// Un string bajo una clave sugerida se acepta aunque no cumpla Match.
type Finder struct {
	Match    func(s string) bool
	KeyHints []string
}

// nodeID identifica un objeto por su posición dentro del documento original.
type nodeID struct {
	index int
	size  int
}

// Find devuelve el primer string aceptado o ("", false).
func (f Finder) Find(doc gjson.Result) (string, bool) {
	visited := make(map[nodeID]struct{})
	return f.visit(doc, false, visited)
}

func (f Finder) visit(node gjson.Result, hinted bool, visited map[nodeID]struct{}) (string, bool) {
	switch {
	case node.Type == gjson.String:
		s := node.String()
		if f.Match != nil && f.Match(s) {
			return s, true
		}
		if hinted && strings.TrimSpace(s) != "" {
			return s, true
		}
		return "", false

	case node.IsArray():
		var (
			found string
			ok    bool
		)
		node.ForEach(func(_, el gjson.Result) bool {
			found, ok = f.visit(el, hinted, visited)
			return !ok
		})
		return found, ok

	case node.IsObject():
		id := nodeID{index: node.Index, size: len(node.Raw)}
		if _, seen := visited[id]; seen {
			return "", false
		}
		visited[id] = struct{}{}

		var (
			found string
			ok    bool
		)
		node.ForEach(func(key, child gjson.Result) bool {
			if !f.isHint(key.String()) {
				return true
			}
			found, ok = f.visit(child, true, visited)
			return !ok
		})
		if ok {
			return found, true
		}
		node.ForEach(func(key, child gjson.Result) bool {
			found, ok = f.visit(child, f.isHint(key.String()), visited)
			return !ok
		})
		return found, ok
	}
	return "", false
}

func (f Finder) isHint(key string) bool {
	k := strings.ToLower(key)
	for _, h := range f.KeyHints {
		if strings.Contains(k, h) {
			return true
		}
	}
	return false
}

// IsPdfCandidate reconoce por su forma un string que puede ser un PDF:
// data URL application/pdf en base64, URL http(s) o base64 suelto de más de 50 caracteres.
// El string se evalúa tal cual: con espacios alrededor no es candidato.
func IsPdfCandidate(s string) bool {
	switch {
	case pdfDataURLRe.MatchString(s):
		return true
	case httpURLRe.MatchString(s):
		return true
	default:
		return isBareBase64(s) && len(s) > minBareBase64Len
	}
}

func isBareBase64(s string) bool {
	return !strings.Contains(s, "http") && base64Re.MatchString(s)
}

var pdfFinder = Finder{Match: IsPdfCandidate, KeyHints: pdfKeyHints}

// FindInvoicePdfSource busca dentro de la respuesta guardada del proveedor el
// string que representa el PDF (base64, data URL o enlace). La forma de la
// respuesta la decide el proveedor, así que la búsqueda es heurística.
func FindInvoicePdfSource(payload []byte) (string, bool) {
	if len(payload) == 0 || !gjson.ValidBytes(payload) {
		return "", false
	}
	return pdfFinder.Find(gjson.ParseBytes(payload))
}

// SourceKind cómo hay que obtener los bytes de una fuente de PDF.
type SourceKind int

const (
	SourceInline SourceKind = iota // base64 (con o sin prefijo data URL)
	SourceRemote                   // URL a descargar
)

// ClassifyPdfSource decide si la fuente se decodifica localmente o se descarga.
func ClassifyPdfSource(src string) SourceKind {
	s := strings.TrimSpace(src)
	if pdfDataURLRe.MatchString(s) || isBareBase64(s) {
		return SourceInline
	}
	return SourceRemote
}

// DecodeInlinePdf decodifica una fuente inline. Devuelve nil si el contenido no es base64 válido.
func DecodeInlinePdf(src string) []byte {
	s := strings.TrimSpace(src)
	if loc := pdfDataURLRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b
	}
	return nil
}
