package cfe

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Variantes de nombres de campo que usan las distintas versiones de la API del proveedor.
var (
	statusKeys     = []string{"estado", "status", "resultado", "result"}
	numberKeys     = []string{"numero", "nro", "numero_cfe", "nroCFE", "number"}
	seriesKeys     = []string{"serie", "series"}
	externalIDKeys = []string{"id", "cfe_id", "idCFE", "uuid"}
)

// ProviderFields datos normalizados de la respuesta del proveedor. Vacío = no informado.
type ProviderFields struct {
	Status     string
	Number     string
	Series     string
	ExternalID string
}

// ExtractProviderFields toma cada dato de la primera clave conocida presente,
// primero en el nivel superior y luego dentro de "data".
func ExtractProviderFields(raw []byte) ProviderFields {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return ProviderFields{}
	}
	root := gjson.ParseBytes(raw)
	scopes := []gjson.Result{root}
	if data := root.Get("data"); data.IsObject() {
		scopes = append(scopes, data)
	}
	return ProviderFields{
		Status:     firstValue(scopes, statusKeys),
		Number:     firstValue(scopes, numberKeys),
		Series:     firstValue(scopes, seriesKeys),
		ExternalID: firstValue(scopes, externalIDKeys),
	}
}

func firstValue(scopes []gjson.Result, keys []string) string {
	for _, scope := range scopes {
		if !scope.IsObject() {
			continue
		}
		for _, k := range keys {
			v := scope.Get(k)
			switch v.Type {
			case gjson.String, gjson.Number:
				if s := strings.TrimSpace(v.String()); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
