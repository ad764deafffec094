package cfe

import (
	"regexp"
	"strings"
)

var fileNameUnsafeRe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// InvoiceFileName arma el nombre del PDF con serie, número e id (los que haya),
// unidos por guion. Sin ninguno usa "factura".
func InvoiceFileName(series, number, id string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{series, number, id} {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, fileNameUnsafeRe.ReplaceAllString(p, "_"))
	}
	if len(parts) == 0 {
		return "factura.pdf"
	}
	return strings.Join(parts, "-") + ".pdf"
}
