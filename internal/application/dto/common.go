package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva datos extra para conciliar o corregir (ej. campos faltantes,
// respuesta del proveedor cuando la factura se emitió pero no se guardó).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
