package billing

import "context"

// ProviderReply respuesta HTTP del proveedor de facturación, sin interpretar.
type ProviderReply struct {
	StatusCode int
	Body       []byte
}

// InvoiceProvider envía el formulario de emisión al proveedor CFE.
// Retorna error solo ante fallos de transporte; un status no 2xx viene en la respuesta.
type InvoiceProvider interface {
	Submit(ctx context.Context, form map[string]string) (*ProviderReply, error)
}

// PdfFetcher descarga un PDF remoto. Devuelve nil si no se pudo obtener.
type PdfFetcher interface {
	Fetch(ctx context.Context, url string) []byte
}
