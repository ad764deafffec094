// Package cfe es el adaptador HTTP hacia el proveedor de comprobantes fiscales electrónicos.
package cfe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/application/billing"
)

var (
	_ billing.InvoiceProvider = (*Client)(nil)
	_ billing.PdfFetcher      = (*Client)(nil)
)

// Client envía formularios de emisión al endpoint configurado y descarga PDFs remotos.
// No fija timeout propio: la cancelación viene del contexto del request.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient construye el cliente. httpClient nil usa uno nuevo sin timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Submit hace POST application/x-www-form-urlencoded y devuelve status y cuerpo crudo.
// Solo retorna error si no hubo respuesta HTTP.
func (c *Client) Submit(ctx context.Context, form map[string]string) (*billing.ProviderReply, error) {
	if strings.TrimSpace(c.endpoint) == "" {
		return nil, fmt.Errorf("cfe: endpoint de facturación no configurado")
	}

	values := make(url.Values, len(form))
	for k, v := range form {
		values.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("cfe: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cfe: enviar: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cfe: leer respuesta: %w", err)
	}
	return &billing.ProviderReply{StatusCode: resp.StatusCode, Body: body}, nil
}

// Fetch descarga el recurso con GET. Devuelve nil ante status no 2xx o fallo de red.
func (c *Client) Fetch(ctx context.Context, rawURL string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return body
}
