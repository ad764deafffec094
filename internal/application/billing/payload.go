package billing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Valores fijos cuando ni el caller ni la configuración informan el campo.
const (
	defaultSeries       = "A-A-A"
	defaultCurrency     = "UYU"
	defaultPaymentForm  = 1
	defaultCotizacion   = "1"
	defaultDocumentType = 111
	defaultCountry      = "UY"
	defaultCustomerName = "Cliente"

	issueDateLayout = "2006-01-02"
)

// PayloadInput datos del pago que alimentan los campos por defecto del formulario.
type PayloadInput struct {
	PaymentID  string
	MemberName *string
	Today      time.Time
}

// coerceString pasa un valor JSON a texto para el formulario. nil se omite.
func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// callerText devuelve el valor del caller si es un string no vacío.
func callerText(invoice map[string]any, key string) (string, bool) {
	s, ok := invoice[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// callerNumber devuelve el valor del caller si es un número JSON finito.
// Un número enviado como texto ("2") no cuenta.
func callerNumber(invoice map[string]any, key string) (string, bool) {
	var f float64
	switch x := invoice[key].(type) {
	case float64:
		f = x
	case json.Number:
		var err error
		if f, err = x.Float64(); err != nil {
			return "", false
		}
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return "", false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Lineas devuelve el campo "lineas" como texto recortado ("" si falta).
func Lineas(invoice map[string]any) string {
	s, _ := coerceString(invoice["lineas"])
	return strings.TrimSpace(s)
}

// BuildPayload arma el formulario plano que se envía al proveedor.
//
// Se hace en dos capas: primero todos los campos del caller pasados a texto, luego
// encima la capa de valores por defecto. Cada campo de esa segunda capa usa el
// valor del caller solo si pasa su chequeo de tipo, así que un caller que manda
// forma_pago como "2" (texto) termina enviando 1.
func BuildPayload(invoice map[string]any, cred Credentials, in PayloadInput) map[string]string {
	form := make(map[string]string, len(invoice)+17)
	for k, v := range invoice {
		if s, ok := coerceString(v); ok {
			form[k] = s
		}
	}

	for k, v := range defaultFields(invoice, cred, in) {
		form[k] = v
	}
	return form
}

func defaultFields(invoice map[string]any, cred Credentials, in PayloadInput) map[string]string {
	// text y number devuelven "" cuando no hay valor: el campo no se envía.
	text := func(key string, fallbacks ...string) string {
		if v, ok := callerText(invoice, key); ok {
			return v
		}
		for _, f := range fallbacks {
			if strings.TrimSpace(f) != "" {
				return f
			}
		}
		return ""
	}
	number := func(key string, fallbacks ...string) string {
		if v, ok := callerNumber(invoice, key); ok {
			return v
		}
		for _, f := range fallbacks {
			if f != "" {
				return f
			}
		}
		return ""
	}

	d := map[string]string{
		"usuario":         cred.UserID,
		"empresa":         cred.CompanyID,
		"codigo_sucursal": cred.BranchCode,
		"sucursal":        cred.BranchID,
		"password":        cred.Password,
	}
	set := func(key, v string) {
		if v != "" {
			d[key] = v
		}
	}

	memberName := ""
	if in.MemberName != nil {
		memberName = strings.TrimSpace(*in.MemberName)
	}
	cotizacion := ""
	if cred.Cotizacion != nil {
		cotizacion = cred.Cotizacion.String()
	}
	documentType := ""
	if cred.DocumentType != nil {
		documentType = strconv.Itoa(*cred.DocumentType)
	}
	transferType := ""
	if cred.TransferType != nil {
		transferType = strconv.Itoa(*cred.TransferType)
	}

	set("cliente", text("cliente", cred.CustomerID))
	set("referencia", text("referencia", in.PaymentID))
	set("serie", text("serie", cred.Series, defaultSeries))
	set("fecha_emision", text("fecha_emision", in.Today.Format(issueDateLayout)))
	set("moneda", text("moneda", cred.Currency, defaultCurrency))
	set("forma_pago", number("forma_pago", strconv.Itoa(defaultPaymentForm)))
	set("cotizacion", number("cotizacion", cotizacion, defaultCotizacion))
	set("tipo_comprobante", number("tipo_comprobante", documentType, strconv.Itoa(defaultDocumentType)))
	set("tipo_traslado", number("tipo_traslado", transferType))
	set("rutneg", text("rutneg", cred.Rutneg))
	set("pais", text("pais", defaultCountry))
	set("nombre_cliente", text("nombre_cliente", memberName, defaultCustomerName))
	return d
}
