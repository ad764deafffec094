package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Invoice InvoiceConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona horaria de los gimnasios (fecha/hora de clases, fecha de emisión)
}

// Location devuelve la zona horaria configurada; si no se puede cargar usa time.Local.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DBConfig conexión a PostgreSQL. DatabaseURL, si viene, reemplaza al resto de los campos.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString DSN final para el pool.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return dsn.String()
}

type HTTPConfig struct {
	Host string
	Port int
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// InvoiceConfig endpoint del proveedor de facturación electrónica (CFE) y credenciales
// por defecto del proceso. Cada gimnasio puede sobrescribirlas en su registro.
// Los campos numéricos se guardan tal como llegan del entorno; el resolvedor de
// credenciales decide si son números válidos.
type InvoiceConfig struct {
	APIURL       string
	UserID       string
	CompanyID    string
	BranchCode   string
	BranchID     string
	Password     string
	Environment  string // TEST | PROD
	CustomerID   string
	Series       string
	Currency     string
	Cotizacion   string
	DocumentType string
	TransferType string
	Rutneg       string
}

// defaults valores usados cuando ni el entorno ni los archivos definen la clave.
var defaults = map[string]any{
	"APP_ENV":             "development",
	"APP_NAME":            "gimnasio-api",
	"LOG_LEVEL":           "info",
	"APP_TIMEZONE":        "America/Montevideo",
	"DB_HOST":             "localhost",
	"DB_PORT":             5432,
	"DB_USER":             "postgres",
	"DB_NAME":             "gimnasio",
	"DB_SSLMODE":          "disable",
	"HTTP_HOST":           "0.0.0.0",
	"HTTP_PORT":           8080,
	"INVOICE_ENVIRONMENT": "TEST",
}

// Load arma la configuración con este orden de prioridad: variables de entorno,
// ./config.* o ./config/config.*, .env y por último los valores por defecto.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// El tipo vacío deja que viper lo deduzca por la extensión.
	for _, file := range []struct{ name, typ string }{{".env", "env"}, {"config", ""}} {
		v.SetConfigName(file.name)
		v.SetConfigType(file.typ)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: leer %s: %w", file.name, err)
			}
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	str := v.GetString

	return &Config{
		App: AppConfig{
			Env:      str("APP_ENV"),
			Name:     str("APP_NAME"),
			LogLevel: str("LOG_LEVEL"),
			Timezone: str("APP_TIMEZONE"),
		},
		DB: DBConfig{
			DatabaseURL: str("DATABASE_URL"),
			Host:        str("DB_HOST"),
			Port:        intOrDefault(v, "DB_PORT"),
			User:        str("DB_USER"),
			Password:    str("DB_PASSWORD"),
			DBName:      str("DB_NAME"),
			SSLMode:     str("DB_SSLMODE"),
		},
		HTTP: HTTPConfig{
			Host: str("HTTP_HOST"),
			Port: intOrDefault(v, "HTTP_PORT"),
		},
		Invoice: InvoiceConfig{
			APIURL:       str("INVOICE_API_URL"),
			UserID:       str("INVOICE_USER_ID"),
			CompanyID:    str("INVOICE_COMPANY_ID"),
			BranchCode:   str("INVOICE_BRANCH_CODE"),
			BranchID:     str("INVOICE_BRANCH_ID"),
			Password:     str("INVOICE_PASSWORD"),
			Environment:  str("INVOICE_ENVIRONMENT"),
			CustomerID:   str("INVOICE_CUSTOMER_ID"),
			Series:       str("INVOICE_SERIES"),
			Currency:     str("INVOICE_CURRENCY"),
			Cotizacion:   str("INVOICE_COTIZACION"),
			DocumentType: str("INVOICE_DOCUMENT_TYPE"),
			TransferType: str("INVOICE_TRANSFER_TYPE"),
			Rutneg:       str("INVOICE_RUTNEG"),
		},
	}
}

// intOrDefault un valor no numérico vuelve al default en lugar de quedar en 0.
func intOrDefault(v *viper.Viper, key string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
		return n
	}
	n, _ := defaults[key].(int)
	return n
}
