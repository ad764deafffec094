package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

func fullDefaults() ProviderDefaults {
	return ProviderDefaults{
		UserID:      "u-def",
		CompanyID:   "c-def",
		BranchCode:  "bc-def",
		BranchID:    "b-def",
		Password:    "p-def",
		Environment: "test",
	}
}

func TestResolveCredentials_GimnasioGanaSobreDefault(t *testing.T) {
	code := 101
	gym := entity.GymBillingSettings{
		UserID:       strPtr("u-gym"),
		Password:     strPtr("  "),
		Environment:  strPtr("prod"),
		Series:       strPtr("B"),
		Cotizacion:   decimal.NewNullDecimal(decimal.RequireFromString("39.5")),
		DocumentType: &code,
	}
	def := fullDefaults()
	def.Cotizacion = "40"
	def.DocumentType = "111"

	c, err := ResolveCredentials(gym, def)

	require.NoError(t, err)
	assert.Equal(t, "u-gym", c.UserID)
	assert.Equal(t, "p-def", c.Password, "un valor en blanco del gimnasio no cuenta")
	require.NotNil(t, c.Environment)
	assert.Equal(t, "PROD", *c.Environment)
	assert.Equal(t, "B", c.Series)
	require.NotNil(t, c.Cotizacion)
	assert.Equal(t, "39.5", c.Cotizacion.String())
	require.NotNil(t, c.DocumentType)
	assert.Equal(t, 101, *c.DocumentType)
	assert.Nil(t, c.TransferType)
}

func TestResolveCredentials_CodigosInvalidosCaenAlDefault(t *testing.T) {
	zero := 0
	gym := entity.GymBillingSettings{DocumentType: &zero}
	def := fullDefaults()
	def.DocumentType = "112"
	def.TransferType = "no-numero"

	c, err := ResolveCredentials(gym, def)

	require.NoError(t, err)
	assert.Equal(t, 112, *c.DocumentType)
	assert.Nil(t, c.TransferType)
}

func TestResolveCredentials_FaltaPassword(t *testing.T) {
	def := fullDefaults()
	def.Password = ""

	_, err := ResolveCredentials(entity.GymBillingSettings{}, def)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var missing *domain.MissingCredentialsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"password"}, missing.Fields)
}

func TestResolveCredentials_FaltanVarias(t *testing.T) {
	_, err := ResolveCredentials(entity.GymBillingSettings{BranchID: strPtr("b")}, ProviderDefaults{})

	var missing *domain.MissingCredentialsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"user_id", "company_id", "branch_code", "password"}, missing.Fields)
}

func TestNormalizeEnvironment(t *testing.T) {
	cases := map[string]*string{
		"TEST":    strPtr("TEST"),
		" prod ":  strPtr("PROD"),
		"staging": nil,
		"":        nil,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeEnvironment(in), in)
	}
}
