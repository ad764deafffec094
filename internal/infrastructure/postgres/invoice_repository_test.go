package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

var invoiceRowColumns = []string{
	"id", "gym_id", "payment_id", "member_id", "member_name", "total", "currency", "status",
	"invoice_number", "invoice_series", "external_id", "environment", "document_type",
	"issue_date", "due_date", "request_payload", "response_payload", "created_at", "updated_at",
}

func TestInvoiceRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO invoices`).
					WithArgs(
						"inv-1", "gym-1", "pay-1", nil, nil, pgxmock.AnyArg(), "UYU", "procesado",
						"000123", "A", nil, "TEST", 111,
						pgxmock.AnyArg(), nil, `{"lineas":"x"}`, `{"numero":"000123"}`,
					).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
		},
		{
			name: "db error",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO invoices`).WillReturnError(errConnClosed)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			inv := &entity.Invoice{
				ID:              "inv-1",
				GymID:           "gym-1",
				PaymentID:       "pay-1",
				Total:           decimal.RequireFromString("1500"),
				Currency:        "UYU",
				Status:          "procesado",
				InvoiceNumber:   strPtr("000123"),
				InvoiceSeries:   strPtr("A"),
				Environment:     strPtr("TEST"),
				DocumentType:    111,
				IssueDate:       now,
				RequestPayload:  map[string]string{"lineas": "x"},
				ResponsePayload: json.RawMessage(`{"numero":"000123"}`),
			}

			tt.mock(mock)
			err = NewInvoiceRepository(mock).Create(ctx, inv)
			if tt.wantErr {
				require.ErrorIs(t, err, errConnClosed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, now, inv.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvoiceRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	issue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM invoices WHERE id = \$1`).
			WithArgs("inv-1").
			WillReturnRows(pgxmock.NewRows(invoiceRowColumns).AddRow(
				"inv-1", "gym-1", "pay-1", strPtr("mem-1"), nil, decimal.RequireFromString("1500.50"), "UYU", "aceptado",
				strPtr("000123"), strPtr("A"), strPtr("cfe-9"), strPtr("PROD"), 111,
				issue, nil, strPtr(`{"lineas":"x","serie":"A"}`), strPtr(`{"data":{"pdf":"https://x"}}`), now, now,
			))

		inv, err := NewInvoiceRepository(mock).GetByID(ctx, "inv-1")
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, "mem-1", *inv.MemberID)
		assert.Nil(t, inv.MemberName)
		assert.True(t, decimal.RequireFromString("1500.5").Equal(inv.Total))
		assert.Equal(t, "PROD", *inv.Environment)
		assert.Nil(t, inv.DueDate)
		assert.Equal(t, map[string]string{"lineas": "x", "serie": "A"}, inv.RequestPayload)
		assert.JSONEq(t, `{"data":{"pdf":"https://x"}}`, string(inv.ResponsePayload))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM invoices`).WillReturnError(pgx.ErrNoRows)

		inv, err := NewInvoiceRepository(mock).GetByID(ctx, "inv-x")
		require.NoError(t, err)
		assert.Nil(t, inv)
	})
}

func TestInvoiceRepository_ListByPayment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	ten := decimal.NewFromInt(10)
	mock.ExpectQuery(`FROM invoices WHERE gym_id = \$1 AND payment_id = \$2`).
		WithArgs("gym-1", "pay-1").
		WillReturnRows(pgxmock.NewRows(invoiceRowColumns).
			AddRow("inv-2", "gym-1", "pay-1", nil, nil, ten, "UYU", "procesado", nil, nil, nil, nil, 111, now, &now, strPtr(`{}`), strPtr(`{"raw":"OK"}`), now, now).
			AddRow("inv-1", "gym-1", "pay-1", nil, nil, ten, "UYU", "rechazado", nil, nil, nil, nil, 111, now, nil, strPtr(`{}`), strPtr(`null`), now, now))

	list, err := NewInvoiceRepository(mock).ListByPayment(context.Background(), "gym-1", "pay-1")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "inv-2", list[0].ID)
	assert.NotNil(t, list[0].DueDate)
	assert.Nil(t, list[1].InvoiceNumber)
	assert.Nil(t, list[1].DueDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGymRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	docType := 101
	mock.ExpectQuery(`FROM gyms WHERE id = \$1`).
		WithArgs("gym-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "invoice_user_id", "invoice_company_id", "invoice_branch_code", "invoice_branch_id",
			"invoice_password", "invoice_environment", "invoice_customer_id", "invoice_series",
			"invoice_currency", "invoice_cotizacion", "invoice_document_type", "invoice_transfer_type", "invoice_rutneg",
		}).AddRow(
			"gym-1", "Centro", strPtr("u1"), nil, nil, nil,
			strPtr("secreto"), strPtr("prod"), nil, strPtr("B"),
			nil, decimal.NewNullDecimal(decimal.RequireFromString("39.5")), &docType, nil, nil,
		))

	g, err := NewGymRepository(mock).GetByID(context.Background(), "gym-1")

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Centro", g.Name)
	assert.Equal(t, "u1", *g.Billing.UserID)
	assert.Nil(t, g.Billing.CompanyID)
	assert.Equal(t, "prod", *g.Billing.Environment)
	require.True(t, g.Billing.Cotizacion.Valid)
	assert.Equal(t, "39.5", g.Billing.Cotizacion.Decimal.String())
	assert.Equal(t, 101, *g.Billing.DocumentType)
	assert.Nil(t, g.Billing.TransferType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGymRepository_GetByID_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM gyms`).WithArgs("gym-x").WillReturnError(pgx.ErrNoRows)

	g, err := NewGymRepository(mock).GetByID(context.Background(), "gym-x")
	require.NoError(t, err)
	assert.Nil(t, g)
}
