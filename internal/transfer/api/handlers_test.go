package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonapi "walletpay/internal/common/api"
	"walletpay/internal/common/database"
	"walletpay/internal/common/money"
	"walletpay/internal/transfer"
	"walletpay/internal/transfer/domain"
)

type stubService struct {
	result      *transfer.TransferResult
	transferErr error
	transfer    *domain.Transfer
	getErr      error
}

func (s *stubService) TransferMoney(context.Context, transfer.TransferCommand) (*transfer.TransferResult, error) {
	return s.result, s.transferErr
}

func (s *stubService) GetTransfer(_ context.Context, id string) (*domain.Transfer, error) {
	if _, err := domain.ParseTransferID(id); err != nil {
		return nil, err
	}
	return s.transfer, s.getErr
}

func postTransfer(t *testing.T, svc TransferService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc).Routes().ServeHTTP(rec, req)
	return rec
}

func TestCreateTransferSuccess(t *testing.T) {
	svc := &stubService{result: &transfer.TransferResult{
		TransferID: domain.NewTransferID().String(),
		Status:     domain.TransferCompleted,
	}}

	rec := postTransfer(t, svc, `{"payer":"u1","payee":"u2","value":10000}`)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp commonapi.Response[transfer.TransferResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.TransferCompleted, resp.Data.Status)
}

func TestCreateTransferFailedAuthorization(t *testing.T) {
	svc := &stubService{result: &transfer.TransferResult{
		TransferID:    domain.NewTransferID().String(),
		Status:        domain.TransferFailed,
		FailureReason: "Authorization denied",
	}}

	rec := postTransfer(t, svc, `{"payer":"u1","payee":"u2","value":10000}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp commonapi.Response[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, commonapi.ErrCodeTransferFailed, resp.Error.Code)
}

func TestCreateTransferErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"self transfer", domain.ErrSelfTransfer, http.StatusUnprocessableEntity},
		{"non positive amount", domain.ErrNonPositiveAmount, http.StatusUnprocessableEntity},
		{"merchant payer", domain.ErrUserCannotSendMoney, http.StatusForbidden},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"payer not found", transfer.ErrPayerNotFound, http.StatusNotFound},
		{"payee not found", transfer.ErrPayeeNotFound, http.StatusNotFound},
		{"empty user id", domain.ErrEmptyUserID, http.StatusBadRequest},
		{"storage blew up", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTransfer(t, &stubService{transferErr: tt.err},
				`{"payer":"u1","payee":"u2","value":100}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCreateTransferValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing payer", `{"payee":"u2","value":100}`},
		{"missing value", `{"payer":"u1","payee":"u2"}`},
		{"negative value", `{"payer":"u1","payee":"u2","value":-5}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTransfer(t, &stubService{}, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestGetTransfer(t *testing.T) {
	payer, err := domain.NewUserID("u1")
	require.NoError(t, err)
	payee, err := domain.NewUserID("u2")
	require.NoError(t, err)
	stored, err := domain.NewTransfer(payer, payee, money.FromCents(4200))
	require.NoError(t, err)

	svc := &stubService{transfer: stored}

	req := httptest.NewRequest(http.MethodGet, "/transfers/"+stored.ID().String(), nil)
	rec := httptest.NewRecorder()
	NewHandler(svc).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp commonapi.Response[TransferResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, stored.ID().String(), resp.Data.ID)
	assert.Equal(t, int64(4200), resp.Data.AmountCents)
	assert.Equal(t, "PENDING", resp.Data.Status)
}

func TestGetTransferInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transfers/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransferNotFound(t *testing.T) {
	svc := &stubService{getErr: database.ErrNotFound}

	req := httptest.NewRequest(http.MethodGet, "/transfers/"+domain.NewTransferID().String(), nil)
	rec := httptest.NewRecorder()
	NewHandler(svc).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
