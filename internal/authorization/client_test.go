package authorization

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletpay/internal/common/money"
	"walletpay/internal/transfer"
	"walletpay/internal/transfer/domain"
)

func newTestTransfer(t *testing.T) *domain.Transfer {
	t.Helper()
	payer, err := domain.NewUserID("payer-1")
	require.NoError(t, err)
	payee, err := domain.NewUserID("payee-1")
	require.NoError(t, err)
	tr, err := domain.NewTransfer(payer, payee, money.FromCents(1000))
	require.NoError(t, err)
	return tr
}

func newTestClient(url string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(Config{BaseURL: url, Timeout: time.Second}, logger)
}

func TestAuthorizeApproved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"success","data":{"authorization":true}}`))
	}))
	defer srv.Close()

	decision := newTestClient(srv.URL).Authorize(context.Background(), newTestTransfer(t))
	assert.Equal(t, transfer.DecisionAuthorized, decision)
}

func TestAuthorizeDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":"fail","data":{"authorization":false}}`))
	}))
	defer srv.Close()

	decision := newTestClient(srv.URL).Authorize(context.Background(), newTestTransfer(t))
	assert.Equal(t, transfer.DecisionDenied, decision)
}

func TestAuthorizeServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	decision := newTestClient(srv.URL).Authorize(context.Background(), newTestTransfer(t))
	assert.Equal(t, transfer.DecisionTransportError, decision)
}
