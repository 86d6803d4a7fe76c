// Package api exposes transfer operations over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"walletpay/internal/common/api"
	"walletpay/internal/common/database"
	"walletpay/internal/transfer"
	"walletpay/internal/transfer/domain"
)

// TransferService is the slice of the transfer service the handler needs.
type TransferService interface {
	TransferMoney(ctx context.Context, cmd transfer.TransferCommand) (*transfer.TransferResult, error)
	GetTransfer(ctx context.Context, id string) (*domain.Transfer, error)
}

// Handler handles transfer HTTP requests
type Handler struct {
	service TransferService
}

// NewHandler creates a new transfer handler
func NewHandler(service TransferService) *Handler {
	return &Handler{service: service}
}

// Routes returns the transfer routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/transfers", h.CreateTransfer)
	r.Get("/transfers/{id}", h.GetTransfer)

	return r
}

// TransferResponse is the API shape of a transfer
type TransferResponse struct {
	ID            string `json:"id"`
	PayerID       string `json:"payer"`
	PayeeID       string `json:"payee"`
	AmountCents   int64  `json:"value"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// CreateTransfer handles POST /transfers
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var cmd transfer.TransferCommand
	if err := api.DecodeAndValidate(r, &cmd); err != nil {
		api.ValidationError(w, err)
		return
	}

	result, err := h.service.TransferMoney(r.Context(), cmd)
	if err != nil {
		writeTransferError(w, err)
		return
	}

	if result.Status == domain.TransferFailed {
		api.UnprocessableEntity(w, api.ErrCodeTransferFailed, result.FailureReason)
		return
	}

	api.WriteData(w, http.StatusCreated, result)
}

// GetTransfer handles GET /transfers/{id}
func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.service.GetTransfer(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransfer):
			api.BadRequest(w, "invalid transfer id")
		case database.IsNotFound(err):
			api.NotFound(w, "transfer not found")
		default:
			api.InternalError(w, "failed to load transfer")
		}
		return
	}

	api.WriteData(w, http.StatusOK, TransferResponse{
		ID:            t.ID().String(),
		PayerID:       t.PayerID().String(),
		PayeeID:       t.PayeeID().String(),
		AmountCents:   t.Amount().Cents(),
		Status:        string(t.Status()),
		FailureReason: t.FailureReason(),
	})
}

func writeTransferError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyUserID), errors.Is(err, domain.ErrInvalidTransfer):
		api.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrSelfTransfer), errors.Is(err, domain.ErrNonPositiveAmount):
		api.UnprocessableEntity(w, api.ErrCodeInvalidTransfer, err.Error())
	case errors.Is(err, domain.ErrUserCannotSendMoney):
		api.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		api.UnprocessableEntity(w, api.ErrCodeInsufficientFunds, err.Error())
	case errors.Is(err, transfer.ErrPayerNotFound), errors.Is(err, transfer.ErrPayeeNotFound):
		api.NotFound(w, err.Error())
	default:
		api.InternalError(w, "failed to execute transfer")
	}
}
