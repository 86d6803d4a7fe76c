package notification

import (
	"context"
	"fmt"
	"log/slog"

	"walletpay/internal/common/events"
)

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Worker consumes transfer events and turns them into user notifications.
// A failed delivery returns an error so the subscriber NAKs the message
// and the broker redelivers it.
type Worker struct {
	sender Sender
	logger *slog.Logger
}

// NewWorker creates a new notification worker
func NewWorker(sender Sender, logger *slog.Logger) *Worker {
	return &Worker{
		sender: sender,
		logger: logger,
	}
}

// Handle processes a single transfer event.
func (w *Worker) Handle(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.EventTransferCompleted:
		var data events.TransferCompletedData
		if err := event.DecodeData(&data); err != nil {
			return fmt.Errorf("decoding transfer completed event: %w", err)
		}
		return w.notify(ctx, Notification{
			TransferID: data.TransferID,
			PayerID:    data.PayerID,
			PayeeID:    data.PayeeID,
			Amount:     data.Amount,
			Status:     data.Status,
		})
	default:
		// Not ours; acknowledge and move on.
		w.logger.Debug("ignoring event", "type", event.Type)
		return nil
	}
}

func (w *Worker) notify(ctx context.Context, n Notification) error {
	if err := w.sender.Send(ctx, n); err != nil {
		return fmt.Errorf("delivering notification for transfer %s: %w", n.TransferID, err)
	}

	w.logger.Info("notification sent",
		"transfer_id", n.TransferID,
		"payee_id", n.PayeeID,
	)

	return nil
}
