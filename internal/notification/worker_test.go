package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletpay/internal/common/events"
)

type fakeSender struct {
	sent []Notification
	err  error
}

func (f *fakeSender) Send(_ context.Context, n Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func newTestWorker(sender Sender) *Worker {
	return NewWorker(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func completedEvent(t *testing.T) *events.Event {
	t.Helper()
	event, err := events.NewEvent(events.EventTransferCompleted, "transfer", "t-1", events.TransferCompletedData{
		TransferID: "t-1",
		PayerID:    "payer-1",
		PayeeID:    "payee-1",
		Amount:     10000,
		Status:     "COMPLETED",
	})
	require.NoError(t, err)
	return event
}

func TestHandleTransferCompleted(t *testing.T) {
	sender := &fakeSender{}
	worker := newTestWorker(sender)

	require.NoError(t, worker.Handle(context.Background(), completedEvent(t)))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, Notification{
		TransferID: "t-1",
		PayerID:    "payer-1",
		PayeeID:    "payee-1",
		Amount:     10000,
		Status:     "COMPLETED",
	}, sender.sent[0])
}

func TestHandleDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("service unavailable")}
	worker := newTestWorker(sender)

	// The error must propagate so the message is redelivered.
	err := worker.Handle(context.Background(), completedEvent(t))
	assert.Error(t, err)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	sender := &fakeSender{}
	worker := newTestWorker(sender)

	event, err := events.NewEvent(events.EventTransferFailed, "transfer", "t-2", events.TransferFailedData{
		TransferID: "t-2",
	})
	require.NoError(t, err)

	require.NoError(t, worker.Handle(context.Background(), event))
	assert.Empty(t, sender.sent)
}
