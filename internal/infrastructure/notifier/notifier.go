package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

// WithdrawalNotifier POSTs withdrawal status changes to a configured URL.
// A notifier without URL does nothing.
type WithdrawalNotifier struct {
	callbackURL string
	client      *http.Client
}

func NewWithdrawalNotifier(callbackURL string, timeout time.Duration) *WithdrawalNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WithdrawalNotifier{
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func PayloadFromWithdrawal(w *domain.WithdrawalRequest) WithdrawalCallbackPayload {
	return WithdrawalCallbackPayload{
		WithdrawalID:  w.ID,
		Reference:     w.Reference,
		SellerID:      w.SellerID,
		Amount:        w.Amount.StringFixed(domain.MoneyPlaces),
		Status:        string(w.Status),
		AdminNote:     w.AdminNote,
		TransactionID: w.TransactionID,
		ProcessedAt:   w.ProcessedAt,
	}
}

// NotifyWithdrawal fires the callback in the background.
func (n *WithdrawalNotifier) NotifyWithdrawal(w *domain.WithdrawalRequest) {
	if n == nil || n.callbackURL == "" {
		return
	}
	payload := PayloadFromWithdrawal(w)
	go func() {
		if err := n.Send(context.Background(), payload); err != nil {
			slog.Error("withdrawal callback failed", "withdrawal_id", payload.WithdrawalID, "error", err)
		}
	}()
}

func (n *WithdrawalNotifier) Send(ctx context.Context, payload WithdrawalCallbackPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal callback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}
	slog.Debug("withdrawal callback sent", "url", n.callbackURL, "status", payload.Status)
	return nil
}
