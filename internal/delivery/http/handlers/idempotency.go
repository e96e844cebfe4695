package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"
)

// recordingWriter keeps a copy of the response body for the idempotency store.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a request carrying an already
// seen Idempotency-Key. Requests without the header pass through untouched.
// Server errors release the key so the client may retry.
func Idempotency(store domain.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			badRequest(c, "failed to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.New()
		sum.Write([]byte(c.Request.Method + " " + c.Request.URL.Path + "\n"))
		sum.Write(body)
		hash := hex.EncodeToString(sum.Sum(nil))

		ctx := c.Request.Context()
		stored, err := store.Reserve(ctx, key, hash, ttl)
		if err != nil {
			writeError(c, err)
			return
		}
		if stored != nil {
			c.Header(IdempotentReplayHeader, "true")
			c.Data(stored.StatusCode, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		}

		w := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		// the outcome is already decided; record it even if the client went away
		ctx = context.WithoutCancel(ctx)
		status := w.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(ctx, key); err != nil {
				slog.Error("failed to release idempotency key", "key", key, "error", err)
			}
			return
		}
		record := domain.IdempotencyRecord{RequestHash: hash, StatusCode: status, Body: w.body.Bytes()}
		if err := store.Complete(ctx, key, record, ttl); err != nil {
			slog.Error("failed to store idempotent response", "key", key, "error", err)
		}
	}
}
