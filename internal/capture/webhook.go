package capture

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/utils"
)

var ErrWebhookNotConfigured = errors.New("webhook not configured")

// Webhook posts captured contacts to the form-capture endpoint.
type Webhook struct {
	c      HTTPClient
	url    string
	secret string
	format string
	bo     utils.Backoff
	log    *slog.Logger
}

func NewWebhook(c HTTPClient, cfg config.Webhook, log *slog.Logger) *Webhook {
	return &Webhook{
		c:      c,
		url:    cfg.URL,
		secret: cfg.Secret,
		format: cfg.Format,
		bo:     utils.NewBackoff(200*time.Millisecond, cfg.Retries),
		log:    log,
	}
}

func (w *Webhook) Configured() bool { return w.url != "" }

// Send delivers one submission, retrying transport errors and 5xx answers.
// It returns how many attempts were made.
func (w *Webhook) Send(ctx context.Context, sub models.Submission) (int, error) {
	if !w.Configured() {
		return 0, ErrWebhookNotConfigured
	}
	body, ctype, err := w.encode(sub.Contact)
	if err != nil {
		return 0, err
	}
	var sig string
	if w.secret != "" {
		mac := hmac.New(sha256.New, []byte(w.secret))
		mac.Write(body)
		sig = hex.EncodeToString(mac.Sum(nil))
	}

	return w.bo.Do(ctx, func(i int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return utils.Permanent(err)
		}
		req.Header.Set("Content-Type", ctype)
		req.Header.Set("X-Submission-ID", sub.ID)
		if sig != "" {
			req.Header.Set("X-Signature", sig)
		}
		resp, err := w.c.Do(req)
		if err != nil {
			w.log.Warn("webhook attempt failed", slog.String("submission", sub.ID), slog.Int("attempt", i+1), slog.String("err", err.Error()))
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = fmt.Errorf("webhook non-2xx: %d body=%s", resp.StatusCode, string(b))
		w.log.Warn("webhook attempt rejected", slog.String("submission", sub.ID), slog.Int("attempt", i+1), slog.Int("status", resp.StatusCode))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return err
		}
		return utils.Permanent(err)
	})
}

func (w *Webhook) encode(c models.Contact) ([]byte, string, error) {
	if w.format == "json" {
		b, err := json.Marshal(c)
		return b, "application/json", err
	}
	v := url.Values{}
	v.Set("name", c.Name)
	v.Set("phone", c.Phone)
	v.Set("email", c.Email)
	v.Set("organization", c.Organization)
	return []byte(v.Encode()), "application/x-www-form-urlencoded", nil
}
