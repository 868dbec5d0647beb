package links

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/docaudit/internal/config"
)

// statusErr carries a terminal HTTP status through the retry layer.
type statusErr struct {
	code int
}

func (e *statusErr) Error() string {
	return fmt.Sprintf("HTTP status %d", e.code)
}

// Prober performs lightweight existence checks for canonical URLs.
// One Prober is scoped to a single pipeline run.
type Prober struct {
	client  *http.Client
	cfg     config.LinksCfg
	logger  *slog.Logger
	timeout time.Duration
}

// NewProber creates a prober with its own HTTP client.
func NewProber(cfg config.LinksCfg, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		client:  &http.Client{},
		cfg:     cfg,
		logger:  logger,
		timeout: time.Duration(cfg.TimeoutSeconds * float64(time.Second)),
	}
}

// Probe checks one canonical URL. Transient network failures, timeouts,
// and 5xx responses are retried with exponential backoff; the terminal
// failure mode determines the classification. Probe never returns an
// error: every outcome is data.
func (p *Prober) Probe(ctx context.Context, o occurrence) Result {
	res := Result{URL: o.raw, PageIndex: o.page}

	var lastCode int
	var lastTimeout bool

	err := retry.Do(
		func() error {
			res.Attempts++
			code, err := p.attempt(ctx, o.raw)
			lastCode = code
			if err != nil {
				lastTimeout = isTimeout(err)
				return err
			}
			lastTimeout = false
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(p.cfg.MaxRetries)+1),
		retry.Delay(time.Duration(p.cfg.BackoffBaseMS)*time.Millisecond),
		retry.MaxDelay(time.Duration(p.cfg.BackoffCapMS)*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying link probe", "url", o.raw, "attempt", n+1, "error", err)
		}),
	)

	switch {
	case err == nil:
		res.Status = StatusOK
		res.HTTPCode = lastCode
	case ctx.Err() != nil || lastTimeout:
		// Run cancellation abandons the probe; the URL stays unresolved.
		res.Status = StatusTimeout
	default:
		res.Status = StatusUnreachable
		var se *statusErr
		if errors.As(err, &se) {
			res.HTTPCode = se.code
		} else if lastCode >= 500 {
			res.HTTPCode = lastCode
		}
	}
	return res
}

// attempt issues one HEAD probe with the per-request timeout, falling
// back to a one-byte ranged GET when the server rejects HEAD.
func (p *Prober) attempt(ctx context.Context, rawURL string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	code, err := p.request(reqCtx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	if code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented {
		code, err = p.request(reqCtx, http.MethodGet, rawURL)
		if err != nil {
			return 0, err
		}
	}

	return statusOutcome(code)
}

// statusOutcome classifies a final HTTP status: 2xx-3xx succeed, 5xx are
// retried, everything else (including 1xx) is a terminal failure.
func statusOutcome(code int) (int, error) {
	switch {
	case code >= 200 && code < 400:
		return code, nil
	case code >= 500:
		return code, fmt.Errorf("server error: HTTP %d", code)
	default:
		return code, retry.Unrecoverable(&statusErr{code: code})
	}
}

func (p *Prober) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, retry.Unrecoverable(err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
