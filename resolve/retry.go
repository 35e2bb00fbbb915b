package resolve

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/epaper"
)

// DefaultRetryDelays returns the pauses before each retry of a failed
// fetch: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retryable reports whether another attempt could succeed: transport
// failures and 5xx responses are retried, other statuses are final.
func retryable(err error) bool {
	switch epaper.ErrorCode(err) {
	case epaper.EINVALID, epaper.ENOTFOUND:
		return false
	}
	var status *epaper.StatusError
	if errors.As(err, &status) {
		return status.StatusCode >= 500
	}
	return true
}

// fetchWithRetries calls attempt once, then again after each of
// r.retryDelays while it keeps failing with a retryable error. If ctx ends
// during a pause the last fetch error is returned wrapping the ctx error.
func (r *Resolver) fetchWithRetries(ctx context.Context, url string, attempt func(ctx context.Context) (string, string, error)) (string, string, error) {
	html, finalURL, err := attempt(ctx)
	for i, delay := range r.retryDelays {
		if err == nil || !retryable(err) {
			break
		}
		r.logger.Debug("retry", "url", url, "attempt", i+2, "delay", delay, "err", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", "", epaper.Wrapf(ctx.Err(), epaper.EFETCH, "fetch %s: %s", url, epaper.ErrorMessage(err))
		case <-timer.C:
		}

		html, finalURL, err = attempt(ctx)
	}
	return html, finalURL, err
}
