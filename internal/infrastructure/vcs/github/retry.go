package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/google/go-github/v80/github"
)

const (
	maxAttempts    = 3
	backoffMinWait = 4 * time.Second
	backoffMaxWait = 10 * time.Second
)

// sleepFunc permite inyectar el reloj en los tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func backoffWait(attempt int) time.Duration {
	wait := backoffMinWait << (attempt - 1)
	if wait > backoffMaxWait {
		return backoffMaxWait
	}
	return wait
}

// withRetry ejecuta la llamada con reintentos exponenciales ante fallas
// transitorias. Un límite de cuota espera hasta el reset y reanuda el mismo
// pedido sin consumir intentos. Los errores de credenciales cortan de inmediato.
func (ghc *GitHubClient) withRetry(ctx context.Context, operation string, call func() (*github.Response, error)) error {
	attempt := 1
	for {
		resp, err := call()
		if err == nil {
			return nil
		}

		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			wait := time.Until(rateErr.Rate.Reset.Time) + time.Second
			if wait < time.Second {
				wait = time.Second
			}
			logger.Warn(ctx, "límite de cuota de GitHub alcanzado, esperando el reset",
				"operation", operation,
				"wait", wait.Round(time.Second).String())
			if serr := ghc.sleep(ctx, wait); serr != nil {
				return apperrors.ErrGitHubRateLimit.WithError(serr)
			}
			continue
		}

		var abuseErr *github.AbuseRateLimitError
		if errors.As(err, &abuseErr) {
			wait := abuseErr.GetRetryAfter()
			if wait < time.Second {
				wait = time.Second
			}
			logger.Warn(ctx, "límite secundario de GitHub alcanzado",
				"operation", operation,
				"wait", wait.Round(time.Second).String())
			if serr := ghc.sleep(ctx, wait); serr != nil {
				return apperrors.ErrGitHubRateLimit.WithError(serr)
			}
			continue
		}

		if fatal := classifyFatal(resp, err); fatal != nil {
			return fatal
		}

		if attempt >= maxAttempts {
			return apperrors.ErrFetchFailed.WithError(err).WithContext("operation", operation)
		}

		wait := backoffWait(attempt)
		logger.Warn(ctx, "reintentando llamada a GitHub",
			"operation", operation,
			"attempt", attempt,
			"backoff", wait.String(),
			"error", err.Error())
		if serr := ghc.sleep(ctx, wait); serr != nil {
			return serr
		}
		attempt++
	}
}

// classifyFatal detecta los estados que un reintento no puede arreglar. Los
// 403 por cuota nunca llegan acá: go-github los convierte en RateLimitError.
func classifyFatal(resp *github.Response, err error) error {
	if resp == nil {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.ErrGitHubTokenInvalid.WithError(err)
	case http.StatusForbidden:
		return apperrors.ErrGitHubTokenInvalid.WithError(err).WithContext("status", resp.StatusCode)
	case http.StatusNotFound:
		return apperrors.ErrRepositoryNotFound.WithError(err)
	}
	return nil
}
