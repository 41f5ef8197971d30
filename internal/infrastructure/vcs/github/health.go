package github

import (
	"context"
	"net/http"

	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// VerifyToken valida el token contra la API y retorna el login del usuario
// autenticado. Un 401/403 significa token inválido; cualquier otro error es
// un problema de red o de la API.
func VerifyToken(ctx context.Context, token string) (string, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return "", apperrors.ErrGitHubTokenInvalid.WithError(err)
		}
		return "", err
	}

	return user.GetLogin(), nil
}
