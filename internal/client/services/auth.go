// Package services contains application services for the tsheets client.
// This file defines the authentication service: storing, loading and
// verifying the API token, and removing it on logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/filex"
	"github.com/dmitrijs2005/tsheets/internal/logging"
)

// AuthService defines token operations for the CLI.
//
// Contract:
//   - SaveToken: persist the token with owner-only permissions.
//   - LoadToken: read the stored token; missing or blank is common.ErrNoToken.
//   - Verify: check a token by fetching the current user through c.
//   - Logout: remove the stored token. Removing a missing token is not an
//     error.
type AuthService interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	Verify(ctx context.Context, c client.Client) (models.User, error)
	Logout(ctx context.Context) error
}

// authService keeps the token in a single file.
type authService struct {
	tokenFile string
	log       logging.Logger
}

func NewAuthService(tokenFile string, log logging.Logger) AuthService {
	return &authService{tokenFile: tokenFile, log: log}
}

func (a *authService) SaveToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrNoToken
	}
	if err := filex.WriteSecret(a.tokenFile, []byte(token+"\n")); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	a.log.Info(ctx, "token saved", "path", a.tokenFile)
	return nil
}

func (a *authService) LoadToken(ctx context.Context) (string, error) {
	token, err := filex.ReadTrimmed(a.tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", a.tokenFile, common.ErrNoToken)
		}
		return "", fmt.Errorf("reading token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("%s is empty: %w", a.tokenFile, common.ErrNoToken)
	}
	return token, nil
}

func (a *authService) Verify(ctx context.Context, c client.Client) (models.User, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("verifying token: %w", err)
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	path, err := filex.ExpandHome(a.tokenFile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	a.log.Info(ctx, "token removed", "path", a.tokenFile)
	return nil
}
