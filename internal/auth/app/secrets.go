package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/cryptox"
	"github.com/aussiebroadwan/tenantry/pkg/jwtx"
)

var (
	ErrSecretsRequired = errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET are required in prod")
	ErrPartialSecrets  = errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must be set together")
)

// LoadSecrets returns the configured HS256 secrets. Outside prod, when neither
// is set, it generates a random pair; tokens then stop verifying on restart.
func LoadSecrets(cfg Config, logger *slog.Logger) (service.TokenSecrets, error) {
	access, refresh := cfg.AccessSecret, cfg.RefreshSecret

	switch {
	case access == "" && refresh == "":
		if cfg.IsProd() {
			return service.TokenSecrets{}, ErrSecretsRequired
		}
		return generateSecrets(logger)
	case access == "" || refresh == "":
		return service.TokenSecrets{}, ErrPartialSecrets
	}

	if len(access) < jwtx.MinSecretBytes {
		return service.TokenSecrets{}, fmt.Errorf("AUTH_ACCESS_SECRET: %w", jwtx.ErrWeakSecret)
	}
	if len(refresh) < jwtx.MinSecretBytes {
		return service.TokenSecrets{}, fmt.Errorf("AUTH_REFRESH_SECRET: %w", jwtx.ErrWeakSecret)
	}
	if access == refresh {
		return service.TokenSecrets{}, service.ErrSameSecrets
	}

	logger.Info("using configured token secrets")
	return service.TokenSecrets{Access: []byte(access), Refresh: []byte(refresh)}, nil
}

func generateSecrets(logger *slog.Logger) (service.TokenSecrets, error) {
	access, err := cryptox.GenerateSecret(jwtx.MinSecretBytes)
	if err != nil {
		return service.TokenSecrets{}, fmt.Errorf("generate access secret: %w", err)
	}
	refresh, err := cryptox.GenerateSecret(jwtx.MinSecretBytes)
	if err != nil {
		return service.TokenSecrets{}, fmt.Errorf("generate refresh secret: %w", err)
	}

	logger.Warn("no token secrets configured, generated ephemeral secrets; issued tokens will not survive a restart")
	return service.TokenSecrets{Access: access, Refresh: refresh}, nil
}
