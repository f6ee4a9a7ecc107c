// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// EnrollHub uses it to seed the admin account from config.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return seedAdmin(ctx, appCfg, deps, logger)
}

// seedAdmin creates the configured admin account with full module
// permissions when it does not exist yet. A no-op when admin credentials
// are not configured or the username is already taken.
func seedAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminUsername == "" || appCfg.AdminPassword == "" {
		logger.Info("admin seeding skipped: no admin credentials configured")
		return nil
	}

	users := userstore.New(deps.MongoDatabase)

	_, err := users.GetByUsername(ctx, appCfg.AdminUsername)
	if err == nil {
		logger.Info("admin account already exists",
			zap.String("username", appCfg.AdminUsername))
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(appCfg.AdminPassword)
	if err != nil {
		return err
	}

	seeded, err := users.Create(ctx, models.User{
		Username:     appCfg.AdminUsername,
		Email:        appCfg.AdminEmail,
		PasswordHash: hash,
		Role:         "admin",
		Permissions:  models.FullPermissions(models.AdminModules),
	})
	if err != nil {
		// A concurrent replica may have seeded it first.
		if errors.Is(err, userstore.ErrDuplicateAccount) {
			logger.Info("admin account already exists",
				zap.String("username", appCfg.AdminUsername))
			return nil
		}
		return err
	}

	logger.Info("admin account seeded",
		zap.String("username", seeded.Username),
		zap.String("email", seeded.Email))
	return nil
}
