package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/milavdabgar/gpp-portal/internal/app/models"
	appRepos "github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/config"
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
)

// roleDescriptions holds the seed descriptions for the built-in roles.
var roleDescriptions = map[string]string{
	appModels.RoleAdmin:     "Full administrative access to the portal",
	appModels.RolePrincipal: "Institute-level oversight and reporting",
	appModels.RoleHOD:       "Department-level administration",
	appModels.RoleFaculty:   "Teaching staff access",
	appModels.RoleStudent:   "Student self-service access",
	appModels.RoleJury:      "Project fair evaluation access",
}

// CreateDefaultData seeds the built-in roles and the initial admin account.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	roleRepo := appRepos.NewRoleRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (roles, admin account)...")
	var finalErr error

	roles := make([]*appModels.Role, 0, len(appModels.DefaultRoles))
	for _, name := range appModels.DefaultRoles {
		roles = append(roles, &appModels.Role{
			Name:        name,
			Description: roleDescriptions[name],
			Permissions: []string{},
		})
	}
	if err := roleRepo.EnsureDefaults(ctx, roles); err != nil {
		lgr.Error().Err(err).Msg("Error seeding default roles")
		finalErr = errors.Join(finalErr, err)
	}

	if cfg.Institute.AdminEmail == "" || cfg.Institute.AdminPass == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping admin account seed")
		return finalErr
	}

	exists, err := userRepo.ExistsByEmail(ctx, cfg.Institute.AdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing admin account")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Debug().Str("email", cfg.Institute.AdminEmail).Msg("Admin account already present")
		return finalErr
	}

	hashed, err := auth.HashPassword(cfg.Institute.AdminPass)
	if err != nil {
		return errors.Join(finalErr, fmt.Errorf("hashing admin password: %w", err))
	}

	admin := &appModels.User{
		Name:         "Administrator",
		Email:        cfg.Institute.AdminEmail,
		Password:     hashed,
		Roles:        []string{appModels.RoleAdmin},
		SelectedRole: appModels.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Str("email", admin.Email).Msg("Admin account created")

	return finalErr
}
