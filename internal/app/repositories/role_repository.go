package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/dberrors"
)

// RoleRepository handles database operations for role definitions
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create inserts a new role definition
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (name, description, permissions)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, role.Name, role.Description, role.Permissions).
		Scan(&role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRoleAlreadyExists
		}
		return fmt.Errorf("error creating role: %w", err)
	}
	return nil
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT name, description, permissions, created_at, updated_at FROM roles WHERE name = $1`
	var role models.Role
	err := r.db.QueryRow(ctx, query, name).Scan(
		&role.Name, &role.Description, &role.Permissions, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error retrieving role: %w", err)
	}
	return &role, nil
}

// GetAll retrieves all role definitions
func (r *RoleRepository) GetAll(ctx context.Context) ([]*models.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, description, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.Name, &role.Description, &role.Permissions,
			&role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// Update persists the mutable fields of a role
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE roles SET description = $1, permissions = $2, updated_at = CURRENT_TIMESTAMP
		WHERE name = $3`,
		role.Description, role.Permissions, role.Name)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// Delete removes a role definition
func (r *RoleRepository) Delete(ctx context.Context, name string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("error deleting role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// EnsureDefaults inserts the built-in roles if they are missing
func (r *RoleRepository) EnsureDefaults(ctx context.Context, roles []*models.Role) error {
	for _, role := range roles {
		_, err := r.db.Exec(ctx, `
			INSERT INTO roles (name, description, permissions)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			role.Name, role.Description, role.Permissions)
		if err != nil {
			return fmt.Errorf("error seeding role %s: %w", role.Name, err)
		}
	}
	return nil
}
