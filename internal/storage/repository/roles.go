package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auth-rbac/internal/models"
	"github.com/magabrotheeeer/auth-rbac/internal/storage"
)

// FindRoleByName возвращает роль по имени.
func (s *Storage) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	const op = "storage.FindRoleByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var role models.Role
	err := s.DB.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &role, nil
}

// FindRoleByID возвращает роль по ID.
func (s *Storage) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	const op = "storage.FindRoleByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var role models.Role
	err := s.DB.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &role, nil
}
