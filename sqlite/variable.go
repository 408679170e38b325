package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/offerdoc"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ offerdoc.VariableListService = (*VariableListService)(nil)

// VariableListService implements offerdoc.VariableListService using SQLite.
type VariableListService struct {
	db *DB
}

// NewVariableListService creates a new VariableListService.
func NewVariableListService(db *DB) *VariableListService {
	return &VariableListService{db: db}
}

// CreateVariableList creates a new variable list with its variables.
func (s *VariableListService) CreateVariableList(ctx context.Context, list *offerdoc.VariableList) error {
	if err := list.Validate(); err != nil {
		return err
	}

	list.ID = uuid.New().String()
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO variable_lists (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, list.ID, list.Name, now.Format(time.RFC3339), now.Format(time.RFC3339)); err != nil {
		return nameConflict(err, list.Name)
	}

	if err := insertVariables(ctx, tx, list); err != nil {
		return err
	}
	return tx.Commit()
}

// FindVariableListByID retrieves a variable list by ID.
func (s *VariableListService) FindVariableListByID(ctx context.Context, id string) (*offerdoc.VariableList, error) {
	return s.findOne(ctx, "id", id)
}

// FindVariableListByName retrieves a variable list by name.
func (s *VariableListService) FindVariableListByName(ctx context.Context, name string) (*offerdoc.VariableList, error) {
	return s.findOne(ctx, "name", name)
}

func (s *VariableListService) findOne(ctx context.Context, column, value string) (*offerdoc.VariableList, error) {
	var list offerdoc.VariableList
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM variable_lists
		WHERE `+column+` = ?
	`, value).Scan(&list.ID, &list.Name, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, offerdoc.Errorf(offerdoc.ENOTFOUND, "variable list %q not found", value)
	}
	if err != nil {
		return nil, err
	}

	if list.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if list.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	if list.Variables, err = s.findVariables(ctx, list.ID); err != nil {
		return nil, err
	}
	return &list, nil
}

// FindVariableLists retrieves all variable lists ordered by name.
func (s *VariableListService) FindVariableLists(ctx context.Context) ([]*offerdoc.VariableList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM variable_lists
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*offerdoc.VariableList
	for rows.Next() {
		var list offerdoc.VariableList
		var createdAt, updatedAt string
		if err := rows.Scan(&list.ID, &list.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if list.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if list.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		lists = append(lists, &list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Variables are loaded after the cursor is closed; the pool has a single connection.
	rows.Close()
	for _, list := range lists {
		if list.Variables, err = s.findVariables(ctx, list.ID); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// UpdateVariableList replaces the name and variables of a list.
func (s *VariableListService) UpdateVariableList(ctx context.Context, list *offerdoc.VariableList) error {
	if err := list.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	list.UpdatedAt = time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		UPDATE variable_lists
		SET name = ?, updated_at = ?
		WHERE id = ?
	`, list.Name, list.UpdatedAt.Format(time.RFC3339), list.ID)
	if err != nil {
		return nameConflict(err, list.Name)
	}
	if err := checkAffected(result, "variable list %q not found", list.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM variables WHERE list_id = ?", list.ID); err != nil {
		return err
	}
	if err := insertVariables(ctx, tx, list); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteVariableList permanently removes a variable list and its variables.
func (s *VariableListService) DeleteVariableList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM variable_lists WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkAffected(result, "variable list %q not found", id)
}

func (s *VariableListService) findVariables(ctx context.Context, listID string) ([]offerdoc.Variable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value
		FROM variables
		WHERE list_id = ?
		ORDER BY position
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vars := []offerdoc.Variable{}
	for rows.Next() {
		var v offerdoc.Variable
		if err := rows.Scan(&v.Key, &v.Value); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, rows.Err()
}

func insertVariables(ctx context.Context, tx *sql.Tx, list *offerdoc.VariableList) error {
	for i, v := range list.Variables {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO variables (list_id, position, key, value)
			VALUES (?, ?, ?, ?)
		`, list.ID, i, v.Key, v.Value); err != nil {
			return fmt.Errorf("failed to insert variable %q: %w", v.Key, err)
		}
	}
	return nil
}

// nameConflict maps a unique constraint violation on the list name to ECONFLICT.
func nameConflict(err error, name string) error {
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return offerdoc.Errorf(offerdoc.ECONFLICT, "variable list %q already exists", name)
	}
	return err
}
