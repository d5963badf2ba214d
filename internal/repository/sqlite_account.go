package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo using a SQLite database.
type SQLiteAccountRepo struct {
	db db.DBTX
}

func NewSQLiteAccountRepo(conn db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: conn}
}

const accountColumns = `id, name, email, created_at`

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, strings.ToLower(a.Email), formatTime(a.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", a.Email, ErrConflict)
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, strings.ToLower(email))
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*domain.Account, error) {
	var (
		a       domain.Account
		created string
	)
	if err := s.Scan(&a.ID, &a.Name, &a.Email, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = t
	return &a, nil
}
