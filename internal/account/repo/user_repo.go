package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("duplicate user")
)

// Store is the credential store contract. Lookups return ErrNotFound when
// no row matches.
type Store interface {
	Add(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepo provides data access for the ApplicationUsers table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

var _ Store = (*UserRepo)(nil)

// userRow mirrors the quoted column names of the table.
type userRow struct {
	ID        uuid.UUID `db:"Id"`
	FirstName string    `db:"FirstName"`
	LastName  string    `db:"LastName"`
	Email     string    `db:"Email"`
	Password  string    `db:"Password"`
	Role      int       `db:"Role"`
}

func (r userRow) toEntity() *entity.User {
	return &entity.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      entity.Role(r.Role),
	}
}

// EnsureTable creates the ApplicationUsers table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS "ApplicationUsers" (
  "Id" UUID PRIMARY KEY,
  "FirstName" TEXT NOT NULL DEFAULT '',
  "LastName" TEXT NOT NULL DEFAULT '',
  "Email" TEXT NOT NULL DEFAULT '',
  "Password" TEXT NOT NULL DEFAULT '',
  "Role" INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS "IX_ApplicationUsers_Email" ON "ApplicationUsers" ("Email");
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Add inserts a new row. A primary key collision is reported as ErrDuplicate.
func (r *UserRepo) Add(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO "ApplicationUsers" ("Id","FirstName","LastName","Email","Password","Role") VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.FirstName, u.LastName, u.Email, u.Password, int(u.Role))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("add user %s: %w", u.ID, ErrDuplicate)
		}
		return fmt.Errorf("add user %s: %w", u.ID, err)
	}
	return nil
}

// GetByEmail returns the user with an exact (case-sensitive) email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT "Id","FirstName","LastName","Email","Password","Role" FROM "ApplicationUsers" WHERE "Email"=$1 LIMIT 1`
	var row userRow
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return row.toEntity(), nil
}

// GetByID fetches a full user row.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	const q = `SELECT "Id","FirstName","LastName","Email","Password","Role" FROM "ApplicationUsers" WHERE "Id"=$1`
	var row userRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM "ApplicationUsers" WHERE "Email"=$1)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, q, email); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return ok, nil
}

// Update replaces every column of the row identified by u.ID.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	const q = `UPDATE "ApplicationUsers" SET "FirstName"=$2,"LastName"=$3,"Email"=$4,"Password"=$5,"Role"=$6 WHERE "Id"=$1`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.FirstName, u.LastName, u.Email, u.Password, int(u.Role))
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the row; deleting a missing id is not an error.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM "ApplicationUsers" WHERE "Id"=$1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
