package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"creditflow/internal/credit"
)

// Applications reads applicant records. A small read-through LRU keeps
// repeat lookups off the database; records are immutable so entries never
// go stale.
type Applications struct {
	db    *DB
	cache *lru.Cache[int, credit.ApplicationRecord]
}

func NewApplications(db *DB) (*Applications, error) {
	cache, err := lru.New[int, credit.ApplicationRecord](256)
	if err != nil {
		return nil, err
	}
	return &Applications{db: db, cache: cache}, nil
}

// GetByID returns the application record, or ErrNotFound.
func (a *Applications) GetByID(ctx context.Context, id int) (credit.ApplicationRecord, error) {
	if rec, ok := a.cache.Get(id); ok {
		return rec, nil
	}
	var rec credit.ApplicationRecord
	err := a.db.sql.QueryRowContext(ctx, `
SELECT id, full_name, date_of_birth, address, national_id, income, expenses, credit_score
FROM applications WHERE id = $1`, id).Scan(
		&rec.ID, &rec.FullName, &rec.DateOfBirth, &rec.Address,
		&rec.NationalID, &rec.Income, &rec.Expenses, &rec.CreditScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return credit.ApplicationRecord{}, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return credit.ApplicationRecord{}, err
	}
	a.cache.Add(id, rec)
	return rec, nil
}

// RandomID picks one existing application id at random, for runs invoked
// without an explicit identifier.
func (a *Applications) RandomID(ctx context.Context) (int, error) {
	var id int
	err := a.db.sql.QueryRowContext(ctx,
		`SELECT id FROM applications ORDER BY random() LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("no applications: %w", ErrNotFound)
	}
	return id, err
}

// Insert stores one applicant row; used by seeding.
func (a *Applications) Insert(ctx context.Context, rec credit.ApplicationRecord) error {
	_, err := a.db.sql.ExecContext(ctx, `
INSERT INTO applications (id, full_name, date_of_birth, address, national_id, income, expenses, credit_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.FullName, rec.DateOfBirth, rec.Address,
		rec.NationalID, rec.Income, rec.Expenses, rec.CreditScore,
	)
	return err
}
