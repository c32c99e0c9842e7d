package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"authgw/internal/modules/auth/domain"
)

// Open builds a pooled connection to the profile database and verifies it
// with a ping.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ProfileRepo reads the application-owned user records that take
// precedence over provider metadata at sign-in.
type ProfileRepo struct{ db *pgxpool.Pool }

func NewProfileRepo(db *pgxpool.Pool) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) ProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	q := `SELECT email, name, role, department
	      FROM user_profiles WHERE email = LOWER($1)`
	row := r.db.QueryRow(ctx, q, email)

	var p domain.Profile
	if err := row.Scan(&p.Email, &p.Name, &p.Role, &p.Department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
