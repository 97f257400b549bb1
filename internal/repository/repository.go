package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries is the pgx-backed data access layer shared by every service.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}
