package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool 建立資料庫連線池，於程序啟動時建立一次並注入各層
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
