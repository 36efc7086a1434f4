package repository

import (
	"context"

	"github.com/alexanderramin/projects/internal/db"
	"github.com/alexanderramin/projects/internal/rowcodec"
)

// queryAll runs query on tx and extracts every row into a []T through codec.
// The result is never nil, so an empty table yields an empty slice.
func queryAll[T any](ctx context.Context, tx db.DBTX, codec rowcodec.Codec, query string, args ...any) ([]T, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	if err := codec.Extract(rows, &out); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
