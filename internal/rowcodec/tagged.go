package rowcodec

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Tagged maps columns to struct fields through their `db` tags using sqlx.
type Tagged struct{}

var _ Codec = Tagged{}

func (Tagged) Bind(args []any, pos int, v any, kind Kind) error {
	if pos < 1 || pos > len(args) {
		return fmt.Errorf("binding parameter %d: position out of range 1..%d", pos, len(args))
	}
	val, err := driverValue(v, kind)
	if err != nil {
		return fmt.Errorf("binding parameter %d: %w", pos, err)
	}
	args[pos-1] = val
	return nil
}

func (Tagged) Extract(rows *sql.Rows, dest any) error {
	if err := sqlx.StructScan(rows, dest); err != nil {
		return fmt.Errorf("extracting rows: %w", err)
	}
	return nil
}

// driverValue normalises v for the declared kind. Nil pointers become nil.
func driverValue(v any, kind Kind) (any, error) {
	switch kind {
	case Text:
		switch t := v.(type) {
		case string:
			return t, nil
		case *string:
			if t == nil {
				return nil, nil
			}
			return *t, nil
		}
	case Decimal:
		switch t := v.(type) {
		case decimal.Decimal:
			return t.StringFixed(DecimalScale), nil
		case *decimal.Decimal:
			if t == nil {
				return nil, nil
			}
			return t.StringFixed(DecimalScale), nil
		}
	case Integer:
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case int64:
			return t, nil
		case *int:
			if t == nil {
				return nil, nil
			}
			return int64(*t), nil
		case *int64:
			if t == nil {
				return nil, nil
			}
			return *t, nil
		}
	default:
		return nil, fmt.Errorf("unknown parameter kind %s", kind)
	}
	if v == nil {
		return nil, nil
	}
	return nil, fmt.Errorf("cannot bind %T as %s", v, kind)
}
