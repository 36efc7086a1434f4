// Package rowcodec binds typed statement parameters and maps result columns
// onto entity attributes by name.
//
// Repositories depend on the Codec interface only, so the mapping mechanism
// (struct tags, hand-written scanners) can be swapped without touching the
// SQL they issue.
package rowcodec

import (
	"database/sql"
	"fmt"
)

// Kind is the semantic type of a statement parameter.
type Kind int

const (
	Text Kind = iota + 1
	Decimal
	Integer
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Decimal:
		return "decimal"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DecimalScale is the number of fractional digits decimals are bound with.
const DecimalScale = 2

// Codec is the contract between repositories and the row mapping mechanism.
type Codec interface {
	// Bind converts v to a driver value for a parameter of the given kind and
	// stores it in args at the 1-based position pos. A nil pointer binds as
	// SQL NULL.
	Bind(args []any, pos int, v any, kind Kind) error

	// Extract reads every remaining row into dest, which must point to a
	// slice of structs (or struct pointers). Columns are matched to
	// attributes by name.
	Extract(rows *sql.Rows, dest any) error
}

// Param is a value paired with its semantic kind.
type Param struct {
	Value any
	Kind  Kind
}

// P is shorthand for Param{Value: v, Kind: k}.
func P(v any, k Kind) Param {
	return Param{Value: v, Kind: k}
}

// BindAll binds params at positions 1..len(params) and returns the
// resulting argument list.
func BindAll(c Codec, params ...Param) ([]any, error) {
	args := make([]any, len(params))
	for i, p := range params {
		if err := c.Bind(args, i+1, p.Value, p.Kind); err != nil {
			return nil, err
		}
	}
	return args, nil
}
