package store

import (
	"context"
	"fmt"
	"regexp"
)

// Gateway is the read contract over the keyed datastore. Filters passed in one
// call are conjunctive. Implementations must be safe for concurrent use and
// wrap transport failures with ErrUpstreamUnavailable.
type Gateway interface {
	Find(ctx context.Context, collection string, q Query) ([]Row, error)
	Count(ctx context.Context, collection string, filters []Filter) (int64, error)
	// GetOne returns the first matching row or ErrNotFound.
	GetOne(ctx context.Context, collection string, filters []Filter) (Row, error)
}

// Writer covers the single-field mutation used by the admin surface.
type Writer interface {
	UpdateField(ctx context.Context, collection string, filters []Filter, field string, value any) (int64, error)
}

type Operator string

const (
	OpEq      Operator = "eq"
	OpGte     Operator = "gte"
	OpNotNull Operator = "not_null"
	OpIsNull  Operator = "is_null"
)

type Filter struct {
	Field string
	Op    Operator
	Value any
}

func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }
func Gte(field string, value any) Filter { return Filter{Field: field, Op: OpGte, Value: value} }
func NotNull(field string) Filter { return Filter{Field: field, Op: OpNotNull} }
func IsNull(field string) Filter { return Filter{Field: field, Op: OpIsNull} }

type Order struct {
	Field     string
	Ascending bool
}

func Asc(field string) Order { return Order{Field: field, Ascending: true} }
func Desc(field string) Order { return Order{Field: field} }

// Query describes a find call. Empty Columns selects every column and a
// Limit of zero means no limit.
type Query struct {
	Columns []string
	Filters []Filter
	OrderBy []Order
	Limit   int
}

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidateIdentifier rejects collection and field names that are not plain
// lower-case identifiers. Gateways interpolate them into queries.
func ValidateIdentifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: %w", name, ErrValidation)
	}
	return nil
}

func ValidateFilters(filters []Filter) error {
	for _, f := range filters {
		if err := ValidateIdentifier(f.Field); err != nil {
			return err
		}
		switch f.Op {
		case OpEq, OpGte:
			if f.Value == nil {
				return fmt.Errorf("filter %s %s needs a value: %w", f.Field, f.Op, ErrValidation)
			}
		case OpNotNull, OpIsNull:
		default:
			return fmt.Errorf("unknown operator %q: %w", f.Op, ErrValidation)
		}
	}
	return nil
}

// Validate checks the collection name and every identifier of the query.
func (q Query) Validate(collection string) error {
	if err := ValidateIdentifier(collection); err != nil {
		return err
	}
	for _, c := range q.Columns {
		if err := ValidateIdentifier(c); err != nil {
			return err
		}
	}
	if err := ValidateFilters(q.Filters); err != nil {
		return err
	}
	for _, o := range q.OrderBy {
		if err := ValidateIdentifier(o.Field); err != nil {
			return err
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("negative limit %d: %w", q.Limit, ErrValidation)
	}
	return nil
}
