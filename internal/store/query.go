package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/lcdcalc/internal/ir"
)

// ActionQuery selects journaled actions of one session.
//
// Zero fields do not filter. Every compiled query orders by seq with the
// record id as tiebreaker, and every value is passed as a parameter.
type ActionQuery struct {
	SessionID string
	Kinds     []ir.ActionKind
	FromSeq   int64 // inclusive
	ToSeq     int64 // inclusive
	// Failed keeps only records whose result is "Error".
	Failed bool
}

// predicate is one WHERE fragment. Only types in this file implement it.
type predicate interface {
	predicateNode()
}

type equals struct {
	field string
	value any
}

type in struct {
	field  string
	values []any
}

type compare struct {
	field string
	op    string // ">=" or "<="
	value any
}

type and struct {
	predicates []predicate
}

func (equals) predicateNode()  {}
func (in) predicateNode()      {}
func (compare) predicateNode() {}
func (and) predicateNode()     {}

const actionColumns = "id, session_id, seq, kind, value, tokens, expression, result, status, state_hash"

// filter builds the predicate tree for q.
func (q ActionQuery) filter() (predicate, error) {
	if q.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	preds := []predicate{equals{field: "session_id", value: q.SessionID}}

	if len(q.Kinds) > 0 {
		values := make([]any, 0, len(q.Kinds))
		for _, k := range q.Kinds {
			if !k.Valid() {
				return nil, fmt.Errorf("invalid action kind %d", int(k))
			}
			values = append(values, k.String())
		}
		preds = append(preds, in{field: "kind", values: values})
	}
	if q.FromSeq > 0 {
		preds = append(preds, compare{field: "seq", op: ">=", value: q.FromSeq})
	}
	if q.ToSeq > 0 {
		if q.ToSeq < q.FromSeq {
			return nil, fmt.Errorf("seq range %d..%d is empty", q.FromSeq, q.ToSeq)
		}
		preds = append(preds, compare{field: "seq", op: "<=", value: q.ToSeq})
	}
	if q.Failed {
		preds = append(preds, equals{field: "result", value: "Error"})
	}
	return and{predicates: preds}, nil
}

// Compile renders q as parameterized SQL.
func (q ActionQuery) Compile() (string, []any, error) {
	p, err := q.filter()
	if err != nil {
		return "", nil, fmt.Errorf("compile action query: %w", err)
	}
	where, params, err := compilePredicate(p)
	if err != nil {
		return "", nil, fmt.Errorf("compile action query: %w", err)
	}
	sql := fmt.Sprintf("SELECT %s FROM actions WHERE %s ORDER BY seq ASC, id COLLATE BINARY ASC",
		actionColumns, where)
	return sql, params, nil
}

func compilePredicate(p predicate) (string, []any, error) {
	switch pred := p.(type) {
	case equals:
		return pred.field + " = ?", []any{pred.value}, nil
	case in:
		if len(pred.values) == 0 {
			return "1 = 0", nil, nil
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(pred.values)), ", ")
		return fmt.Sprintf("%s IN (%s)", pred.field, marks), pred.values, nil
	case compare:
		return fmt.Sprintf("%s %s ?", pred.field, pred.op), []any{pred.value}, nil
	case and:
		if len(pred.predicates) == 0 {
			return "1 = 1", nil, nil
		}
		parts := make([]string, 0, len(pred.predicates))
		var params []any
		for _, sub := range pred.predicates {
			sql, subParams, err := compilePredicate(sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
			params = append(params, subParams...)
		}
		return strings.Join(parts, " AND "), params, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// QueryActions returns the actions q selects, in seq order.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) QueryActions(ctx context.Context, q ActionQuery) ([]ir.JournalRecord, error) {
	sql, params, err := q.Compile()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	records := []ir.JournalRecord{}
	for rows.Next() {
		rec, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return records, nil
}
