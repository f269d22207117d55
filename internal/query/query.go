// Package query builds parameterised SQL filter clauses from typed predicates.
//
// Column names are supplied by store code, never by request input; values always travel as
// positional arguments.
package query

import (
	"fmt"
	"strings"
)

// Predicate renders itself into a SQL fragment, pulling placeholders from arg.
type Predicate interface {
	render(arg func(v any) string) string
}

type eq struct {
	column string
	value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Predicate {
	return eq{column: column, value: value}
}

func (p eq) render(arg func(any) string) string {
	return fmt.Sprintf("%s = %s", p.column, arg(p.value))
}

type contains struct {
	column string
	value  string
}

// Contains matches rows where column contains value, case-insensitively.
// LIKE wildcards in value are matched literally.
func Contains(column, value string) Predicate {
	return contains{column: column, value: value}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (p contains) render(arg func(any) string) string {
	return fmt.Sprintf("%s ILIKE %s", p.column, arg("%"+likeEscaper.Replace(p.value)+"%"))
}

type in struct {
	column string
	values []any
}

// In matches rows where column equals any of values. An empty list matches nothing.
func In[T any](column string, values ...T) Predicate {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}

	return in{column: column, values: vs}
}

func (p in) render(arg func(any) string) string {
	if len(p.values) == 0 {
		return "FALSE"
	}

	placeholders := make([]string, len(p.values))
	for i, v := range p.values {
		placeholders[i] = arg(v)
	}

	return fmt.Sprintf("%s IN (%s)", p.column, strings.Join(placeholders, ", "))
}

type anyOf struct {
	preds []Predicate
}

// Any matches rows satisfying at least one of preds.
func Any(preds ...Predicate) Predicate {
	return anyOf{preds: preds}
}

func (p anyOf) render(arg func(any) string) string {
	if len(p.preds) == 0 {
		return "FALSE"
	}

	parts := make([]string, len(p.preds))
	for i, pred := range p.preds {
		parts[i] = pred.render(arg)
	}

	return "(" + strings.Join(parts, " OR ") + ")"
}

// Builder accumulates predicates joined with AND.
type Builder struct {
	preds []Predicate
}

func New() *Builder {
	return &Builder{}
}

// Where appends predicates. Nil predicates are skipped so optional filters can be passed inline.
func (b *Builder) Where(preds ...Predicate) *Builder {
	for _, p := range preds {
		if p != nil {
			b.preds = append(b.preds, p)
		}
	}

	return b
}

// When appends pred only if cond holds.
func (b *Builder) When(cond bool, pred func() Predicate) *Builder {
	if cond {
		b.preds = append(b.preds, pred())
	}

	return b
}

// Build renders the accumulated predicates as " AND p1 AND p2 ...", numbering placeholders
// from firstArg. It returns an empty clause when there are no predicates.
func (b *Builder) Build(firstArg int) (string, []any) {
	var args []any

	next := firstArg
	arg := func(v any) string {
		args = append(args, v)
		ph := fmt.Sprintf("$%d", next)
		next++

		return ph
	}

	var sb strings.Builder
	for _, p := range b.preds {
		sb.WriteString(" AND ")
		sb.WriteString(p.render(arg))
	}

	return sb.String(), args
}
