// Package query materializes pages out of in-memory collection snapshots.
// Evaluate is pure: it never mutates its input and the same snapshot and
// spec always produce the same page.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Filter operators understood by Evaluate. An unrecognized operator does
// not constrain the result; the clause passes every record.
const (
	OpContains   = "contains"
	OpEquals     = "equals"
	OpStartsWith = "startsWith"
	OpEndsWith   = "endsWith"
	OpGreater    = ">"
	OpLess       = "<"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"sort"`
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Spec is the per-request view description built by the UI. It is never
// persisted.
type Spec struct {
	Pagination Pagination `json:"pagination"`
	Filters    []Filter   `json:"filters,omitempty"`
	Sorts      []Sort     `json:"sorts,omitempty"`
}

// Evaluate filters, sorts and paginates items. field extracts the value
// backing a named column for one record. The returned count is the size of
// the filtered set before pagination.
func Evaluate[T any](items []T, field func(T, string) any, spec Spec) ([]T, int) {
	filtered := make([]T, 0, len(items))
	filtered = append(filtered, items...)

	for _, clause := range spec.Filters {
		if clause.Field == "" || clause.Value == nil {
			continue
		}
		kept := filtered[:0:len(filtered)]
		for _, item := range filtered {
			if matches(field(item, clause.Field), clause.Operator, clause.Value) {
				kept = append(kept, item)
			}
		}
		filtered = kept
	}

	if len(spec.Sorts) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			for _, key := range spec.Sorts {
				c := compare(field(filtered[i], key.Field), field(filtered[j], key.Field))
				if c == 0 {
					continue
				}
				if key.Direction == SortDesc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	total := len(filtered)
	page := paginate(filtered, spec.Pagination)
	return page, total
}

func paginate[T any](items []T, p Pagination) []T {
	if p.PageSize <= 0 {
		return items
	}
	start := p.Page * p.PageSize
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func matches(fieldValue any, operator string, value any) bool {
	switch operator {
	case OpContains:
		return strings.Contains(fold(fieldValue), fold(value))
	case OpStartsWith:
		return strings.HasPrefix(fold(fieldValue), fold(value))
	case OpEndsWith:
		return strings.HasSuffix(fold(fieldValue), fold(value))
	case OpEquals:
		return equals(fieldValue, value)
	case OpGreater:
		return compare(fieldValue, value) > 0
	case OpLess:
		return compare(fieldValue, value) < 0
	default:
		return true
	}
}

func fold(v any) string {
	return strings.ToLower(fmt.Sprint(v))
}

func equals(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return a == b
}

// compare orders two values by their native ordering: numbers numerically,
// times chronologically, booleans false<true, everything else by string.
func compare(a, b any) int {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case !ba && bb:
				return -1
			case ba && !bb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
