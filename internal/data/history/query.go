package history

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	querySelectRE       = regexp.MustCompile(`(?i)^\s*SELECT\s+runs(?:\s+WHERE\s+(.+))?\s*$`)
	queryAndSplitRE     = regexp.MustCompile(`(?i)\s+AND\s+`)
	queryNumericCondRE  = regexp.MustCompile(`(?i)^\s*([a-z_]+)\s*(>=|<=|!=|=|>|<)\s*(-?[0-9]+)\s*$`)
	queryContainsCondRE = regexp.MustCompile(`(?i)^\s*([a-z_]+)\s+CONTAINS\s+['"]([^'"]+)['"]\s*$`)
	queryStringCondRE   = regexp.MustCompile(`(?i)^\s*([a-z_]+)\s*(=|!=)\s*['"]?([^'"]+?)['"]?\s*$`)
)

var (
	intFields = map[string]func(Run) int{
		"tokens":      func(r Run) int { return r.Tokens },
		"nodes":       func(r Run) int { return r.Nodes },
		"symbols":     func(r Run) int { return r.Symbols },
		"duration_us": func(r Run) int { return int(r.Duration.Microseconds()) },
	}
	stringFields = map[string]func(Run) string{
		"status":  func(r Run) string { return r.Status },
		"source":  func(r Run) string { return r.Source },
		"message": func(r Run) string { return r.Message },
		"grammar": func(r Run) string { return r.GrammarPrint },
		"strict":  func(r Run) string { return strconv.FormatBool(r.Strict) },
	}
)

// Query is a parsed run filter:
//
//	SELECT runs [WHERE cond [AND cond]...]
//
// where cond is `field op number`, `field = 'text'`, `field != 'text'` or
// `field CONTAINS 'text'`.
type Query struct {
	Conditions []Condition
}

type Condition struct {
	Field  string
	Op     string
	IntVal int
	StrVal string
	IsInt  bool
}

func ParseQuery(raw string) (Query, error) {
	matches := querySelectRE.FindStringSubmatch(strings.TrimSpace(raw))
	if len(matches) == 0 {
		return Query{}, fmt.Errorf("invalid run query: expected SELECT runs [WHERE ...]")
	}

	var query Query
	where := strings.TrimSpace(matches[1])
	if where == "" {
		return query, nil
	}

	parts := queryAndSplitRE.Split(where, -1)
	query.Conditions = make([]Condition, 0, len(parts))
	for _, part := range parts {
		condition, err := parseCondition(part)
		if err != nil {
			return Query{}, err
		}
		query.Conditions = append(query.Conditions, condition)
	}
	return query, nil
}

func parseCondition(raw string) (Condition, error) {
	if match := queryNumericCondRE.FindStringSubmatch(raw); len(match) == 4 {
		field := strings.ToLower(match[1])
		if _, ok := intFields[field]; !ok {
			return Condition{}, fmt.Errorf("unknown numeric field %q", field)
		}
		value, err := strconv.Atoi(match[3])
		if err != nil {
			return Condition{}, fmt.Errorf("invalid numeric value %q: %w", match[3], err)
		}
		return Condition{Field: field, Op: match[2], IntVal: value, IsInt: true}, nil
	}

	if match := queryContainsCondRE.FindStringSubmatch(raw); len(match) == 3 {
		field := strings.ToLower(match[1])
		if _, ok := stringFields[field]; !ok {
			return Condition{}, fmt.Errorf("unknown text field %q", field)
		}
		return Condition{Field: field, Op: "contains", StrVal: match[2]}, nil
	}

	if match := queryStringCondRE.FindStringSubmatch(raw); len(match) == 4 {
		field := strings.ToLower(match[1])
		if _, ok := stringFields[field]; !ok {
			return Condition{}, fmt.Errorf("unknown text field %q", field)
		}
		return Condition{Field: field, Op: match[2], StrVal: match[3]}, nil
	}

	return Condition{}, fmt.Errorf("invalid run query condition %q", strings.TrimSpace(raw))
}

// Matches reports whether run satisfies every condition.
func (q Query) Matches(run Run) bool {
	for _, c := range q.Conditions {
		if !c.matches(run) {
			return false
		}
	}
	return true
}

func (c Condition) matches(run Run) bool {
	if c.IsInt {
		v := intFields[c.Field](run)
		switch c.Op {
		case ">":
			return v > c.IntVal
		case ">=":
			return v >= c.IntVal
		case "<":
			return v < c.IntVal
		case "<=":
			return v <= c.IntVal
		case "!=":
			return v != c.IntVal
		default:
			return v == c.IntVal
		}
	}
	v := stringFields[c.Field](run)
	switch c.Op {
	case "contains":
		return strings.Contains(strings.ToLower(v), strings.ToLower(c.StrVal))
	case "!=":
		return !strings.EqualFold(v, c.StrVal)
	default:
		return strings.EqualFold(v, c.StrVal)
	}
}

// Select returns up to limit runs matching q, newest first.
func (s *Store) Select(q Query, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	var rows *sql.Rows
	err := s.withRetry("select runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY ts_utc DESC, id ASC`)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() && len(runs) < limit {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if q.Matches(run) {
			runs = append(runs, run)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}
