package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// Columns never written from entity values
var systemColumns = []string{"id", "created_on", "updated_on"}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// TableConfig describes one managed table
type TableConfig struct {
	Name        string
	Search      []string // columns matched by the search box
	Sorts       []string // sortable columns
	DefaultSort string
	DefaultDir  model.SortDir
	Filters     filter.Fields
	TimeFields  []string // columns written with a <datetime> cast
	Omit        []string // columns never selected
	Immutable   bool     // rows are never updated, so no updated_on
}

// Table is the generic select/create/update/delete access used by every
// list screen. T is decoded from rows through its JSON tags.
type Table[T any] struct {
	db  database.Database
	cfg TableConfig
}

// NewTable creates a table accessor
func NewTable[T any](db database.Database, cfg TableConfig) *Table[T] {
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "created_on"
	}
	if cfg.DefaultDir == "" {
		cfg.DefaultDir = model.SortDesc
	}
	if !slices.Contains(cfg.Sorts, cfg.DefaultSort) {
		cfg.Sorts = append(cfg.Sorts, cfg.DefaultSort)
	}
	return &Table[T]{db: db, cfg: cfg}
}

// Name returns the table name
func (t *Table[T]) Name() string {
	return t.cfg.Name
}

// Owns reports whether id is a record of this table
func (t *Table[T]) Owns(id string) bool {
	return model.IsRecordID(id, t.cfg.Name)
}

// List returns one page of rows plus the total matching count. Extra
// conditions are ANDed with the search and filter.
func (t *Table[T]) List(ctx context.Context, q model.ListQuery, extra ...filter.Condition) ([]T, int, error) {
	q = q.Normalize()

	cond, err := filter.Parse(q.Filter, t.cfg.Filters)
	if err != nil {
		return nil, 0, err
	}

	vars := map[string]interface{}{
		"tb":     t.cfg.Name,
		"limit":  q.PageSize,
		"offset": q.Offset(),
	}
	var where []string
	if q.Search != "" && len(t.cfg.Search) > 0 {
		matches := make([]string, len(t.cfg.Search))
		for i, col := range t.cfg.Search {
			matches[i] = fmt.Sprintf("string::lowercase(%s ?? '') CONTAINS $search", col)
		}
		where = append(where, "("+strings.Join(matches, " OR ")+")")
		vars["search"] = strings.ToLower(q.Search)
	}
	for i, c := range append([]filter.Condition{cond}, extra...) {
		if c.IsEmpty() {
			continue
		}
		clause := c.Clause
		if i > 0 {
			// Scope conditions use their own prefix so they cannot collide with filter params.
			clause, c.Vars = prefixVars(clause, c.Vars, fmt.Sprintf("x%d_", i))
		}
		where = append(where, "("+clause+")")
		for k, v := range c.Vars {
			vars[k] = v
		}
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(
		"SELECT %s FROM type::table($tb)%s ORDER BY %s LIMIT $limit START $offset;\n"+
			"SELECT count() AS total FROM type::table($tb)%s GROUP ALL;",
		t.projection(), whereClause, t.orderBy(q), whereClause,
	)

	results, err := t.db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, err
	}

	items, err := decodeRecords[T](database.StatementRecords(results, 0))
	if err != nil {
		return nil, 0, err
	}

	total := 0
	if counts := database.StatementRecords(results, 1); len(counts) > 0 {
		if m, ok := counts[0].(map[string]interface{}); ok {
			total = extractCountValue(m["total"])
		}
	}
	return items, total, nil
}

// Get retrieves one row. A missing row returns nil with no error.
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	if !t.Owns(id) {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM type::record($id)", t.projection())
	results, err := t.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	return firstRecord[T](results)
}

// Exists reports whether every id names a row of this table
func (t *Table[T]) Exists(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !t.Owns(id) {
			return false, nil
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	query := `SELECT count() AS total FROM type::table($tb) WHERE <string> id IN $ids GROUP ALL`
	results, err := t.db.Query(ctx, query, map[string]interface{}{"tb": t.cfg.Name, "ids": unique})
	if err != nil {
		return false, err
	}
	row, err := database.FirstRecord(results)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	m, _ := row.(map[string]interface{})
	return extractCountValue(m["total"]) == len(unique), nil
}

// Count returns the number of rows matching cond
func (t *Table[T]) Count(ctx context.Context, cond filter.Condition) (int, error) {
	vars := map[string]interface{}{"tb": t.cfg.Name}
	where := ""
	if !cond.IsEmpty() {
		where = " WHERE " + cond.Clause
		for k, v := range cond.Vars {
			vars[k] = v
		}
	}
	results, err := t.db.Query(ctx, "SELECT count() AS total FROM type::table($tb)"+where+" GROUP ALL", vars)
	if err != nil {
		return 0, err
	}
	row, err := database.FirstRecord(results)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	m, _ := row.(map[string]interface{})
	return extractCountValue(m["total"]), nil
}

// Create inserts entity and returns the stored row
func (t *Table[T]) Create(ctx context.Context, entity *T) (*T, error) {
	fields, err := toFields(entity)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.cfg.Name, err)
	}
	for _, col := range systemColumns {
		delete(fields, col)
	}

	assignments, vars, err := t.assignments(fields)
	if err != nil {
		return nil, err
	}
	assignments = append(assignments, "created_on = time::now()")
	if !t.cfg.Immutable {
		assignments = append(assignments, "updated_on = time::now()")
	}
	vars["tb"] = t.cfg.Name

	query := "CREATE type::table($tb) SET " + strings.Join(assignments, ", ")
	results, err := t.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	created, err := firstRecord[T](results)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("no result returned")
	}
	return created, nil
}

// Update applies a patch to one row and returns it. A missing row
// returns nil with no error.
func (t *Table[T]) Update(ctx context.Context, id string, patch Patch) (*T, error) {
	return t.updateWhere(ctx, id, patch, filter.Condition{})
}

// updateWhere applies the patch only while guard holds for the row. A
// missing row or a failed guard returns nil with no error. Guard vars
// must not use the p_ prefix.
func (t *Table[T]) updateWhere(ctx context.Context, id string, patch Patch, guard filter.Condition) (*T, error) {
	if !t.Owns(id) {
		return nil, nil
	}
	if t.cfg.Immutable {
		return nil, fmt.Errorf("%s rows cannot be updated", t.cfg.Name)
	}

	assignments, vars, err := t.assignments(patch.values())
	if err != nil {
		return nil, err
	}
	assignments = append(assignments, "updated_on = time::now()")
	vars["id"] = id

	query := "UPDATE type::record($id) SET " + strings.Join(assignments, ", ")
	if !guard.IsEmpty() {
		query += " WHERE " + guard.Clause
		for k, v := range guard.Vars {
			vars[k] = v
		}
	}
	query += " RETURN AFTER"
	results, err := t.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return firstRecord[T](results)
}

// Delete removes one row and returns what was deleted. A missing row
// returns nil with no error.
func (t *Table[T]) Delete(ctx context.Context, id string) (*T, error) {
	if !t.Owns(id) {
		return nil, nil
	}
	results, err := t.db.Query(ctx, "DELETE type::record($id) RETURN BEFORE", map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	return firstRecord[T](results)
}

// deleteWith removes one row and runs cleanup statements in the same
// transaction. Cleanup statements see the row id as $id and must not
// return rows.
func (t *Table[T]) deleteWith(ctx context.Context, id string, cleanup ...string) (*T, error) {
	if !t.Owns(id) {
		return nil, nil
	}

	stmts := make([]string, 0, len(cleanup)+3)
	stmts = append(stmts, "BEGIN TRANSACTION")
	stmts = append(stmts, cleanup...)
	stmts = append(stmts, "DELETE type::record($id) RETURN BEFORE", "COMMIT TRANSACTION")

	results, err := t.db.Query(ctx, strings.Join(stmts, ";\n")+";", map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	for i := len(results) - 1; i >= 0; i-- {
		if rows := database.StatementRecords(results, i); len(rows) > 0 {
			return decodeRecord[T](rows[0])
		}
	}
	return nil, nil
}

// assignments builds "col = $p_col" pairs in column order. Nil values
// clear the column.
func (t *Table[T]) assignments(fields map[string]interface{}) ([]string, map[string]interface{}, error) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !columnPattern.MatchString(col) {
			return nil, nil, fmt.Errorf("invalid column name %q", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	out := make([]string, 0, len(cols)+2)
	vars := make(map[string]interface{}, len(cols)+2)
	for _, col := range cols {
		val := fields[col]
		if val == nil {
			out = append(out, col+" = NONE")
			continue
		}
		param := "p_" + col
		if tm, ok := val.(time.Time); ok {
			val = formatTime(tm)
		}
		vars[param] = val
		if slices.Contains(t.cfg.TimeFields, col) {
			out = append(out, fmt.Sprintf("%s = <datetime> $%s", col, param))
		} else {
			out = append(out, fmt.Sprintf("%s = $%s", col, param))
		}
	}
	return out, vars, nil
}

func (t *Table[T]) projection() string {
	if len(t.cfg.Omit) == 0 {
		return "*"
	}
	return "* OMIT " + strings.Join(t.cfg.Omit, ", ")
}

func (t *Table[T]) orderBy(q model.ListQuery) string {
	col := q.SortBy
	dir := q.SortDir
	if !slices.Contains(t.cfg.Sorts, col) {
		col = t.cfg.DefaultSort
	}
	if dir == "" {
		dir = t.cfg.DefaultDir
	}
	return col + " " + strings.ToUpper(string(dir))
}

var paramPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// prefixVars renames every $param in clause and vars with prefix
func prefixVars(clause string, vars map[string]interface{}, prefix string) (string, map[string]interface{}) {
	out := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		out[prefix+k] = v
	}
	clause = paramPattern.ReplaceAllStringFunc(clause, func(m string) string {
		if _, ok := vars[m[1:]]; ok {
			return "$" + prefix + m[1:]
		}
		return m
	})
	return clause, out
}

// Patch collects the columns of a partial update
type Patch struct {
	fields map[string]interface{}
}

// NewPatch creates an empty patch
func NewPatch() Patch {
	return Patch{fields: make(map[string]interface{})}
}

// Set assigns a column. A nil value clears it.
func (p Patch) Set(col string, val interface{}) Patch {
	p.fields[col] = val
	return p
}

// Len returns the number of columns set
func (p Patch) Len() int {
	return len(p.fields)
}

// Has reports whether col is set
func (p Patch) Has(col string) bool {
	_, ok := p.fields[col]
	return ok
}

// Value returns the value set for col. A cleared column reports nil, true.
func (p Patch) Value(col string) (interface{}, bool) {
	v, ok := p.fields[col]
	return v, ok
}

func (p Patch) values() map[string]interface{} {
	out := make(map[string]interface{}, len(p.fields))
	for k, v := range p.fields {
		out[k] = v
	}
	return out
}

// SetIf assigns col when the pointer is non-nil
func SetIf[V any](p Patch, col string, val *V) Patch {
	if val != nil {
		p.fields[col] = *val
	}
	return p
}
