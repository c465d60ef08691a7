package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"mortgauge/internal/apperr"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// listSpec declares, per entity, which API-level fields may be filtered,
// searched, and sorted, and how they map to columns. Unknown fields fail
// validation; in-set mismatches (including malformed bool/uuid values) match
// nothing, per exact-match semantics.
type listSpec struct {
	scopeCol    string
	filterCols  map[string]string
	boolCols    map[string]bool
	uuidCols    map[string]bool
	searchCols  []string
	sortCols    map[string]string
	defaultSort string
	tiebreak    string
}

// matchNothing is a condition that is never true. Used when a filter value
// cannot possibly match any row (e.g. malformed uuid), which is an empty
// result rather than an error.
const matchNothing = "FALSE"

// build renders the WHERE and ORDER BY clauses plus bound args for a scoped
// list query. Filter keys are processed in sorted order so the generated SQL
// is deterministic.
func (sp listSpec) build(sc scope.Scope, lq repository.ListQuery) (whereSQL, orderSQL string, args []any, err error) {
	var conds []string

	if !sc.All {
		args = append(args, sc.BrokerID)
		conds = append(conds, fmt.Sprintf("%s = $%d", sp.scopeCol, len(args)))
	}

	keys := make([]string, 0, len(lq.Filters))
	for k := range lq.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		col, ok := sp.filterCols[k]
		if !ok {
			return "", "", nil, apperr.Validation(k, "unknown filter field")
		}
		v := lq.Filters[k]
		switch {
		case sp.boolCols[k]:
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				conds = append(conds, matchNothing)
				continue
			}
			args = append(args, b)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		case sp.uuidCols[k]:
			if _, perr := uuid.Parse(v); perr != nil {
				conds = append(conds, matchNothing)
				continue
			}
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		default:
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}

	if lq.Search != "" && len(sp.searchCols) > 0 {
		args = append(args, "%"+escapeLike(lq.Search)+"%")
		n := len(args)
		ors := make([]string, len(sp.searchCols))
		for i, col := range sp.searchCols {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) > 0 {
		whereSQL = " WHERE " + strings.Join(conds, " AND ")
	}

	orderSQL, err = sp.order(lq.Sort)
	if err != nil {
		return "", "", nil, err
	}
	return whereSQL, orderSQL, args, nil
}

// likeEscaper neutralises LIKE metacharacters so a search term matches
// literally. Postgres treats backslash as the escape character for
// LIKE/ILIKE unless an ESCAPE clause says otherwise.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// order renders the ORDER BY clause. A stable tiebreak column is always
// appended so pagination stays deterministic under concurrent inserts.
func (sp listSpec) order(keys []repository.SortKey) (string, error) {
	tiebreak := sp.tiebreak
	if tiebreak == "" {
		tiebreak = "id"
	}
	if len(keys) == 0 {
		return " ORDER BY " + sp.defaultSort + ", " + tiebreak, nil
	}
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		col, ok := sp.sortCols[k.Field]
		if !ok {
			return "", apperr.Validation("ordering", "unknown sort field: "+k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, tiebreak)
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// classify wraps store-level failures so that callers can tell retryable
// outages apart from everything else. sql.ErrNoRows is passed through for the
// caller to map onto the right entity.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return apperr.Transient(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// checkOwned applies the scope contract to a row fetched by id: rows outside
// the scope yield an authorization error even though they exist.
func checkOwned(sc scope.Scope, ownerBrokerID, entity string) error {
	if sc.All {
		return nil
	}
	if sc.BrokerID == "" || sc.BrokerID != ownerBrokerID {
		return apperr.Forbidden(entity)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func emptyPage[T any]() *repository.PageResult[T] {
	return &repository.PageResult[T]{Items: []T{}, Total: 0}
}
