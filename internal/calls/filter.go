package calls

import (
	"math"
	"strconv"
	"strings"

	"calllog/internal/store"
)

const (
	DefaultPageSize    = 20
	maxPage            = math.MaxInt / MaxPageSize
	MaxPageSize        = 200
	DefaultSimpleLimit = 500
	MaxSimpleLimit     = 1000
)

// Columns matched by the free-text query after case and accent folding.
var searchColumns = []string{
	"appelant", "appele", "contact", "filiere", "critere",
	"dernier_diplome", "maitrise_info",
}

var sortOrders = map[string]string{
	"date_desc":    "date DESC, heure DESC",
	"date_asc":     "date ASC, heure ASC",
	"created_desc": "created_at DESC",
	"created_asc":  "created_at ASC",
}

type predicate struct {
	cond string
	args []interface{}
}

// where is a list of predicates joined with AND.
type where []predicate

func (w *where) add(cond string, args ...interface{}) {
	*w = append(*w, predicate{cond: cond, args: args})
}

func (w where) sql() (string, []interface{}) {
	if len(w) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(w))
	args := []interface{}{}
	for _, p := range w {
		conds = append(conds, p.cond)
		args = append(args, p.args...)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// columnFolder wraps a column so LIKE against a foldQuery pattern
// ignores case and accents.
type columnFolder func(col string) string

func lowerColumn(col string) string { return "LOWER(" + col + ")" }

func buildWhere(f *Filter, fold columnFolder) where {
	w := where{}
	if f.StartDate != "" {
		w.add("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		w.add("date <= ?", f.EndDate)
	}
	if f.Filiere != "" {
		w.add("filiere = ?", f.Filiere)
	}
	if f.Critere != "" {
		w.add("critere = ?", f.Critere)
	}
	if f.Pigier == "oui" || f.Pigier == "non" {
		v := 0
		if f.Pigier == "oui" {
			v = 1
		}
		w.add("deja_pigier = ?", v)
	}
	if f.Maitrise == "oui" || f.Maitrise == "non" {
		w.add("LOWER(maitrise_info) = ?", f.Maitrise)
	}
	if f.Q != "" {
		like := "%" + foldQuery(f.Q) + "%"
		raw := "%" + f.Q + "%"
		conds := make([]string, 0, len(searchColumns)+2)
		args := make([]interface{}, 0, len(searchColumns)+2)
		for _, col := range searchColumns {
			conds = append(conds, fold(col)+" LIKE ?")
			args = append(args, like)
		}
		conds = append(conds, "date LIKE ?", "heure LIKE ?")
		args = append(args, raw, raw)
		w.add("("+strings.Join(conds, " OR ")+")", args...)
	}
	return w
}

// orderBy maps a sort key to its ORDER BY list; unknown keys get
// date_desc.
func orderBy(sort string) string {
	if order, ok := sortOrders[sort]; ok {
		return order
	}
	return sortOrders["date_desc"]
}

// pageBounds returns the 1-based page, the clamped page size and the
// row offset.
func pageBounds(page, pageSize string) (int, int, int) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}
	if p > maxPage {
		p = maxPage
	}
	size := clampInt(pageSize, DefaultPageSize, 1, MaxPageSize)
	return p, size, (p - 1) * size
}

// simpleLimit treats a missing, zero or malformed limit as the default.
func simpleLimit(limit string) int {
	n, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || n == 0 {
		n = DefaultSimpleLimit
	}
	return clamp(n, 1, MaxSimpleLimit)
}

func clampInt(s string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = def
	}
	return clamp(n, lo, hi)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func isAll(v string) bool {
	return v == "1" || v == "true"
}

// foldQuery lower-cases s, strips combining marks and trims it.
func foldQuery(s string) string {
	return strings.TrimSpace(store.Fold(s))
}

var heureLimits = []int{23, 59, 59}

// normalizeHeure accepts H:MM, HH:MM and HH:MM:SS and returns the value
// with a two-digit hour.
func normalizeHeure(heure string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(heure), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", false
	}
	for i, part := range parts {
		if len(part) != 2 && !(i == 0 && len(part) == 1) {
			return "", false
		}
		n := 0
		for _, r := range part {
			if r < '0' || r > '9' {
				return "", false
			}
			n = n*10 + int(r-'0')
		}
		if n > heureLimits[i] {
			return "", false
		}
	}
	if len(parts[0]) == 1 {
		parts[0] = "0" + parts[0]
	}
	return strings.Join(parts, ":"), true
}

// shortTime renders a stored heure as HH:MM. Unparseable values are
// returned as is.
func shortTime(heure string) string {
	if h, ok := normalizeHeure(heure); ok {
		return h[:5]
	}
	return heure
}
