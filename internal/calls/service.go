// Package calls implements create, search and maintenance of call-log
// records over the shared SQL executor.
package calls

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"calllog/internal/apierr"
	"calllog/internal/store"
)

const callColumns = `id, date, heure, appelant, appele, contact, filiere, critere,
	deja_pigier, maitrise_info, dernier_diplome, created_at`

const (
	msgMissingFields = "Champs requis manquants: date, heure, appele, contact"
	msgBadHeure      = "Heure invalide, format attendu HH:MM ou HH:MM:SS"
)

// Service runs call-log operations against an executor.
type Service struct {
	exec store.Executor
	now  func() time.Time
	fold columnFolder
}

// NewService uses the executor's dialect for accent-insensitive search
// when it exposes one.
func NewService(exec store.Executor) *Service {
	s := &Service{exec: exec, now: time.Now, fold: lowerColumn}
	if d, ok := exec.(interface{ Dialect() *store.Dialect }); ok {
		s.fold = d.Dialect().FoldColumn
	}
	return s
}

// Create validates and inserts one call. The returned record echoes the
// submitted values with the generated id and the effective createdAt.
func (s *Service) Create(ctx context.Context, in *Input) (*Call, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = s.now().UTC().Format("2006-01-02T15:04:05.000Z")
	}
	c := fromInput(in)
	c.CreatedAt = createdAt

	res, err := s.exec.Exec(ctx, `INSERT INTO calls
    (date, heure, appelant, appele, contact, filiere, critere, deja_pigier, maitrise_info, dernier_diplome, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Date, c.Heure, nullable(c.Appelant), c.Appele, c.Contact, nullable(nullIfEmpty(c.Filiere)),
		nullable(nullIfEmpty(c.Critere)), boolInt(c.DejaPigier), c.MaitriseInfo, c.DernierDiplome, c.CreatedAt)
	if err != nil {
		if errors.Is(err, store.ErrNoSuchTable) {
			return nil, apierr.Storage("Table 'calls' introuvable.", err)
		}
		return nil, apierr.Storage("Erreur serveur lors de la création", err)
	}
	c.ID = res.InsertID
	return c, nil
}

// List returns one page (or every row when f.All is set) of the calls
// matching f, with the filtered and unfiltered totals.
func (s *Service) List(ctx context.Context, f *Filter) (*Page, error) {
	whereSQL, args := buildWhere(f, s.fold).sql()

	total, err := s.count(ctx, whereSQL, args)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
	}
	totalAll := total
	if whereSQL != "" {
		totalAll, err = s.count(ctx, "", nil)
		if err != nil {
			return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
		}
	}

	query := "SELECT " + callColumns + " FROM calls" + whereSQL + " ORDER BY " + orderBy(f.Sort)
	page := &Page{Total: total, TotalAll: totalAll, Page: 1}
	if !isAll(f.All) {
		p, size, offset := pageBounds(f.Page, f.PageSize)
		page.Page = p
		page.PageSize = size
		query += " LIMIT ? OFFSET ?"
		args = append(args, size, offset)
	}
	res, err := s.exec.Exec(ctx, query, args...)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
	}
	page.Data, err = decodeCalls(res.Rows)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
	}
	if isAll(f.All) {
		page.PageSize = len(page.Data)
	}
	return page, nil
}

// Get returns the call with the given id.
func (s *Service) Get(ctx context.Context, idStr string) (*Call, error) {
	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}
	res, err := s.exec.Exec(ctx, "SELECT "+callColumns+" FROM calls WHERE id = ?", id)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
	}
	if len(res.Rows) == 0 {
		return nil, apierr.NotFound("Appel introuvable")
	}
	list, err := decodeCalls(res.Rows[:1])
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture", err)
	}
	return &list[0], nil
}

// ListSimple returns up to limit calls, newest first, without filters.
func (s *Service) ListSimple(ctx context.Context, limit string) ([]Call, error) {
	res, err := s.exec.Exec(ctx, "SELECT "+callColumns+
		" FROM calls ORDER BY date DESC, heure DESC LIMIT ?", simpleLimit(limit))
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture (simple)", err)
	}
	list, err := decodeCalls(res.Rows)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la lecture (simple)", err)
	}
	return list, nil
}

// Update replaces every mutable field of the call. The result is built
// from the input, not re-read.
func (s *Service) Update(ctx context.Context, idStr string, in *Input) (*Call, error) {
	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	c := fromInput(in)
	c.ID = id
	res, err := s.exec.Exec(ctx, `UPDATE calls
SET date = ?, heure = ?, appelant = ?, appele = ?, contact = ?,
    filiere = ?, critere = ?, deja_pigier = ?, maitrise_info = ?, dernier_diplome = ?
WHERE id = ?`,
		c.Date, c.Heure, nullable(c.Appelant), c.Appele, c.Contact, nullable(nullIfEmpty(c.Filiere)),
		nullable(nullIfEmpty(c.Critere)), boolInt(c.DejaPigier), c.MaitriseInfo, c.DernierDiplome, id)
	if err != nil {
		return nil, apierr.Storage("Erreur serveur lors de la mise à jour", err)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("Appel introuvable")
	}
	return c, nil
}

// Delete removes the call and returns its id.
func (s *Service) Delete(ctx context.Context, idStr string) (int64, error) {
	id, err := ParseID(idStr)
	if err != nil {
		return 0, err
	}
	res, err := s.exec.Exec(ctx, "DELETE FROM calls WHERE id = ?", id)
	if err != nil {
		return 0, apierr.Storage("Erreur serveur lors de la suppression", err)
	}
	if res.RowsAffected == 0 {
		return 0, apierr.NotFound("Appel introuvable")
	}
	return id, nil
}

// Count returns the number of stored calls.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.count(ctx, "", nil)
}

func (s *Service) count(ctx context.Context, whereSQL string, args []interface{}) (int64, error) {
	res, err := s.exec.Exec(ctx, "SELECT COUNT(*) AS c FROM calls"+whereSQL, args...)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	var out struct {
		C int64 `db:"c"`
	}
	if err := store.DecodeRow(res.Rows[0], &out); err != nil {
		return 0, err
	}
	return out.C, nil
}

// ParseID accepts only a positive base-10 integer.
func ParseID(idStr string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.InvalidInput("Id invalide")
	}
	return id, nil
}

// validate checks the required fields and normalizes in.Heure.
func validate(in *Input) error {
	if in == nil || in.Date == "" || in.Heure == "" || in.Appele == "" || in.Contact == "" {
		return apierr.Validation(msgMissingFields)
	}
	heure, ok := normalizeHeure(in.Heure)
	if !ok {
		return apierr.Validation(msgBadHeure)
	}
	in.Heure = heure
	return nil
}

func fromInput(in *Input) *Call {
	return &Call{
		Date:           in.Date,
		Heure:          in.Heure,
		Appelant:       in.Appelant,
		Appele:         string(in.Appele),
		Contact:        string(in.Contact),
		Filiere:        in.Filiere,
		Critere:        in.Critere,
		DejaPigier:     bool(in.DejaPigier),
		MaitriseInfo:   in.MaitriseInfo,
		DernierDiplome: in.DernierDiplome,
	}
}

func decodeCalls(rows []store.Row) ([]Call, error) {
	list := make([]Call, 0, len(rows))
	for _, row := range rows {
		var c Call
		if err := store.DecodeRow(row, &c); err != nil {
			return nil, err
		}
		c.Heure = shortTime(c.Heure)
		list = append(list, c)
	}
	return list, nil
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
