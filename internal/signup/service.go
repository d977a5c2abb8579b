// Package signup registers users in the login table.
package signup

import (
	"context"
	"errors"

	"calllog/internal/apierr"
	"calllog/internal/log"
	"calllog/internal/store"
)

// User is the registered user as returned to the client; the password
// is never included.
type User struct {
	ID    int64  `json:"Id" db:"id"`
	Nom   string `json:"Nom" db:"nom"`
	Email string `json:"Email" db:"email"`
}

type Service struct {
	exec store.Executor
}

func NewService(exec store.Executor) *Service {
	return &Service{exec: exec}
}

// Register inserts the user unless a row with the same (nom, email)
// exists. The lookup and insert are separate statements; the unique
// index on (nom, email) rejects a concurrent duplicate, which is also
// reported as a conflict.
func (s *Service) Register(ctx context.Context, in *Input) (*User, error) {
	if in == nil || in.Nom == "" || in.Email == "" || in.Password == "" {
		return nil, apierr.Validation("Champs requis manquants. Il faut Nom (ou name/nom), Email et Password (ou password).")
	}

	res, err := s.exec.Exec(ctx, "SELECT id FROM login WHERE nom = ? AND email = ?", in.Nom, in.Email)
	if err != nil {
		return nil, storageErr(err)
	}
	if len(res.Rows) > 0 {
		return nil, apierr.Conflict("Un utilisateur avec ce Nom et cet Email existe déjà")
	}

	res, err = s.exec.Exec(ctx, "INSERT INTO login (nom, email, password) VALUES (?, ?, ?)",
		in.Nom, in.Email, in.Password)
	if err != nil {
		return nil, storageErr(err)
	}
	log.DebugLog(log.DebugLevelApi, "user registered", "id", res.InsertID, "nom", in.Nom)
	return &User{ID: res.InsertID, Nom: in.Nom, Email: in.Email}, nil
}

func storageErr(err error) error {
	log.WarnLog("signup storage error", "err", err)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return apierr.Conflict("Email déjà utilisé.")
	case errors.Is(err, store.ErrNoSuchTable):
		return apierr.Storage("Table 'login' introuvable.", err)
	case errors.Is(err, store.ErrUnknownColumn):
		return apierr.Storage("Colonne inconnue. Attendu: id, nom, email, password.", err)
	}
	return apierr.Storage("Erreur serveur lors de la création", err)
}
