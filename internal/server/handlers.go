package server

import (
	"net/http"
	"strings"

	"calllog/internal/apierr"
	"calllog/internal/calls"
	"calllog/internal/signup"
	"github.com/labstack/echo/v4"
)

const msgBadBody = "Corps de requête JSON invalide"

// callReply is a call plus the confirmation message.
type callReply struct {
	*calls.Call
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// ── /health ───────────────────────────────────────────────────────────────────

func (s *Server) handleHealth(c echo.Context) error {
	dbStatus := "unknown"
	if s.db != nil {
		dbStatus = "ok"
		if err := s.db.Ping(c.Request().Context()); err != nil {
			dbStatus = "error"
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", DB: dbStatus})
}

// ── <prefix> ──────────────────────────────────────────────────────────────────

func (s *Server) handleCreateCall(c echo.Context) error {
	in := calls.Input{}
	if err := c.Bind(&in); err != nil {
		return apierr.Validation(msgBadBody)
	}
	call, err := s.calls.Create(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, callReply{Call: call, Message: "Appel créé"})
}

func (s *Server) handleListCalls(c echo.Context) error {
	filter := calls.Filter{}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return apierr.Validation("Paramètres de recherche invalides")
	}
	page, err := s.calls.List(c.Request().Context(), &filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleListSimple(c echo.Context) error {
	list, err := s.calls.ListSimple(c.Request().Context(), c.QueryParam("limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ── <prefix>/:id ──────────────────────────────────────────────────────────────

// idParam returns the :id segment. The router lets a trailing param
// capture the rest of the path, so /prefix/1/extra is not a route.
func idParam(c echo.Context) (string, error) {
	id := c.Param("id")
	if strings.Contains(id, "/") {
		return "", echo.ErrNotFound
	}
	return id, nil
}

func (s *Server) handleGetCall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	call, err := s.calls.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, call)
}

func (s *Server) handleUpdateCall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	// reject a bad id before looking at the body
	if _, err := calls.ParseID(id); err != nil {
		return err
	}
	in := calls.Input{}
	if err := c.Bind(&in); err != nil {
		return apierr.Validation(msgBadBody)
	}
	call, err := s.calls.Update(c.Request().Context(), id, &in)
	if err != nil {
		return err
	}
	call.CreatedAt = ""
	return c.JSON(http.StatusOK, callReply{Call: call, Message: "Appel mis à jour"})
}

func (s *Server) handleDeleteCall(c echo.Context) error {
	idStr, err := idParam(c)
	if err != nil {
		return err
	}
	id, err := s.calls.Delete(c.Request().Context(), idStr)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, M{"id": id, "message": "Appel supprimé"})
}

// ── /signup ───────────────────────────────────────────────────────────────────

func (s *Server) handleSignup(c echo.Context) error {
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return apierr.Validation(msgBadBody)
	}
	user, err := s.signup.Register(c.Request().Context(), signup.InputFromBody(body))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, M{
		"Id":      user.ID,
		"Nom":     user.Nom,
		"Email":   user.Email,
		"message": "Utilisateur créé",
	})
}
