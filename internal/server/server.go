// Package server mounts the call-log and signup services on an echo
// router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"calllog/internal/apierr"
	"calllog/internal/calls"
	"calllog/internal/log"
	"calllog/internal/signup"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CallPrefixes all serve the same call-log handler set.
var CallPrefixes = []string{
	"/api/appels",
	"/api/forms",
	"/forms",
	"/api/get",
	"/put/update",
	"/api/delete",
}

type M map[string]interface{}

// Pinger reports database health for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	calls  *calls.Service
	signup *signup.Service
	db     Pinger
}

// New builds the router. db may be nil, in which case /health reports
// the database as unknown.
func New(callSvc *calls.Service, signupSvc *signup.Service, db Pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	s := &Server{echo: e, calls: callSvc, signup: signupSvc, db: db}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	e.GET("/health", s.handleHealth)
	e.POST("/signup", s.handleSignup)
	for _, prefix := range CallPrefixes {
		g := e.Group(prefix)
		g.POST("", s.handleCreateCall)
		g.GET("", s.handleListCalls)
		g.GET("/simple", s.handleListSimple)
		g.GET("/:id", s.handleGetCall)
		g.PUT("/:id", s.handleUpdateCall)
		g.DELETE("/:id", s.handleDeleteCall)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves on addr until Shutdown; it returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// errorHandler renders every error returned by a handler. Unknown routes
// and wrong methods both answer 404.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	var body interface{}

	var aerr *apierr.Error
	var herr *echo.HTTPError
	switch {
	case errors.As(err, &aerr):
		status = aerr.Status
		body = aerr.Body()
		if status >= http.StatusInternalServerError {
			log.WarnLog("request failed", "uri", c.Request().RequestURI, "err", err)
		}
	case errors.As(err, &herr) && (herr.Code == http.StatusNotFound || herr.Code == http.StatusMethodNotAllowed):
		status = http.StatusNotFound
		body = M{"message": "Route introuvable"}
	case errors.As(err, &herr) && herr.Code < http.StatusInternalServerError:
		status = herr.Code
		body = M{"message": fmt.Sprint(herr.Message)}
	default:
		log.WarnLog("unhandled error", "uri", c.Request().RequestURI, "err", err)
		body = M{"error": "Erreur serveur", "details": err.Error()}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.WarnLog("write error response", "err", err)
	}
}
