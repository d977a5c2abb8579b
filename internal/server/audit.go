package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"calllog/internal/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var passwordKeys = []string{"Password", "password"}

// logger writes one audit line per request. Handler errors are rendered
// here so the logged status and response body are the final ones.
func logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		res := c.Response()
		start := time.Now()

		reqBody := []byte{}
		resBody := []byte{}
		bd := middleware.BodyDump(func(c echo.Context, reqB, resB []byte) {
			reqBody = reqB
			resBody = resB
		})
		handler := bd(func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		})
		nexterr := handler(c)

		if strings.HasPrefix(req.URL.Path, "/signup") {
			reqBody = redactPassword(reqBody)
		}
		kvs := []interface{}{}
		kvs = append(kvs, "method")
		kvs = append(kvs, req.Method)
		kvs = append(kvs, "uri")
		kvs = append(kvs, req.RequestURI)
		kvs = append(kvs, "remote-ip")
		kvs = append(kvs, c.RealIP())
		kvs = append(kvs, "request-id")
		kvs = append(kvs, res.Header().Get(echo.HeaderXRequestID))
		kvs = append(kvs, "status")
		kvs = append(kvs, res.Status)
		kvs = append(kvs, "took")
		kvs = append(kvs, time.Since(start))
		if len(reqBody) > 0 {
			kvs = append(kvs, "req")
			kvs = append(kvs, string(reqBody))
		}
		// listings can be large, only log bodies of writes and errors
		if len(resBody) > 0 && (req.Method != http.MethodGet || res.Status >= http.StatusBadRequest) {
			kvs = append(kvs, "resp")
			kvs = append(kvs, string(resBody))
		}
		log.InfoLog("Audit", kvs...)
		return nexterr
	}
}

func redactPassword(body []byte) []byte {
	if len(body) == 0 {
		return body
	}
	in := map[string]interface{}{}
	if err := json.Unmarshal(body, &in); err != nil {
		return []byte{}
	}
	for _, key := range passwordKeys {
		if _, ok := in[key]; ok {
			in[key] = ""
		}
	}
	out, err := json.Marshal(in)
	if err != nil {
		return []byte{}
	}
	return out
}
