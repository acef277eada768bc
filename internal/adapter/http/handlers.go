package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actorID pulls the authenticated principal from the X-Actor-Id header.
// Authentication itself lives upstream; routes only need the id.
func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
}

func requireActor(c echo.Context) (string, bool) {
	id := actorID(c)
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}
