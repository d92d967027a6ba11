package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/orchestrator"
	"github.com/sandevgo/jarvis/pkg/conv"
)

const defaultSessionID = "web-default"

type handler struct {
	orch *orchestrator.Orchestrator
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply     string            `json:"reply"`
	ReplyHTML string            `json:"reply_html"`
	Skill     string            `json:"skill,omitempty"`
	Intent    core.IntentResult `json:"intent"`
	Timestamp time.Time         `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func sessionOrDefault(id string) string {
	if strings.TrimSpace(id) == "" {
		return defaultSessionID
	}
	return id
}

func (h *handler) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "message is required"})
	}

	res, err := h.orch.Turn(c.Request().Context(), sessionOrDefault(req.SessionID), req.Message)
	if err != nil {
		if errors.Is(err, core.ErrSessionBusy) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "session is busy, try again"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, chatResponse{
		Reply:     res.Reply,
		ReplyHTML: conv.MarkdownToHTML([]byte(res.Reply)),
		Skill:     res.Skill,
		Intent:    res.Intent,
		Timestamp: res.Timestamp,
	})
}

func (h *handler) history(c echo.Context) error {
	sessionID := sessionOrDefault(c.QueryParam("session_id"))
	messages := h.orch.SessionMessages(sessionID, 0)

	return c.JSON(http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   messages,
	})
}

func (h *handler) stats(c echo.Context) error {
	stats, err := h.orch.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

func (h *handler) clear(c echo.Context) error {
	var req clearRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	h.orch.ClearSession(sessionOrDefault(req.SessionID))
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
