package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"feasibility-backend/internal/analysis"
	"feasibility-backend/internal/shared/server/respond"
	"feasibility-backend/internal/shared/telemetry"
)

// DefaultPollInterval is how often an open stream re-reads the session.
const DefaultPollInterval = time.Second

// Handler exposes the streaming analysis endpoints.
type Handler struct {
	Store        Store
	Runner       *Runner
	PollInterval time.Duration
}

// NewHandler constructs a Handler with the default poll interval.
func NewHandler(store Store, runner *Runner) *Handler {
	return &Handler{Store: store, Runner: runner, PollInterval: DefaultPollInterval}
}

// RegisterRoutes attaches the stream routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze/stream", h.create)
	rg.HEAD("/analyze/stream", h.validate)
	rg.GET("/analyze/stream", h.stream)
}

type createRequest struct {
	BusinessName      string            `json:"businessName"`
	SelectedQuestions []string          `json:"selectedQuestions"`
	Answers           map[string]string `json:"answers"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "שגיאה בקריאת גוף הבקשה", nil)
		return
	}
	if req.BusinessName == "" {
		req.BusinessName = "My Business"
	}
	if req.Answers == nil {
		req.Answers = map[string]string{}
	}

	prompt, _ := analysis.BuildPrompt(req.SelectedQuestions, req.Answers, req.BusinessName)

	now := time.Now().UTC()
	sess := Session{
		SessionID:    uuid.NewString(),
		BusinessName: req.BusinessName,
		Prompt:       prompt,
		CreatedAt:    now,
		ExpiresAt:    now.Add(TTL),
	}
	if err := h.Store.Put(c.Request.Context(), sess); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to start analysis", nil)
		return
	}
	c.Set("sessionId", sess.SessionID)
	telemetry.Info("sessions.created", map[string]any{
		"session_id": sess.SessionID,
		"questions":  len(req.SelectedQuestions),
	})

	// Detached on purpose: the run must reach a terminal state even if
	// no client ever opens the stream.
	go h.Runner.Run(context.Background(), sess.SessionID)

	respond.JSON(c, http.StatusOK, gin.H{"sessionId": sess.SessionID})
}

func (h *Handler) validate(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if _, err := h.Store.Get(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) stream(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Event stream requires a valid sessionId", nil)
		return
	}

	sess, err := h.Store.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Stream error", nil)
		return
	}
	c.Set("sessionId", sessionID)

	setStreamHeaders(c)
	w := c.Writer

	// Replay every milestone already reached, so a reconnecting client
	// never misses events.
	_ = writeEvent(w, gin.H{"type": "connected", "progress": sess.Progress})
	_ = writeEvent(w, gin.H{"type": "status", "message": "מתחיל ניתוח מקיף...", "progress": sess.Progress})

	if sess.Progress >= 10 {
		_ = writeEvent(w, gin.H{"type": "chatgpt_start", "message": "מתחיל ניתוח ChatGPT..."})
	}
	if sess.ChatGPTContent != "" {
		_ = writeEvent(w, gin.H{"type": "chatgpt_chunk", "content": sess.ChatGPTContent, "progress": minProgress(50, sess.Progress)})
		if sess.Progress >= 50 {
			_ = writeEvent(w, gin.H{"type": "chatgpt_complete", "content": sess.ChatGPTContent, "progress": 50})
			_ = writeEvent(w, gin.H{"type": "gemini_start", "message": "מתחיל ניתוח Gemini..."})
		}
	}
	if sess.GeminiContent != "" {
		_ = writeEvent(w, gin.H{"type": "gemini_chunk", "content": sess.GeminiContent, "progress": geminiProgress(sess.Progress)})
		if sess.IsComplete {
			_ = writeEvent(w, gin.H{"type": "gemini_complete", "content": sess.GeminiContent, "progress": 95})
		}
	}
	if sess.IsComplete {
		h.finish(c, w, sess)
		return
	}

	interval := h.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sess
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}

		cur, err := h.Store.Get(c.Request.Context(), sessionID)
		if err != nil {
			_ = writeEvent(w, gin.H{"type": "error", "message": "session expired or deleted"})
			return
		}

		if cur.Progress >= 10 && prev.Progress < 10 {
			_ = writeEvent(w, gin.H{"type": "chatgpt_start", "message": "מתחיל ניתוח ChatGPT..."})
		}
		if cur.ChatGPTContent != prev.ChatGPTContent {
			_ = writeEvent(w, gin.H{"type": "chatgpt_chunk", "content": cur.ChatGPTContent, "progress": minProgress(50, cur.Progress)})
		}
		if cur.Progress >= 50 && prev.Progress < 50 && cur.ChatGPTContent != "" {
			_ = writeEvent(w, gin.H{"type": "chatgpt_complete", "content": cur.ChatGPTContent, "progress": 50})
			_ = writeEvent(w, gin.H{"type": "gemini_start", "message": "מתחיל ניתוח Gemini..."})
		}
		if cur.GeminiContent != prev.GeminiContent {
			_ = writeEvent(w, gin.H{"type": "gemini_chunk", "content": cur.GeminiContent, "progress": geminiProgress(cur.Progress)})
		}
		if cur.Progress >= 95 && prev.Progress < 95 && cur.GeminiContent != "" {
			_ = writeEvent(w, gin.H{"type": "gemini_complete", "content": cur.GeminiContent, "progress": 95})
		}
		if cur.Progress != prev.Progress {
			message := "ChatGPT מנתח את המיזם..."
			if cur.Progress >= 50 {
				message = "Gemini מנתח את המיזם..."
			}
			_ = writeEvent(w, gin.H{"type": "status", "message": message, "progress": cur.Progress})
		}
		if cur.IsComplete && !prev.IsComplete {
			h.finish(c, w, cur)
			return
		}

		prev = cur
	}
}

// finish emits the terminal combined-result message and removes the
// session so later lookups report it gone.
func (h *Handler) finish(c *gin.Context, w gin.ResponseWriter, sess Session) {
	result := gin.H{
		"ventureId":          sess.SessionID,
		"score":              75,
		"maxScore":           105,
		"progressPercentage": 100,
		"results": gin.H{
			"chatgpt": sess.ChatGPTContent,
			"gemini":  sess.GeminiContent,
		},
		"comprehensive": "ניתוח מקיף משולב יתווסף בעתיד",
		"savedAt":       time.Now().UTC(),
	}
	_ = writeEvent(w, gin.H{"type": "complete", "progress": 100, "result": result})
	_ = writeEvent(w, gin.H{"type": "analysis_complete", "progress": 100})
	_ = h.Store.Delete(c.Request.Context(), sess.SessionID)
}

func minProgress(bound, progress int) int {
	if progress < bound {
		return progress
	}
	return bound
}

// geminiProgress maps overall progress into the 50-95 band Gemini owns.
func geminiProgress(progress int) int {
	p := 50 + progress/2
	if p > 95 {
		p = 95
	}
	return p
}
