package analysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feasibility-backend/internal/shared/server/respond"
)

// DefaultTimeout bounds one analysis request end to end. Slightly under
// the upstream proxy limit so the client gets a structured timeout
// instead of a dropped connection.
const DefaultTimeout = 4 * time.Minute

const historyLimit = 10

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc     *Service
	Timeout time.Duration
}

// NewHandler constructs a Handler with the default request timeout.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Timeout: DefaultTimeout}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analyze", h.history)
}

func (h *Handler) analyze(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "שגיאה בקריאת גוף הבקשה", nil)
		return
	}

	questionnaireReq, legacyReq, ok := DecodeRequest(body)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request",
			"פורמט בקשה לא תקין - נדרש פורמט שאלון או פורמט קלאסי", nil)
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if legacyReq != nil {
		h.analyzeLegacy(ctx, c, legacyReq)
		return
	}
	h.analyzeQuestionnaire(ctx, c, questionnaireReq)
}

func (h *Handler) analyzeQuestionnaire(ctx context.Context, c *gin.Context, req *QuestionnaireRequest) {
	if req.BusinessName == "" || req.Email == "" || len(req.SelectedQuestions) == 0 || req.Answers == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			"חסרים שדות חובה: שם עסק, אימייל, שאלות נבחרות ותשובות", nil)
		return
	}
	if len(req.Engines) == 0 {
		req.Engines = []string{"chatgpt", "gemini"}
	}

	result, err := h.Svc.AnalyzeQuestionnaire(ctx, req)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.Set("ventureId", result.VentureID)

	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) analyzeLegacy(ctx context.Context, c *gin.Context, req *LegacyRequest) {
	if req.BusinessName == "" || req.Problem == "" || req.Solution == "" || req.TargetMarket == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			"חסרים שדות חובה: שם עסק, בעיה, פתרון וקהל יעד", nil)
		return
	}

	result, err := h.Svc.AnalyzeLegacy(ctx, req)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.Set("ventureId", result.VentureID)

	resp := gin.H{"ventureId": result.VentureID}
	for engine, analysis := range result.Analyses {
		resp[engine] = analysis
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) analysisError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		respond.Error(c, http.StatusRequestTimeout, "analysis_timeout",
			"זמן הניתוח עבר את המותר",
			gin.H{
				"details":    "הניתוח לוקח זמן רב מדי. נסה להפחית את מספר השאלות או לבחור מנוע AI יחיד",
				"suggestion": "אנא נסה שוב עם פחות שאלות או עם מנוע AI יחיד במקום כמה מנועים",
			})
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "שגיאה בניתוח", nil)
}

func (h *Handler) history(c *gin.Context) {
	ventureID := c.Query("ventureId")
	email := c.Query("email")

	if ventureID == "" && email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "נדרש venture ID או email", nil)
		return
	}

	summaries, err := h.Svc.History(c.Request.Context(), ventureID, email, historyLimit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "שגיאה בשליפת היסטוריית ניתוחים", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"ventures": summaries})
}
