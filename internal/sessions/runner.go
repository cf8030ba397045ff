package sessions

import (
	"context"
	"errors"
	"time"

	"feasibility-backend/internal/analysis"
	"feasibility-backend/internal/shared/telemetry"
)

// Placeholder texts written before real engine output arrives, and the
// force-complete fallbacks when an engine never produced content.
const (
	chatgptPlaceholder = "מנתח את המיזם... התוצאות יופיעו בקרוב."
	geminiPlaceholder  = "מנתח את המיזם באמצעות Gemini... התוצאות יופיעו בקרוב."
	failurePlaceholder = "שגיאה בניתוח, אין תוכן"
)

// Runner advances a session through its progress milestones, driving
// the engines sequentially: ChatGPT owns progress 0-50, Gemini 50-100.
// It is fire-and-forget: once started it runs to a terminal state even
// if no client is streaming.
type Runner struct {
	Store   Store
	ChatGPT analysis.EngineRunner
	Gemini  analysis.EngineRunner

	// StepDelay spaces the cosmetic milestones apart so the client sees
	// motion. Zero (tests) disables the pauses.
	StepDelay time.Duration
}

// NewRunner constructs a Runner with the default milestone pacing.
func NewRunner(store Store, chatgpt, gemini analysis.EngineRunner) *Runner {
	return &Runner{
		Store:     store,
		ChatGPT:   chatgpt,
		Gemini:    gemini,
		StepDelay: 1500 * time.Millisecond,
	}
}

// Run executes the milestone sequence for one session. It returns when
// the session reaches a terminal state or disappears from the store.
// Any mid-run failure force-completes the session with placeholder
// text so stream consumers never hang waiting for completion.
func (r *Runner) Run(ctx context.Context, sessionID string) {
	if err := r.run(ctx, sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return
		}
		telemetry.Error("sessions.run_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		r.forceComplete(sessionID)
	}
}

func (r *Runner) run(ctx context.Context, sessionID string) error {
	if err := r.advance(ctx, sessionID, 5, nil); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	if err := r.advance(ctx, sessionID, 10, nil); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	if err := r.advance(ctx, sessionID, 20, nil); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	if err := r.advance(ctx, sessionID, 30, func(s *Session) {
		s.ChatGPTContent = chatgptPlaceholder
	}); err != nil {
		return err
	}

	sess, err := r.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	chatgptText, _ := r.ChatGPT.RunAnalysis(ctx, sess.Prompt)
	if err := r.advance(ctx, sessionID, 50, func(s *Session) {
		s.ChatGPTContent = chatgptText
	}); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}

	if err := r.advance(ctx, sessionID, 60, nil); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	if err := r.advance(ctx, sessionID, 70, func(s *Session) {
		s.GeminiContent = geminiPlaceholder
	}); err != nil {
		return err
	}

	geminiText, _ := r.Gemini.RunAnalysis(ctx, sess.Prompt)
	if err := r.advance(ctx, sessionID, 95, func(s *Session) {
		s.GeminiContent = geminiText
	}); err != nil {
		return err
	}
	if err := r.pause(ctx); err != nil {
		return err
	}

	return r.advance(ctx, sessionID, 100, func(s *Session) {
		s.IsComplete = true
	})
}

// advance replaces the session with an updated copy at the given
// milestone. Aborts with ErrNotFound when the session expired mid-run.
func (r *Runner) advance(ctx context.Context, sessionID string, progress int, mutate func(*Session)) error {
	sess, err := r.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Progress = progress
	if mutate != nil {
		mutate(&sess)
	}
	return r.Store.Put(ctx, sess)
}

func (r *Runner) pause(ctx context.Context) error {
	if r.StepDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.StepDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// forceComplete marks the session terminal with whatever content
// exists, substituting failure placeholders for absent engine output.
func (r *Runner) forceComplete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := r.Store.Get(ctx, sessionID)
	if err != nil {
		return
	}
	if sess.ChatGPTContent == "" || sess.ChatGPTContent == chatgptPlaceholder {
		sess.ChatGPTContent = failurePlaceholder
	}
	if sess.GeminiContent == "" || sess.GeminiContent == geminiPlaceholder {
		sess.GeminiContent = failurePlaceholder
	}
	sess.Progress = 100
	sess.IsComplete = true
	if err := r.Store.Put(ctx, sess); err != nil {
		telemetry.Error("sessions.force_complete_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}
