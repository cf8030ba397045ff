package sessions

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements Store on Postgres. Expiry is enforced by filtering
// on expires_at; stale rows are removed opportunistically on Get.
type PGStore struct {
	DB *sql.DB
}

// Put inserts or fully replaces a session row.
func (s *PGStore) Put(ctx context.Context, sess Session) error {
	const query = `
INSERT INTO analysis_sessions (
	session_id, business_name, prompt, progress,
	chatgpt_content, gemini_content, is_complete, created_at, expires_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (session_id) DO UPDATE SET
	business_name = EXCLUDED.business_name,
	prompt = EXCLUDED.prompt,
	progress = EXCLUDED.progress,
	chatgpt_content = EXCLUDED.chatgpt_content,
	gemini_content = EXCLUDED.gemini_content,
	is_complete = EXCLUDED.is_complete,
	expires_at = EXCLUDED.expires_at`

	_, err := s.DB.ExecContext(ctx, query,
		sess.SessionID,
		sess.BusinessName,
		sess.Prompt,
		sess.Progress,
		sess.ChatGPTContent,
		sess.GeminiContent,
		sess.IsComplete,
		sess.CreatedAt,
		sess.ExpiresAt,
	)
	return err
}

// Get returns the session or ErrNotFound when absent or expired.
func (s *PGStore) Get(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT session_id, business_name, prompt, progress,
	chatgpt_content, gemini_content, is_complete, created_at, expires_at
FROM analysis_sessions
WHERE session_id = $1 AND expires_at > now()
LIMIT 1`

	var sess Session
	err := s.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&sess.SessionID,
		&sess.BusinessName,
		&sess.Prompt,
		&sess.Progress,
		&sess.ChatGPTContent,
		&sess.GeminiContent,
		&sess.IsComplete,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = s.DB.ExecContext(ctx,
			`DELETE FROM analysis_sessions WHERE session_id = $1 AND expires_at <= now()`, sessionID)
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes a session row.
func (s *PGStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM analysis_sessions WHERE session_id = $1`, sessionID)
	return err
}
