package ventures

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Questionnaire, results and
// scoring are stored as JSONB documents.
type PGRepo struct {
	DB *sql.DB
}

const ventureColumns = `
venture_id, client_id, business_name, email, phone, city,
questionnaire, responses, ai_results, scoring, status, created_at, updated_at`

// Create inserts a new venture.
func (r *PGRepo) Create(ctx context.Context, venture Venture) error {
	const query = `
INSERT INTO ventures (
	venture_id, client_id, business_name, email, phone, city,
	questionnaire, responses, ai_results, scoring, status, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	questionnaire, err := json.Marshal(venture.Questionnaire)
	if err != nil {
		return err
	}
	responses, err := json.Marshal(venture.Responses)
	if err != nil {
		return err
	}
	results, err := json.Marshal(venture.AIResults)
	if err != nil {
		return err
	}
	scoring, err := json.Marshal(venture.Scoring)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := venture.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = r.DB.ExecContext(ctx, query,
		venture.VentureID,
		venture.ClientID,
		venture.BasicInfo.BusinessName,
		venture.BasicInfo.Email,
		venture.BasicInfo.Phone,
		venture.BasicInfo.City,
		questionnaire,
		responses,
		results,
		scoring,
		venture.Status,
		createdAt,
		now,
	)
	return err
}

// GetByVentureID returns a venture by id.
func (r *PGRepo) GetByVentureID(ctx context.Context, ventureID string) (Venture, error) {
	query := `SELECT ` + ventureColumns + ` FROM ventures WHERE venture_id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ventureID)
	venture, err := scanVenture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Venture{}, ErrNotFound
		}
		return Venture{}, err
	}
	return venture, nil
}

// UpdateResults writes AI results and scoring, advancing the status.
func (r *PGRepo) UpdateResults(ctx context.Context, ventureID string, results []AIResult, scoring Scoring, status string) error {
	const query = `
UPDATE ventures
SET ai_results = $2, scoring = $3, status = $4, updated_at = $5
WHERE venture_id = $1`

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return err
	}
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, ventureID, resultsJSON, scoringJSON, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByVentureID returns ventures matching the id, newest first.
func (r *PGRepo) ListByVentureID(ctx context.Context, ventureID string, limit int) ([]Venture, error) {
	query := `SELECT ` + ventureColumns + ` FROM ventures WHERE venture_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryList(ctx, query, ventureID, limit)
}

// ListByEmail returns ventures for the given email, newest first.
func (r *PGRepo) ListByEmail(ctx context.Context, email string, limit int) ([]Venture, error) {
	query := `SELECT ` + ventureColumns + ` FROM ventures WHERE email = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryList(ctx, query, email, limit)
}

func (r *PGRepo) queryList(ctx context.Context, query, arg string, limit int) ([]Venture, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx, query, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Venture, 0)
	for rows.Next() {
		venture, err := scanVenture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, venture)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenture(row rowScanner) (Venture, error) {
	var v Venture
	var phone, city sql.NullString
	var questionnaire, responses, results, scoring []byte

	err := row.Scan(
		&v.VentureID,
		&v.ClientID,
		&v.BasicInfo.BusinessName,
		&v.BasicInfo.Email,
		&phone,
		&city,
		&questionnaire,
		&responses,
		&results,
		&scoring,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return Venture{}, err
	}
	v.BasicInfo.Phone = phone.String
	v.BasicInfo.City = city.String
	if len(questionnaire) > 0 {
		if err := json.Unmarshal(questionnaire, &v.Questionnaire); err != nil {
			return Venture{}, err
		}
	}
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &v.Responses); err != nil {
			return Venture{}, err
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &v.AIResults); err != nil {
			return Venture{}, err
		}
	}
	if len(scoring) > 0 {
		if err := json.Unmarshal(scoring, &v.Scoring); err != nil {
			return Venture{}, err
		}
	}
	return v, nil
}
