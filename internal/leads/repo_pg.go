package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new lead.
func (r *PGRepo) Create(ctx context.Context, lead Lead) error {
	const query = `
INSERT INTO leads (id, session_id, email, locale, top_product, alternatives, answers, crm_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	alternatives, err := json.Marshal(nonNil(lead.Alternatives))
	if err != nil {
		return err
	}
	answers, err := marshalJSONB(lead.Answers)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		nullString(lead.SessionID),
		nullString(lead.Email),
		lead.Locale,
		lead.TopProduct,
		alternatives,
		answers,
		lead.CRMStatus,
		lead.CreatedAt,
	)
	return err
}

// UpdateCRMStatus records the CRM outcome of a stored lead.
func (r *PGRepo) UpdateCRMStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE leads SET crm_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecent returns up to limit leads, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	const query = `
SELECT id, session_id, email, locale, top_product, alternatives, answers, crm_status, created_at
FROM leads
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var l Lead
		var sessionID, email sql.NullString
		var alternatives, answers []byte
		if err := rows.Scan(&l.ID, &sessionID, &email, &l.Locale, &l.TopProduct, &alternatives, &answers, &l.CRMStatus, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.SessionID = sessionID.String
		l.Email = email.String
		if err := json.Unmarshal(alternatives, &l.Alternatives); err != nil {
			return nil, fmt.Errorf("decode alternatives for lead %s: %w", l.ID, err)
		}
		if err := json.Unmarshal(answers, &l.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for lead %s: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Ping checks the database connection.
func (r *PGRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func marshalJSONB(value map[string]any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
