package repository

import (
	"context"
	"errors"
	"fmt"

	"authportal/internal/model"

	"github.com/jackc/pgx/v5"
)

// RegistrationTokenRepository defines operations for invitation token data
type RegistrationTokenRepository interface {
	Create(ctx context.Context, token *model.RegistrationToken) error
	FindByValue(ctx context.Context, value string) (*model.RegistrationToken, error)
	Consume(ctx context.Context, value string, userID int) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error)
}

type tokenRepository struct {
	db DB
}

// NewRegistrationTokenRepository creates a new RegistrationTokenRepository
func NewRegistrationTokenRepository(db DB) RegistrationTokenRepository {
	return &tokenRepository{db: db}
}

// Create inserts a new registration token
func (r *tokenRepository) Create(ctx context.Context, t *model.RegistrationToken) error {
	sql := `INSERT INTO registration_tokens (token, expires_at, created_by)
            VALUES ($1, $2, $3) RETURNING id, used, created_at`
	err := r.db.QueryRow(ctx, sql, t.Token, t.ExpiresAt, t.CreatedBy).
		Scan(&t.ID, &t.Used, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registration token: %w", err)
	}
	return nil
}

// FindByValue retrieves a token by its opaque value. Returns nil, nil when
// no such token exists.
func (r *tokenRepository) FindByValue(ctx context.Context, value string) (*model.RegistrationToken, error) {
	t := &model.RegistrationToken{}
	sql := `SELECT id, token, expires_at, used, used_by, used_at, created_by, created_at
            FROM registration_tokens WHERE token = $1`
	err := r.db.QueryRow(ctx, sql, value).
		Scan(&t.ID, &t.Token, &t.ExpiresAt, &t.Used, &t.UsedBy, &t.UsedAt, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find registration token: %w", err)
	}
	return t, nil
}

// Consume marks a token as used by the given user. The update is conditional
// on used = FALSE so that two concurrent registrations racing on the same
// token resolve atomically in the database: exactly one wins. Returns false
// when the token was missing or already consumed.
func (r *tokenRepository) Consume(ctx context.Context, value string, userID int) (bool, error) {
	sql := `UPDATE registration_tokens
            SET used = TRUE, used_by = $1, used_at = NOW()
            WHERE token = $2 AND used = FALSE`
	cmdTag, err := r.db.Exec(ctx, sql, userID, value)
	if err != nil {
		return false, fmt.Errorf("failed to consume registration token: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Delete removes a token, but only while it is still unused. Returns false
// when the token was missing or already consumed.
func (r *tokenRepository) Delete(ctx context.Context, id int) (bool, error) {
	sql := `DELETE FROM registration_tokens WHERE id = $1 AND used = FALSE`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete registration token: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// List retrieves token summaries for the admin panel, newest first, with the
// issuer and consumer resolved to emails. Expiry is evaluated against NOW()
// at read time; nothing writes an "expired" state.
func (r *tokenRepository) List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error) {
	whereClause := ""
	switch filter {
	case model.TokenFilterActive:
		whereClause = "WHERE rt.used = FALSE AND rt.expires_at > NOW()"
	case model.TokenFilterUsed:
		whereClause = "WHERE rt.used = TRUE"
	case model.TokenFilterExpired:
		whereClause = "WHERE rt.used = FALSE AND rt.expires_at <= NOW()"
	case model.TokenFilterAll:
		// no filter
	default:
		return nil, fmt.Errorf("unknown token filter %q", filter)
	}

	sql := fmt.Sprintf(`SELECT
            rt.id, rt.token, rt.expires_at, rt.used, rt.used_at, rt.created_at,
            u_created.email AS created_by_email,
            u_used.email AS used_by_email
        FROM registration_tokens rt
        LEFT JOIN users u_created ON rt.created_by = u_created.id
        LEFT JOIN users u_used ON rt.used_by = u_used.id
        %s
        ORDER BY rt.created_at DESC`, whereClause)

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query registration tokens: %w", err)
	}
	defer rows.Close()

	var tokens []model.RegistrationTokenSummary
	for rows.Next() {
		var t model.RegistrationTokenSummary
		var createdByEmail *string
		if err := rows.Scan(&t.ID, &t.Token, &t.ExpiresAt, &t.Used, &t.UsedAt, &t.CreatedAt,
			&createdByEmail, &t.UsedByEmail); err != nil {
			return nil, fmt.Errorf("failed to scan registration token row: %w", err)
		}
		if createdByEmail != nil {
			t.CreatedByEmail = *createdByEmail
		}
		tokens = append(tokens, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration token rows: %w", err)
	}
	return tokens, nil
}
