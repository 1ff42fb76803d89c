package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"claims-assistant/internal/common"
	"claims-assistant/internal/entity"
)

// ClaimRepository is the document-store boundary for claims. Documents are
// stored with absent fields omitted entirely; equality filtering on user and
// policy number and timestamp ordering are delegated to the store, while
// date-window filtering on the string invoice_date stays with the caller.
type ClaimRepository interface {
	Insert(ctx context.Context, userID string, claim entity.CanonicalClaim) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID string, limit int32) ([]entity.ClaimRecord, error)
	ListByUserAndPolicy(ctx context.Context, userID, policyNumber string, limit int32) ([]entity.ClaimRecord, error)
	ListByPolicy(ctx context.Context, policyNumber string, limit int32) ([]entity.ClaimRecord, error)
}

type claimRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewClaimRepository(pool *pgxpool.Pool, logger *slog.Logger) ClaimRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &claimRepository{pool: pool, logger: logger}
}

// EnsureSchema creates the claims table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS claims (
			id         UUID PRIMARY KEY,
			user_id    TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS claims_user_created_idx ON claims (user_id, created_at);
		CREATE INDEX IF NOT EXISTS claims_policy_idx ON claims ((doc->>'policy_number'));
	`)
	return err
}

func (r *claimRepository) Insert(ctx context.Context, userID string, claim entity.CanonicalClaim) (uuid.UUID, error) {
	// Marshalling drops absent fields, which is the persisted-state
	// contract: stored documents carry only present, non-empty fields.
	doc, err := json.Marshal(claim)
	if err != nil {
		return uuid.Nil, common.NewAppError("STORE_ERROR", "encode claim document", common.ErrInternal)
	}

	id := uuid.New()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO claims (id, user_id, doc, created_at) VALUES ($1, $2, $3, now())`,
		id, userID, doc,
	)
	if err != nil {
		r.logger.Error("claims.insert.failed", "user_id", userID, "error", err)
		return uuid.Nil, common.NewAppError("STORE_ERROR", "insert claim", common.ErrDatabase)
	}
	r.logger.Info("claims.insert.ok", "user_id", userID, "claim_id", id)
	return id, nil
}

func (r *claimRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]entity.ClaimRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, doc, created_at
		   FROM claims
		  WHERE user_id = $1
		  ORDER BY created_at
		  LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		r.logger.Error("claims.list_by_user.failed", "user_id", userID, "error", err)
		return nil, err
	}
	return collectRecords(rows)
}

func (r *claimRepository) ListByUserAndPolicy(ctx context.Context, userID, policyNumber string, limit int32) ([]entity.ClaimRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, doc, created_at
		   FROM claims
		  WHERE user_id = $1 AND doc->>'policy_number' = $2
		  ORDER BY created_at
		  LIMIT $3`,
		userID, policyNumber, limit,
	)
	if err != nil {
		r.logger.Error("claims.list_by_user_policy.failed", "user_id", userID, "error", err)
		return nil, err
	}
	return collectRecords(rows)
}

func (r *claimRepository) ListByPolicy(ctx context.Context, policyNumber string, limit int32) ([]entity.ClaimRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, doc, created_at
		   FROM claims
		  WHERE doc->>'policy_number' = $1
		  ORDER BY created_at
		  LIMIT $2`,
		policyNumber, limit,
	)
	if err != nil {
		r.logger.Error("claims.list_by_policy.failed", "policy_number", policyNumber, "error", err)
		return nil, err
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]entity.ClaimRecord, error) {
	defer rows.Close()

	var out []entity.ClaimRecord
	for rows.Next() {
		var (
			rec entity.ClaimRecord
			doc []byte
			ts  time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &doc, &ts); err != nil {
			return nil, err
		}
		rec.CreatedAt = ts
		if err := json.Unmarshal(doc, &rec.Doc); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
