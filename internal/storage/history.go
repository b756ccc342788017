// internal/storage/history.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema is the minimal shape a stored dispute record must satisfy to
// appear in read views. Records failing it stay in storage but are silently
// excluded from reads: a corrupt historical row must never block every
// future read.
const recordSchema = `{
	"type": "object",
	"required": ["letterType", "target"],
	"properties": {
		"letterType": {"type": "string", "minLength": 1},
		"target": {"type": "string", "minLength": 1}
	}
}`

var compiledRecordSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		panic(fmt.Sprintf("dispute record schema: %v", err))
	}
	return schema
}()

// DisputeHistoryStore is the append-only per-user dispute history, backed by
// PostgreSQL. Records are stored as JSON documents; only status and outcome
// ever change after insert.
type DisputeHistoryStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDisputeHistoryStore(db *sql.DB, log logger.Logger) *DisputeHistoryStore {
	return &DisputeHistoryStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "dispute_history"}),
	}
}

// Append inserts one record. No validation beyond encoding: writes are
// permissive, reads are the gate.
func (s *DisputeHistoryStore) Append(ctx context.Context, userID string, record models.DisputeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode dispute record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dispute_records (id, user_id, record, created_at)
		VALUES ($1, $2, $3, $4)`,
		record.ID, userID, data, record.SentDate)
	if err != nil {
		return apperrors.NewDatabaseQueryFailedError("append dispute record", err)
	}
	return nil
}

// ListAll returns the user's history in send order, dropping records that
// fail the minimal shape check.
func (s *DisputeHistoryStore) ListAll(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM dispute_records
		WHERE user_id = $1
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list dispute records", err)
	}
	defer rows.Close()

	records := []models.DisputeRecord{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError("scan dispute record", err)
		}

		if !s.validShape(userID, raw) {
			continue
		}

		var record models.DisputeRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			s.logger.Warn("undecodable dispute record excluded from read", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("iterate dispute records", err)
	}
	return records, nil
}

// UpdateStatus rewrites only the status and outcome of one record.
func (s *DisputeHistoryStore) UpdateStatus(ctx context.Context, userID, recordID string, status models.DisputeStatus, outcome models.DisputeOutcome) error {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM dispute_records
		WHERE user_id = $1 AND id = $2`, userID, recordID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewRecordNotFoundError(recordID)
		}
		return apperrors.NewDatabaseQueryFailedError("load dispute record", err)
	}

	var record models.DisputeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("decode dispute record: %w", err)
	}
	record.Status = status
	if outcome != "" {
		record.Outcome = outcome
	}

	updated, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode dispute record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE dispute_records SET record = $1
		WHERE user_id = $2 AND id = $3`, updated, userID, recordID)
	if err != nil {
		return apperrors.NewDatabaseQueryFailedError("update dispute record", err)
	}
	return nil
}

// ListUsers returns every user with at least one stored record. Used by the
// reminder sweep.
func (s *DisputeHistoryStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM dispute_records`)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list users", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError("scan user id", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("iterate users", err)
	}
	return users, nil
}

func (s *DisputeHistoryStore) validShape(userID string, raw []byte) bool {
	result, err := compiledRecordSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil || !result.Valid() {
		fields := map[string]interface{}{"userId": userID}
		if err != nil {
			fields["error"] = err.Error()
		} else {
			fields["violations"] = len(result.Errors())
		}
		s.logger.Warn("malformed dispute record excluded from read", fields)
		return false
	}
	return true
}
