// internal/storage/history_test.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	apperrors "creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testRecord(id string) models.DisputeRecord {
	sent := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return models.DisputeRecord{
		ID:             id,
		LetterType:     "debt_validation",
		LetterName:     "Debt Validation Demand",
		Target:         "Northstar Recovery",
		RecipientName:  "Jordan Miles",
		SentDate:       sent,
		ResponseDue:    sent.Add(30 * 24 * time.Hour),
		EscalationDate: sent.Add(35 * 24 * time.Hour),
		Status:         models.DisputeSent,
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestDisputeHistoryStore_Append(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())
	record := testRecord("rec-1")

	mock.ExpectExec("INSERT INTO dispute_records").
		WithArgs(record.ID, "user-1", mustJSON(t, record), record.SentDate).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Append(context.Background(), "user-1", record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisputeHistoryStore_ListAllDropsMalformedRecords(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())

	good := testRecord("rec-1")
	missingTarget := testRecord("rec-2")
	missingTarget.Target = ""
	missingLetterType := map[string]interface{}{"id": "rec-3", "target": "Equifax"}

	rows := sqlmock.NewRows([]string{"record"}).
		AddRow(mustJSON(t, good)).
		AddRow(mustJSON(t, missingTarget)).
		AddRow(mustJSON(t, missingLetterType))

	mock.ExpectQuery("SELECT record FROM dispute_records").
		WithArgs("user-1").
		WillReturnRows(rows)

	records, err := store.ListAll(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisputeHistoryStore_ListAllEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())

	mock.ExpectQuery("SELECT record FROM dispute_records").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"record"}))

	records, err := store.ListAll(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDisputeHistoryStore_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())

	record := testRecord("rec-1")
	updated := record
	updated.Status = models.DisputeResolved
	updated.Outcome = models.OutcomeDeleted

	mock.ExpectQuery("SELECT record FROM dispute_records").
		WithArgs("user-1", "rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"record"}).AddRow(mustJSON(t, record)))
	mock.ExpectExec("UPDATE dispute_records SET record").
		WithArgs(mustJSON(t, updated), "user-1", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateStatus(context.Background(), "user-1", "rec-1", models.DisputeResolved, models.OutcomeDeleted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisputeHistoryStore_UpdateStatusUnknownRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())

	mock.ExpectQuery("SELECT record FROM dispute_records").
		WithArgs("user-1", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"record"}))

	err := store.UpdateStatus(context.Background(), "user-1", "ghost", models.DisputeResolved, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRecordNotFound))
}

func TestDisputeHistoryStore_ListUsers(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDisputeHistoryStore(db, logger.Nop())

	mock.ExpectQuery("SELECT DISTINCT user_id FROM dispute_records").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1").AddRow("user-2"))

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1", "user-2"}, users)
}
