package credential

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_UpsertsAndCaches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (key, value) VALUES (?, ?)")).
		WithArgs("llm_api_key", "sk-test-123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewStore(db)
	err = store.Set(context.Background(), "sk-test-123")
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", store.Cached())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_PropagatesDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings")).
		WithArgs("llm_api_key", "sk-test-123").
		WillReturnError(errors.New("disk I/O error"))

	store := NewStore(db)
	err = store.Set(context.Background(), "sk-test-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not persist credential")

	// A failed write must not poison the cache.
	assert.Empty(t, store.Cached())
}

func TestGet_ReturnsStoredValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("sk-test-456")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE key = ?")).
		WithArgs("llm_api_key").
		WillReturnRows(rows)

	store := NewStore(db)
	value, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-test-456", value)
	assert.Equal(t, "sk-test-456", store.Cached())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissingRowIsEmptyCredential(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE key = ?")).
		WithArgs("llm_api_key").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := NewStore(db)
	value, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, value)
}
