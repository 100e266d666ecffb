// internal/membership/repository_test.go
//
// Unit-tests for the application repository using sqlmock.
//
// Run: go test ./internal/membership -v

package membership

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleApp() *Application {
	return &Application{
		CreatedAt:   time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		ParentName:  "Ana",
		Phone:       "1",
		Email:       "a@b.ro",
		ChildName:   "C",
		ChildAge:    "5",
		Expectation: "hobby",
		Source:      "website",
		QASnapshot:  []QAItem{{Question: "Telefon", Answer: "1"}},
		RawPayload:  []byte(`{"phone":"1"}`),
	}
}

func TestCreateWritesApplicationAndRows(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO membership_application")).
		WithArgs(sqlmock.AnyArg(), "Ana", "1", "a@b.ro", "C", "5", "hobby", "website", "",
			`[{"question":"Telefon","answer":"1"}]`, nil, "", `{"phone":"1"}`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO membership_qa_item")).
		WithArgs(uint64(42), "Telefon", "1", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO membership_qa_item")).
		WithArgs(uint64(42), "Așteptări", "Hobby", 2).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), sampleApp(), []QARow{
		{Question: "Telefon", Answer: "1", Order: 0},
		{Question: "Așteptări", Answer: "Hobby", Order: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackOnRowFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO membership_application").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO membership_qa_item").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), sampleApp(), []QARow{{Question: "Q", Answer: "A"}})
	assert.ErrorContains(t, err, "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}
