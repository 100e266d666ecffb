// internal/membership/repository.go
//
// MySQL persistence for applications.
//
// The application row and its QA rows are written in one transaction so a
// reader never sees an application without its flattened answers.

package membership

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists one application with its QA rows and returns the new id.
type Store interface {
	Create(ctx context.Context, app *Application, rows []QARow) (uint64, error)
}

// Repository is the sqlx-backed Store.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const insertApplication = `
    INSERT INTO membership_application
           (created_at, parent_name, phone, email, child_name, child_age,
            expectation, source, art_relationship, qa_snapshot,
            ip_address, user_agent, raw_payload)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertQAItem = `
    INSERT INTO membership_qa_item (application_id, question, answer, ` + "`order`" + `)
    VALUES (?, ?, ?, ?)`

// Create inserts app and rows atomically.
func (r *Repository) Create(ctx context.Context, app *Application, rows []QARow) (id uint64, err error) {
	snapshot, err := json.Marshal(app.QASnapshot)
	if err != nil {
		return 0, fmt.Errorf("encode qa snapshot: %w", err)
	}
	raw := app.RawPayload
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin application tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, insertApplication,
		app.CreatedAt, app.ParentName, app.Phone, app.Email, app.ChildName,
		app.ChildAge, app.Expectation, app.Source, app.ArtRelationship,
		string(snapshot), nullString(app.IP), app.UserAgent, string(raw))
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	last, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("application id: %w", err)
	}
	id = uint64(last)

	for _, row := range rows {
		if _, err = tx.ExecContext(ctx, insertQAItem, id, row.Question, row.Answer, row.Order); err != nil {
			return 0, fmt.Errorf("insert qa item %d: %w", row.Order, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit application: %w", err)
	}
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
