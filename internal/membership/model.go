// Package membership implements the membership application intake
// pipeline: payload validation, Q&A snapshot reconciliation against the
// site's question catalog, persistence, and the office notification mail.
package membership

import (
	"encoding/json"
	"time"
)

// Expectations accepted from the form, mapped to their display label.
var expectationLabels = map[string]string{
	"hobby":       "Hobby",
	"performance": "Performanță",
}

// DefaultSource is stored when the client sends no source.
const DefaultSource = "website"

// MaxQuestionLen caps QA row questions to the column width.
const MaxQuestionLen = 255

// QAItem is one question/answer pair of the snapshot.
type QAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Application is the audit record written once per submission.
type Application struct {
	ID              uint64          `db:"id"`
	CreatedAt       time.Time       `db:"created_at"`
	ParentName      string          `db:"parent_name"`
	Phone           string          `db:"phone"`
	Email           string          `db:"email"`
	ChildName       string          `db:"child_name"`
	ChildAge        string          `db:"child_age"`
	Expectation     string          `db:"expectation"`
	Source          string          `db:"source"`
	ArtRelationship string          `db:"art_relationship"`
	QASnapshot      []QAItem        `db:"-"`
	IP              string          `db:"-"`
	UserAgent       string          `db:"user_agent"`
	RawPayload      json.RawMessage `db:"-"`
}

// ExpectationLabel returns the human label for Expectation.
func (a *Application) ExpectationLabel() string {
	return expectationLabels[a.Expectation]
}

// QARow is one persisted membership_qa_item.
type QARow struct {
	Question string
	Answer   string
	Order    int
}

// RequestMeta carries what the HTTP layer knows about the caller.
type RequestMeta struct {
	IP        string
	UserAgent string
}
