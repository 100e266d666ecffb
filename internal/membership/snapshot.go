// internal/membership/snapshot.go
//
// Q&A snapshot assembly.
//
// Context
//   The snapshot is the ordered list of question/answer pairs stored with
//   an application and echoed in the office mail.  Rows keep their
//   snapshot index as order; blank questions are not persisted.
//
//------------------------------------------------------------------------------

package membership

import (
	"strings"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/question"
)

// buildSnapshot returns the Q&A snapshot for app.  An explicit qa_items
// list wins; otherwise identity pairs, catalog answers, the optional art
// relationship, and the expectation label are assembled in that order.
func buildSnapshot(app *Application, p payload, questions []question.Definition) ([]QAItem, error) {
	if explicit := p.qaItems(); explicit != nil {
		return explicit, nil
	}

	items := []QAItem{
		{Question: "Nume părinte (complet)", Answer: app.ParentName},
		{Question: "Telefon", Answer: app.Phone},
		{Question: "Email", Answer: app.Email},
		{Question: "Nume copil", Answer: app.ChildName},
		{Question: "Vârsta copilului", Answer: app.ChildAge},
	}

	answers := p.dynamicAnswers()
	for _, q := range questions {
		ans := strings.TrimSpace(text(answers[q.Key]))
		if ans == "" {
			if q.Required {
				ve := apperr.Validation(apperr.MissingDynamicAnswer, "Lipsește răspunsul pentru: "+q.QuestionText)
				ve.Question = q.QuestionText
				return nil, ve
			}
			continue
		}
		items = append(items, QAItem{Question: q.QuestionText, Answer: ans})
	}

	if app.ArtRelationship != "" {
		items = append(items, QAItem{Question: "Relația cu arta", Answer: app.ArtRelationship})
	}
	items = append(items, QAItem{Question: "Așteptări", Answer: app.ExpectationLabel()})
	return items, nil
}

// qaRows flattens the snapshot into rows.  Blank questions are skipped but
// keep their slot in the order sequence; questions are cut to
// MaxQuestionLen runes.
func qaRows(items []QAItem) []QARow {
	rows := make([]QARow, 0, len(items))
	for i, it := range items {
		q := strings.TrimSpace(it.Question)
		if q == "" {
			continue
		}
		if r := []rune(q); len(r) > MaxQuestionLen {
			q = string(r[:MaxQuestionLen])
		}
		rows = append(rows, QARow{Question: q, Answer: strings.TrimSpace(it.Answer), Order: i})
	}
	return rows
}
