// internal/membership/payload.go
//
// Payload decoding and field validation.
//
// Context
//   The React form posts a loosely typed JSON object.  Fields are coerced
//   to strings the way the form expects: strings as-is, numbers in their
//   literal form, booleans as "true"/"false", and null or nested values as
//   empty.  Validation runs in a fixed order and stops at the first failing
//   rule, except the required-field check, which lists every missing field.
//
//------------------------------------------------------------------------------

package membership

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
)

var requiredFields = []string{"parent_name", "phone", "email", "child_name", "child_age", "expectation"}

var (
	digitRun = regexp.MustCompile(`[0-9]+`)
	validate = validator.New()
)

// payload is the decoded request body.
type payload map[string]any

// decodePayload parses body as a JSON object.  An empty body is an empty
// object.
func decodePayload(body []byte) (payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return payload{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var p payload
	if err := dec.Decode(&p); err != nil || p == nil {
		return nil, apperr.Validation(apperr.MalformedBody, "Invalid JSON body.")
	}
	if dec.More() {
		return nil, apperr.Validation(apperr.MalformedBody, "Invalid JSON body.")
	}
	return p, nil
}

// text coerces one JSON value to a string.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func (p payload) str(key string) string {
	return strings.TrimSpace(text(p[key]))
}

// qaItems returns the explicit qa_items list, or nil when absent, empty, or
// not a list.  Non-object entries become blank pairs so the original order
// indices survive.
func (p payload) qaItems() []QAItem {
	list, ok := p["qa_items"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]QAItem, 0, len(list))
	for _, e := range list {
		m, _ := e.(map[string]any)
		out = append(out, QAItem{
			Question: text(m["question"]),
			Answer:   text(m["answer"]),
		})
	}
	return out
}

// dynamicAnswers returns the key → answer map, or an empty map.
func (p payload) dynamicAnswers() map[string]any {
	m, ok := p["dynamic_answers"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// validateFields checks required fields, email, expectation, and age.  It
// returns the populated application on success.
func validateFields(p payload, minAge int) (*Application, error) {
	var missing []string
	for _, k := range requiredFields {
		if p.str(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		ve := apperr.Validation(apperr.MissingFields, "Missing required fields.")
		ve.Fields = missing
		return nil, ve
	}

	app := &Application{
		ParentName:      p.str("parent_name"),
		Phone:           p.str("phone"),
		Email:           p.str("email"),
		ChildName:       p.str("child_name"),
		ChildAge:        p.str("child_age"),
		Expectation:     p.str("expectation"),
		Source:          p.str("source"),
		ArtRelationship: p.str("art_relationship"),
	}
	if app.Source == "" {
		app.Source = DefaultSource
	}

	if err := validate.Var(app.Email, "email"); err != nil {
		return nil, apperr.Validation(apperr.InvalidEmail, "Email invalid.")
	}
	if _, ok := expectationLabels[app.Expectation]; !ok {
		return nil, apperr.Validation(apperr.InvalidChoice, "Expectation must be 'hobby' or 'performance'.")
	}

	age, err := ParseAge(app.ChildAge)
	if err != nil {
		return nil, apperr.Validation(apperr.InvalidAge, "Vârsta copilului este invalidă.")
	}
	if age < minAge {
		return nil, apperr.Validation(apperr.AgeBelowMinimum,
			fmt.Sprintf("Vârsta minimă pentru înscriere este %d ani.", minAge))
	}
	return app, nil
}

var errNoDigits = errors.New("no digits in age")

// ParseAge returns the first run of ASCII digits in s.  "5 ani" → 5.
// Runs too long for an int saturate at math.MaxInt.
func ParseAge(s string) (int, error) {
	run := digitRun.FindString(s)
	if run == "" {
		return 0, errNoDigits
	}
	n, err := strconv.Atoi(run)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, nil
	}
	return n, err
}
