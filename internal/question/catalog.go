// internal/question/catalog.go
//
// Question catalog resolver.
//
// Context
//   Editors keep the membership form's extra questions in the site settings
//   as a loosely typed YAML or JSON list (key `membership.questions`).  The
//   resolver turns that list into an ordered, de-duplicated slice of active
//   definitions.  It never fails the caller: a list that cannot be read at
//   all yields an empty catalog and one WARN line, and individual malformed
//   entries are skipped.
//
// Rules
//   •  Keep entries with a non-empty key and question_text that are active.
//   •  Keys must match [a-z0-9_]+.
//   •  required and is_active default to true; order defaults to 0.
//   •  Sort by (order, key); the first occurrence of a key wins.
//
//------------------------------------------------------------------------------

package question

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
)

// SettingsKey is the site_config key holding the raw list.
const SettingsKey = "membership.questions"

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Definition is one active catalog question.
type Definition struct {
	Key             string `json:"key"`
	QuestionText    string `json:"question_text"`
	SuggestedAnswer string `json:"suggested_answer"`
	Required        bool   `json:"required"`
	IsActive        bool   `json:"is_active"`
	Order           int    `json:"order"`
}

// FromSettings reads SettingsKey from a site's settings and resolves it.
// Missing key means an empty catalog.
func FromSettings(ctx context.Context, settings map[string]string) []Definition {
	raw := strings.TrimSpace(settings[SettingsKey])
	if raw == "" {
		return []Definition{}
	}
	defs, err := Parse(raw)
	if err != nil {
		logger.FromContext(ctx).Warnw("question catalog unreadable, serving empty list", "err", err)
		return []Definition{}
	}
	return defs
}

// Parse decodes a YAML or JSON document holding a list and resolves it.
func Parse(raw string) ([]Definition, error) {
	var entries []any
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode question list: %w", err)
	}
	return Resolve(entries), nil
}

// Resolve applies the catalog rules to already-decoded entries.
func Resolve(entries []any) []Definition {
	out := make([]Definition, 0, len(entries))
	for _, e := range entries {
		d, ok := definitionFrom(e)
		if !ok {
			continue
		}
		if d.Key == "" || d.QuestionText == "" || !d.IsActive {
			continue
		}
		if !keyPattern.MatchString(d.Key) {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Key < out[j].Key
	})

	seen := make(map[string]struct{}, len(out))
	uniq := out[:0]
	for _, d := range out {
		if _, dup := seen[d.Key]; dup {
			continue
		}
		seen[d.Key] = struct{}{}
		uniq = append(uniq, d)
	}
	return uniq
}

// definitionFrom coerces one loosely typed entry.  Entries may be a plain
// mapping or a block wrapper {type: question, value: {...}}.
func definitionFrom(e any) (Definition, bool) {
	m, ok := asMap(e)
	if !ok {
		return Definition{}, false
	}
	if t, has := m["type"]; has {
		if scalar(t) != "question" {
			return Definition{}, false
		}
		if m, ok = asMap(m["value"]); !ok {
			return Definition{}, false
		}
	}

	required, ok := boolField(m, "required")
	if !ok {
		return Definition{}, false
	}
	active, ok := boolField(m, "is_active")
	if !ok {
		return Definition{}, false
	}
	order, ok := intField(m, "order")
	if !ok {
		return Definition{}, false
	}

	return Definition{
		Key:             strings.TrimSpace(scalar(m["key"])),
		QuestionText:    strings.TrimSpace(scalar(m["question_text"])),
		SuggestedAnswer: strings.TrimSpace(scalar(m["suggested_answer"])),
		Required:        required,
		IsActive:        active,
		Order:           order,
	}, true
}

/*──────────────────────────── coercion helpers ─────────────────────────────*/

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// scalar renders strings, numbers, and bools; anything else is empty.
func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s)
	}
	return ""
}

// boolField defaults to true when absent.
func boolField(m map[string]any, key string) (bool, bool) {
	v, has := m[key]
	if !has {
		return true, true
	}
	switch b := v.(type) {
	case nil:
		return false, true
	case bool:
		return b, true
	case int:
		return b != 0, true
	case float64:
		return b != 0, true
	case string:
		s := strings.TrimSpace(b)
		if s == "" {
			return false, true
		}
		parsed, err := strconv.ParseBool(s)
		return parsed, err == nil
	}
	return false, false
}

// intField accepts ints, floats (truncated), and numeric strings.
func intField(m map[string]any, key string) (int, bool) {
	v, has := m[key]
	if !has || v == nil {
		return 0, true
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
