// Package property defines the property-record domain types and the
// snapshot conversion from stored numbers-framework rows into the engine's
// InputModel. Each property is provisioned with three frameworks
// (documents, numbers, summary); the numbers framework is the engine's
// input source.
package property

import (
	"sort"
	"strings"
	"time"

	"rama_assistant/pkg/core/numbers"
)

// Property is one rural-property record.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// LineItem is one row of a property's numbers framework. Amount is nil
// until the user dictates a value for the cell.
type LineItem struct {
	GroupName string    `json:"group_name"`
	ItemKey   string    `json:"item_key"`
	ItemLabel string    `json:"item_label"`
	IsPercent bool      `json:"is_percent"`
	Amount    *float64  `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShortID derives the 8-char schema prefix from a property UUID.
func ShortID(propertyID string) string {
	s := strings.ReplaceAll(propertyID, "-", "")
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// Per-property schema names; provisioning creates all three on insert.
func NumbersSchema(propertyID string) string {
	return "prop_" + ShortID(propertyID) + "__numbers_framework"
}

func DocsSchema(propertyID string) string {
	return "prop_" + ShortID(propertyID) + "__documents_framework"
}

func SummarySchema(propertyID string) string {
	return "prop_" + ShortID(propertyID) + "__framework_summary_property"
}

// InputModelFromLineItems folds framework rows into an engine snapshot.
// Rows with keys the engine does not know (extra framework items) are
// skipped; rows without an amount stay absent in the model.
func InputModelFromLineItems(items []LineItem) numbers.InputModel {
	var in numbers.InputModel
	for _, item := range items {
		if item.Amount == nil {
			continue
		}
		f, err := numbers.ParseField(item.ItemKey)
		if err != nil {
			continue
		}
		in = in.With(f, *item.Amount)
	}
	return in
}

// MissingItems lists framework rows that still have no value, for the
// assistant's "qué falta" summary.
func MissingItems(items []LineItem) []string {
	var missing []string
	for _, item := range items {
		if item.Amount == nil {
			missing = append(missing, item.ItemKey)
		}
	}
	sort.Strings(missing)
	return missing
}

// MatchScore ranks a property against a free-text query by token overlap
// on name and address. Zero means no token matched.
func MatchScore(query string, p Property) float64 {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return 0
	}
	haystack := strings.ToLower(p.Name + " " + p.Address)
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// RankMatches returns properties with a positive match score, best first.
func RankMatches(query string, props []Property, limit int) []Property {
	type scored struct {
		p Property
		s float64
	}
	var out []scored
	for _, p := range props {
		if s := MatchScore(query, p); s > 0 {
			out = append(out, scored{p, s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].s > out[j].s })
	if limit <= 0 {
		limit = 5
	}
	if len(out) > limit {
		out = out[:limit]
	}
	ranked := make([]Property, len(out))
	for i, s := range out {
		ranked[i] = s.p
	}
	return ranked
}
