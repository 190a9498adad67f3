// Package assistant routes Spanish user turns over the numbers framework.
// A deterministic regex pass resolves the common dictation patterns ("pon
// construcción a 150.000", "¿y si el precio baja un 10%?") without touching
// a model; anything it cannot classify falls through to the LLM planner.
package assistant

import (
	"regexp"
	"sort"
	"strings"

	"rama_assistant/pkg/core/numbers"
)

type IntentKind string

const (
	IntentSetNumber   IntentKind = "set_number"
	IntentCalc        IntentKind = "calc"
	IntentWhatIf      IntentKind = "what_if"
	IntentBreakEven   IntentKind = "break_even"
	IntentSensitivity IntentKind = "sensitivity"
	IntentShowTable   IntentKind = "show_table"
	IntentUnknown     IntentKind = "unknown"
)

// Intent is the routed form of one user turn.
type Intent struct {
	Kind IntentKind

	// set_number
	Field     numbers.Field
	Value     float64
	IsPercent bool

	// what_if
	Deltas map[numbers.Field]numbers.Delta

	// break_even
	Variable     numbers.Field
	TargetMetric numbers.Metric
	TargetValue  float64
}

var (
	setRx    = regexp.MustCompile(`(?i)^\s*pon(?:er|me)?\s+(?:el\s+|la\s+|los\s+|las\s+)?(.+?)\s+a\s+(-?[0-9][0-9.,]*\s*%?)\s*\.?\s*$`)
	whatIfRx = regexp.MustCompile(`(?i)(?:y\s+si|qu[eé]\s+pasa(?:r[ií]a)?\s+si)\b(.+)$`)
	clauseRx = regexp.MustCompile(`(?i)(?:el\s+|la\s+|los\s+|las\s+)?([a-záéíóúñü][a-záéíóúñü_0-9 ]*?)\s+(sube|baja|aumenta|cae|crece)\s+(?:un\s+|en\s+un\s+)?(-?[0-9][0-9.,]*)\s*(%|por\s*ciento)`)
	brkRx    = regexp.MustCompile(`(?i)(?:punto\s+de\s+equilibrio|break[\s-]?even|umbral\s+de\s+rentabilidad)(?:\s+(?:de|del|de\s+la|de\s+los)\s+(.+?))?\s*\??\s*$`)
)

// accentFold collapses Spanish diacritics so dictated text matches
// unaccented aliases.
var accentFold = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ñ", "n",
)

func normalize(s string) string {
	return accentFold.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// fieldAliases maps normalized Spanish phrases to input fields. Longest
// alias wins, so "terreno urbano" resolves before "terreno".
var fieldAliases = map[string]numbers.Field{
	"precio de venta":     numbers.FieldPrecioVenta,
	"precio venta":        numbers.FieldPrecioVenta,
	"precio":              numbers.FieldPrecioVenta,
	"venta":               numbers.FieldPrecioVenta,
	"impuestos":           numbers.FieldImpuestosPct,
	"iva":                 numbers.FieldImpuestosPct,
	"project mgmt fees":   numbers.FieldProjectMgmtFees,
	"fees":                numbers.FieldProjectMgmtFees,
	"honorarios":          numbers.FieldProjectMgmtFees,
	"terrenos":            numbers.FieldTerrenosCoste,
	"coste de terrenos":   numbers.FieldTerrenosCoste,
	"project management":  numbers.FieldProjectManagementCoste,
	"gestion de proyecto": numbers.FieldProjectManagementCoste,
	"gestion":             numbers.FieldProjectManagementCoste,
	"acometidas":          numbers.FieldAcometidas,
	"construccion":        numbers.FieldCostesConstruccion,
	"obra":                numbers.FieldCostesConstruccion,
	"total pagado":        numbers.FieldTotalPagado,
	"pagado":              numbers.FieldTotalPagado,
	"terreno urbano":      numbers.FieldTerrenoUrbano,
	"urbano":              numbers.FieldTerrenoUrbano,
	"terreno rustico":     numbers.FieldTerrenoRustico,
	"rustico":             numbers.FieldTerrenoRustico,
	"superficie":          numbers.FieldSuperficieM2,
	"metros construidos":  numbers.FieldSuperficieM2,
	"m2":                  numbers.FieldSuperficieM2,
}

// aliasOrder holds alias keys sorted longest-first.
var aliasOrder = func() []string {
	keys := make([]string, 0, len(fieldAliases))
	for k := range fieldAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// MatchField resolves a dictated item name to an input field. Exact wire
// names ("precio_venta") are accepted first, then alias substrings.
func MatchField(text string) (numbers.Field, bool) {
	norm := normalize(text)
	if f, err := numbers.ParseField(norm); err == nil {
		return f, true
	}
	for _, alias := range aliasOrder {
		if strings.Contains(norm, alias) {
			return fieldAliases[alias], true
		}
	}
	return "", false
}

// ParseIntent classifies one turn without calling a model. Returns
// IntentUnknown when no deterministic pattern applies.
func ParseIntent(text string) Intent {
	norm := normalize(text)

	if m := setRx.FindStringSubmatch(text); m != nil {
		if f, ok := MatchField(m[1]); ok {
			if v, pct, err := ParseAmount(m[2]); err == nil {
				return Intent{Kind: IntentSetNumber, Field: f, Value: v, IsPercent: pct}
			}
		}
	}

	if m := whatIfRx.FindStringSubmatch(text); m != nil {
		deltas := map[numbers.Field]numbers.Delta{}
		for _, c := range clauseRx.FindAllStringSubmatch(m[1], -1) {
			f, ok := MatchField(c[1])
			if !ok {
				continue
			}
			v, _, err := ParseAmount(c[3])
			if err != nil {
				continue
			}
			frac := v / 100.0
			switch normalize(c[2]) {
			case "baja", "cae":
				frac = -frac
			}
			deltas[f] = numbers.Delta{Mode: numbers.DeltaPercent, Value: frac}
		}
		if len(deltas) > 0 {
			return Intent{Kind: IntentWhatIf, Deltas: deltas}
		}
	}

	if m := brkRx.FindStringSubmatch(text); m != nil {
		it := Intent{Kind: IntentBreakEven, Variable: numbers.FieldPrecioVenta, TargetMetric: numbers.MetricNetProfit}
		if m[1] != "" {
			if f, ok := MatchField(m[1]); ok {
				it.Variable = f
			}
		}
		return it
	}

	if strings.Contains(norm, "sensibilidad") {
		return Intent{Kind: IntentSensitivity, TargetMetric: numbers.MetricNetProfit}
	}

	if strings.Contains(norm, "calcula") || strings.Contains(norm, "recalcula") {
		return Intent{Kind: IntentCalc}
	}

	if strings.Contains(norm, "tabla") || strings.Contains(norm, "muestra los numeros") || strings.Contains(norm, "ver los numeros") {
		return Intent{Kind: IntentShowTable}
	}

	return Intent{Kind: IntentUnknown}
}
