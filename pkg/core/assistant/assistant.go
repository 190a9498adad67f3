package assistant

import (
	"context"
	"fmt"
	"strings"

	"rama_assistant/pkg/core/agent"
	"rama_assistant/pkg/core/numbers"
	"rama_assistant/pkg/core/prompt"
)

// Assistant resolves a user turn into an intent, runs it against the
// numbers engine, and narrates the result. Persistence stays with the
// caller: set_number turns come back as a pending write, never applied
// here.
type Assistant struct {
	Manager *agent.Manager
}

// TurnResult carries everything a handler needs to respond to one turn.
type TurnResult struct {
	Intent    Intent                   `json:"intent"`
	Calc      *numbers.CalcResult      `json:"calc,omitempty"`
	Scenario  *numbers.ScenarioResult  `json:"scenario,omitempty"`
	BreakEven *numbers.BreakEvenResult `json:"break_even,omitempty"`
	Grid      *numbers.SensitivityGrid `json:"grid,omitempty"`
	Summary   string                   `json:"summary"`
	Narration string                   `json:"narration,omitempty"`
}

func New(mgr *agent.Manager) *Assistant {
	return &Assistant{Manager: mgr}
}

// Route classifies a turn: regex pass first, planner model as fallback.
// With a nil manager the fallback is skipped and unmatched turns stay
// unknown, which keeps the engine usable offline.
func (a *Assistant) Route(ctx context.Context, userText string) Intent {
	it := ParseIntent(userText)
	if it.Kind != IntentUnknown || a.Manager == nil {
		return it
	}
	planned, err := PlanIntent(ctx, a.Manager, userText)
	if err != nil {
		fmt.Printf("[Assistant] planner fallback failed: %v\n", err)
		return Intent{Kind: IntentUnknown}
	}
	return planned
}

// Execute runs a routed intent against the baseline inputs.
func (a *Assistant) Execute(it Intent, baseline numbers.InputModel) (TurnResult, error) {
	res := TurnResult{Intent: it}

	switch it.Kind {
	case IntentSetNumber:
		// Percentage fields are stored as fractions (7% -> 0.07).
		v := it.Value
		if it.IsPercent {
			v = v / 100.0
		}
		res.Intent.Value = v
		res.Summary = fmt.Sprintf("Apunto %s = %g.", it.Field, v)

	case IntentCalc, IntentShowTable:
		calc, err := numbers.Calculate(baseline, "assistant", string(it.Kind))
		if err != nil {
			return res, err
		}
		res.Calc = &calc
		res.Summary = summarizeCalc(calc)

	case IntentWhatIf:
		sc, err := numbers.ApplyScenario(baseline, it.Deltas)
		if err != nil {
			return res, err
		}
		res.Scenario = &sc
		res.Summary = summarizeScenario(sc)

	case IntentBreakEven:
		opts := numbers.DefaultBreakEvenOptions()
		opts.TargetValue = it.TargetValue
		be, err := numbers.SolveBreakEven(baseline, it.Variable, it.TargetMetric, opts)
		if err != nil {
			return res, err
		}
		res.BreakEven = &be
		res.Summary = summarizeBreakEven(be, it.TargetValue)

	case IntentSensitivity:
		grid, err := defaultGrid(baseline, it.TargetMetric)
		if err != nil {
			return res, err
		}
		res.Grid = &grid
		res.Summary = fmt.Sprintf("Sensibilidad de %s: %d×%d valores calculados.",
			grid.TargetMetric, len(grid.RowValues), len(grid.ColValues))

	default:
		res.Summary = "No he entendido la petición sobre los números."
	}
	return res, nil
}

// Narrate turns the tool summary into a conversational reply. Narration is
// best-effort: on any model failure the plain summary is the reply.
func (a *Assistant) Narrate(ctx context.Context, userText string, res *TurnResult) {
	res.Narration = res.Summary
	if a.Manager == nil {
		return
	}
	systemPrompt, err := prompt.Get().GetSystemPrompt(prompt.PromptIDs.AssistantNarration)
	if err != nil {
		return
	}
	input := fmt.Sprintf("Usuario: %s\nResultado: %s", userText, res.Summary)
	out, err := a.Manager.ExecutePrompt(ctx, "assistant", input, systemPrompt, nil)
	if err != nil || strings.TrimSpace(out) == "" {
		return
	}
	res.Narration = strings.TrimSpace(out)
}

// defaultGrid sweeps precio_venta and costes_construccion ±20% around the
// baseline in 5 steps each.
func defaultGrid(baseline numbers.InputModel, target numbers.Metric) (numbers.SensitivityGrid, error) {
	rows := sweep(baseline, numbers.FieldPrecioVenta)
	cols := sweep(baseline, numbers.FieldCostesConstruccion)
	return numbers.Sensitivity(baseline, numbers.FieldPrecioVenta, rows,
		numbers.FieldCostesConstruccion, cols, target)
}

func sweep(baseline numbers.InputModel, f numbers.Field) []float64 {
	center := 0.0
	if v := baseline.Get(f); v != nil {
		center = *v
	}
	out := make([]float64, 0, 5)
	for _, pct := range []float64{-0.20, -0.10, 0.0, 0.10, 0.20} {
		out = append(out, center*(1.0+pct))
	}
	return out
}

func summarizeCalc(c numbers.CalcResult) string {
	var sb strings.Builder
	sb.WriteString("Métricas:")
	for _, m := range numbers.AllMetrics {
		if v := c.Metrics.Get(m); v != nil {
			fmt.Fprintf(&sb, " %s=%.2f", m, *v)
		}
	}
	if len(c.Anomalies) > 0 {
		sb.WriteString(" | Avisos:")
		for _, a := range c.Anomalies {
			fmt.Fprintf(&sb, " [%s] %s", a.Code, a.Message)
		}
	}
	return sb.String()
}

func summarizeScenario(sc numbers.ScenarioResult) string {
	var sb strings.Builder
	sb.WriteString("Escenario:")
	for _, m := range numbers.AllMetrics {
		if v := sc.Metrics.Get(m); v != nil {
			fmt.Fprintf(&sb, " %s=%.2f", m, *v)
		}
	}
	if len(sc.Anomalies) > 0 {
		sb.WriteString(" | Avisos:")
		for _, a := range sc.Anomalies {
			fmt.Fprintf(&sb, " [%s] %s", a.Code, a.Message)
		}
	}
	return sb.String()
}

func summarizeBreakEven(be numbers.BreakEvenResult, target float64) string {
	if !be.Converged || be.Solution == nil {
		return fmt.Sprintf("No he encontrado punto de equilibrio para %s sobre %s.",
			be.TargetMetric, be.VariableField)
	}
	return fmt.Sprintf("Punto de equilibrio: %s = %.2f deja %s en %.2f.",
		be.VariableField, *be.Solution, be.TargetMetric, target)
}
