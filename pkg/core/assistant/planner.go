package assistant

import (
	"context"
	"fmt"

	"rama_assistant/pkg/core/agent"
	"rama_assistant/pkg/core/numbers"
	"rama_assistant/pkg/core/prompt"
	"rama_assistant/pkg/core/utils"
)

// plan is the JSON shape the intent prompt instructs the model to emit.
type plan struct {
	Action       string      `json:"action"`
	Field        string      `json:"field,omitempty"`
	Value        *float64    `json:"value,omitempty"`
	IsPercent    bool        `json:"is_percent,omitempty"`
	Deltas       []planDelta `json:"deltas,omitempty"`
	Variable     string      `json:"variable,omitempty"`
	TargetMetric string      `json:"target_metric,omitempty"`
	TargetValue  float64     `json:"target_value,omitempty"`
}

type planDelta struct {
	Field string  `json:"field"`
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

// PlanIntent asks the planner model to classify a turn the regex pass could
// not. Model output goes through the repair ladder before decoding, since
// smaller models routinely emit fenced or single-quoted JSON.
func PlanIntent(ctx context.Context, mgr *agent.Manager, userText string) (Intent, error) {
	systemPrompt, err := prompt.Get().GetSystemPrompt(prompt.PromptIDs.AssistantIntent)
	if err != nil {
		return Intent{Kind: IntentUnknown}, fmt.Errorf("intent prompt missing: %w", err)
	}

	raw, err := mgr.ExecutePrompt(ctx, "assistant", userText, systemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return Intent{Kind: IntentUnknown}, fmt.Errorf("planner call failed: %w", err)
	}

	var p plan
	if _, err := utils.SmartParse(raw, &p); err != nil {
		return Intent{Kind: IntentUnknown}, fmt.Errorf("planner output unparseable: %w", err)
	}
	return planToIntent(p)
}

func planToIntent(p plan) (Intent, error) {
	switch IntentKind(p.Action) {
	case IntentCalc:
		return Intent{Kind: IntentCalc}, nil
	case IntentShowTable:
		return Intent{Kind: IntentShowTable}, nil

	case IntentSetNumber:
		f, ok := MatchField(p.Field)
		if !ok {
			return Intent{Kind: IntentUnknown}, fmt.Errorf("planner named unknown field %q", p.Field)
		}
		if p.Value == nil {
			return Intent{Kind: IntentUnknown}, fmt.Errorf("planner set_number without value")
		}
		return Intent{Kind: IntentSetNumber, Field: f, Value: *p.Value, IsPercent: p.IsPercent}, nil

	case IntentWhatIf:
		deltas := map[numbers.Field]numbers.Delta{}
		for _, d := range p.Deltas {
			f, ok := MatchField(d.Field)
			if !ok {
				continue
			}
			mode := numbers.DeltaMode(d.Mode)
			if mode != numbers.DeltaPercent && mode != numbers.DeltaAbsolute {
				continue
			}
			deltas[f] = numbers.Delta{Mode: mode, Value: d.Value}
		}
		if len(deltas) == 0 {
			return Intent{Kind: IntentUnknown}, fmt.Errorf("planner what_if without usable deltas")
		}
		return Intent{Kind: IntentWhatIf, Deltas: deltas}, nil

	case IntentBreakEven:
		it := Intent{Kind: IntentBreakEven, Variable: numbers.FieldPrecioVenta, TargetMetric: numbers.MetricNetProfit, TargetValue: p.TargetValue}
		if p.Variable != "" {
			if f, ok := MatchField(p.Variable); ok {
				it.Variable = f
			}
		}
		if p.TargetMetric != "" {
			if m, err := numbers.ParseMetric(p.TargetMetric); err == nil {
				it.TargetMetric = m
			}
		}
		return it, nil

	case IntentSensitivity:
		it := Intent{Kind: IntentSensitivity, TargetMetric: numbers.MetricNetProfit}
		if p.TargetMetric != "" {
			if m, err := numbers.ParseMetric(p.TargetMetric); err == nil {
				it.TargetMetric = m
			}
		}
		return it, nil
	}
	return Intent{Kind: IntentUnknown}, nil
}
