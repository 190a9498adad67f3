// Package utils holds small parsing helpers shared by the assistant: LLM
// output is rarely clean JSON, so intent plans go through a repair ladder
// before they are trusted.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the usual LLM JSON defects: single quotes, unquoted
// keys, trailing commas, unclosed brackets, markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses human-friendly JSON (comments, optional commas,
// unquoted strings) and returns standard JSON.
func ParseHJSON(input string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(input), &result); err != nil {
		return "", fmt.Errorf("hjson parse failed: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json marshal failed: %w", err)
	}
	return string(out), nil
}

// SmartParse tries strict JSON, then repair, then Hjson, unmarshalling
// into schema on the first strategy that sticks. Returns the JSON that
// finally parsed.
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	if lenient, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(lenient), schema); err == nil {
			return lenient, nil
		}
	}

	return "", fmt.Errorf("all parsing strategies failed")
}
