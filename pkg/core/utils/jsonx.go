// Package utils holds small helpers shared across the audit pipeline.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON defects in registry payloads:
// single quotes, trailing commas, unclosed containers, stray comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses a lenient Hjson document and re-emits standard JSON.
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

// SmartParse unmarshals input into target using progressively more lenient
// strategies: strict JSON, then repaired JSON, then Hjson. The registry's
// older endpoints occasionally serve payloads only the lenient paths accept.
func SmartParse(input []byte, target interface{}) error {
	if err := json.Unmarshal(input, target); err == nil {
		return nil
	}
	if repaired, err := RepairJSON(string(input)); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}
	if fromHjson, err := ParseHJSON(string(input)); err == nil {
		if err := json.Unmarshal([]byte(fromHjson), target); err == nil {
			return nil
		}
	}
	return fmt.Errorf("all parsing strategies failed for payload of %d bytes", len(input))
}
