package gateway

import "fmt"

// Severity is the canonical severity vocabulary shared by events, rules,
// alerts and incidents. Historical records used numeric levels "1".."6";
// ParseSeverity folds those into the canonical set so that nothing else
// has to know both vocabularies exist
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var Severities = []Severity{
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

var legacySeverityLevels = map[string]Severity{
	"1": SeverityLow,
	"2": SeverityLow,
	"3": SeverityMedium,
	"4": SeverityHigh,
	"5": SeverityHigh,
	"6": SeverityCritical,
}

func ParseSeverity(value string) (Severity, error) {
	for _, known := range Severities {
		if Severity(value) == known {
			return known, nil
		}
	}
	if mapped, ok := legacySeverityLevels[value]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("failed to recognise severity '%s'", value)
}

func (s Severity) Validate() error {
	_, err := ParseSeverity(string(s))
	return err
}
