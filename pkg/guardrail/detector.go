package guardrail

import (
	"regexp"
)

// Refusal codes emitted by input/output validation.
const (
	CodeQueryTooLong      = "QUERY_TOO_LONG"
	CodeInjectionDetected = "INJECTION_DETECTED"
	CodeEmptyAnswer       = "EMPTY_ANSWER"
	CodeNoCitations       = "NO_CITATIONS"
)

// DefaultScoreThreshold is the injection score above which input is refused.
const DefaultScoreThreshold = 0.70

// MaxQueryLength bounds validated input text.
const MaxQueryLength = 4096

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(previous|prior|above|all)\s+instructions?`),
	regexp.MustCompile(`(?i)system\s*prompt`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+`),
	regexp.MustCompile(`(?i)\[SYSTEM[:\s]`),
	regexp.MustCompile(`(?i)DAN\s+mode`),
	regexp.MustCompile(`(?i)jailbreak`),
	regexp.MustCompile(`(?i)reveal\s+(your|the)\s+(system\s+)?prompt`),
	regexp.MustCompile(`(?i)act\s+as\s+(if\s+you\s+are|a\s+)`),
	regexp.MustCompile(`(?i)disregard\s+(previous|prior|above)`),
	regexp.MustCompile(`(?i)override\s+(your\s+)?(instructions?|rules?|guidelines?)`),
	regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)`),
	regexp.MustCompile(`(?i)</?(system|assistant|user|instruction)>`),
}

var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),      // SSN (US)
	regexp.MustCompile(`\b\d{2}-\d{3}-\d{2}-\d{5}\b`), // Polish PESEL
	regexp.MustCompile(`\b[A-Z]{2}\d{7}\b`),           // Passport (simplified)
	regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`),      // Credit card (simplified)
}

// InjectionDetector scores text against known prompt-injection shapes.
type InjectionDetector struct {
	threshold float64
}

func NewInjectionDetector(scoreThreshold float64) *InjectionDetector {
	if scoreThreshold <= 0 {
		scoreThreshold = DefaultScoreThreshold
	}
	return &InjectionDetector{threshold: scoreThreshold}
}

// Score returns the injection score in [0,1] plus the matched pattern texts.
// Each matching pattern contributes 0.35, capped at 1.0.
func (d *InjectionDetector) Score(text string) (float64, []string) {
	var matches []string
	for _, pattern := range injectionPatterns {
		if m := pattern.FindString(text); m != "" {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return 0.0, nil
	}
	score := float64(len(matches)) * 0.35
	if score > 1.0 {
		score = 1.0
	}
	return score, matches
}

// IsInjection reports whether the score crosses the refusal threshold.
func (d *InjectionDetector) IsInjection(text string) (bool, float64, []string) {
	score, matches := d.Score(text)
	return score >= d.threshold, score, matches
}

// PIIDetector scans text for personally identifiable shapes.
type PIIDetector struct{}

func NewPIIDetector() *PIIDetector {
	return &PIIDetector{}
}

// Detect returns the patterns (as regexp source) that matched.
func (d *PIIDetector) Detect(text string) []string {
	var detected []string
	for _, pattern := range piiPatterns {
		if pattern.MatchString(text) {
			detected = append(detected, pattern.String())
		}
	}
	return detected
}
