// Package validate runs the fixed battery of structural and statistical
// checks against the cleaned dataset and renders the three-tier validation
// report.
package validate

import (
	"fmt"
	"strings"
)

// Report accumulates check outcomes in three ordered tiers. The overall
// verdict is FAIL iff Failed is non-empty; warnings never flip it.
type Report struct {
	Passed   []string
	Warnings []string
	Failed   []string
}

// OK records a passed check message.
func (r *Report) OK(format string, a ...any) {
	r.Passed = append(r.Passed, fmt.Sprintf(format, a...))
}

// Warn records a warning message.
func (r *Report) Warn(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

// Fail records a failure message.
func (r *Report) Fail(format string, a ...any) {
	r.Failed = append(r.Failed, fmt.Sprintf(format, a...))
}

// Verdict returns "PASS" or "FAIL".
func (r *Report) Verdict() string {
	if len(r.Failed) > 0 {
		return "FAIL"
	}
	return "PASS"
}

const ruleWidth = 70

// Render produces the deterministic plain-text report: PASSED, WARNINGS and
// FAILED sections with counts, then the one-line summary.
func (r *Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(&b, "%s\nVALIDATION REPORT\n%s\n", rule, rule)

	fmt.Fprintf(&b, "\n  PASSED  (%d)\n", len(r.Passed))
	for _, m := range r.Passed {
		fmt.Fprintf(&b, "    [OK]   %s\n", m)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\n  WARNINGS  (%d)\n", len(r.Warnings))
		for _, m := range r.Warnings {
			fmt.Fprintf(&b, "    [WARN] %s\n", m)
		}
	}

	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, "\n  FAILED  (%d)\n", len(r.Failed))
		for _, m := range r.Failed {
			fmt.Fprintf(&b, "    [FAIL] %s\n", m)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", strings.Repeat("-", ruleWidth))
	fmt.Fprintf(&b, "  Result: %s  |  Passed: %d  |  Warnings: %d  |  Failed: %d\n",
		r.Verdict(), len(r.Passed), len(r.Warnings), len(r.Failed))
	b.WriteString(rule + "\n")
	return b.String()
}
