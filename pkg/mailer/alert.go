package mailer

import (
	"fmt"
	"strings"
)

// Alert is the body of a dashboard notification email.
type Alert struct {
	Kind     string // test_failure, build_failure, coverage_drop
	RunName  string
	Message  string
	Failed   int
	Errored  int
	Total    int
	LogURL   string
	Coverage float64
}

// Subject returns the email subject line for the alert.
func (a Alert) Subject() string {
	switch a.Kind {
	case "coverage_drop":
		return fmt.Sprintf("[dashboard] coverage drop in %s", a.RunName)
	case "build_failure":
		return fmt.Sprintf("[dashboard] build failure in %s", a.RunName)
	default:
		return fmt.Sprintf("[dashboard] test failures in %s", a.RunName)
	}
}

// Text renders a plain-text body.
func (a Alert) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", a.RunName)
	fmt.Fprintf(&b, "%s\n\n", a.Message)
	fmt.Fprintf(&b, "failed=%d errored=%d total=%d coverage=%.1f%%\n", a.Failed, a.Errored, a.Total, a.Coverage)
	if a.LogURL != "" {
		fmt.Fprintf(&b, "log: %s\n", a.LogURL)
	}
	return b.String()
}
