package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.Operations.WithLabelValues("list", ResultOK).Inc()

	if got := testutil.ToFloat64(a.Operations.WithLabelValues("list", ResultOK)); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(b.Operations.WithLabelValues("list", ResultOK)); got != 0 {
		t.Errorf("expected registries to be independent, got %v", got)
	}
}

func TestWriteSummary(t *testing.T) {
	m := New()
	m.Operations.WithLabelValues("update", ResultNotFound).Inc()
	m.Operations.WithLabelValues("create", ResultOK).Add(2)

	var buf bytes.Buffer
	if err := m.WriteSummary(&buf); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "create") || !strings.HasSuffix(lines[0], "2") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "not_found") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := New().WriteSummary(&buf); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No store operations recorded") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
