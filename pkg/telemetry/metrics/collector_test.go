package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollector_RecordsAndServes(t *testing.T) {
	c := NewCollector(Config{}, nil)

	c.RecordEvaluation("residential-checks", false, 12*time.Millisecond)
	c.RecordEvaluation("residential-checks", true, 5*time.Millisecond)
	c.RecordViolations("residential-checks", "min-space-height", 2)
	c.RecordViolations("residential-checks", "space-envelope", 0)
	c.RecordSkippedRule("residential-checks")
	c.SetPackCount(3)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`buildcheck_evaluations_total{outcome="fail",pack="residential-checks"} 1`,
		`buildcheck_evaluations_total{outcome="pass",pack="residential-checks"} 1`,
		`buildcheck_violations_total{pack="residential-checks",rule="min-space-height"} 2`,
		`buildcheck_skipped_rules_total{pack="residential-checks"} 1`,
		`buildcheck_catalogue_packs 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	if strings.Contains(body, `rule="space-envelope"`) {
		t.Error("zero-count violations were recorded")
	}
}

func TestCollector_CustomNamespace(t *testing.T) {
	c := NewCollector(Config{Namespace: "compliance"}, nil)
	c.SetPackCount(1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "compliance_catalogue_packs 1") {
		t.Errorf("namespace not applied: %s", rec.Body.String())
	}
}
