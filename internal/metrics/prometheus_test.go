package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveTaskDuration("build", 150*time.Millisecond)
	pr.IncTaskOutcome("build", "success")
	pr.IncTaskOutcome("build", "success")
	pr.IncTaskOutcome("publish", "failure")
	pr.IncRebuild()

	if got := testutil.ToFloat64(pr.taskOutcomes.WithLabelValues("build", "success")); got != 2 {
		t.Fatalf("build success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.taskOutcomes.WithLabelValues("publish", "failure")); got != 1 {
		t.Fatalf("publish failure count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.rebuilds); got != 1 {
		t.Fatalf("rebuild count = %v, want 1", got)
	}

	// Scrape to ensure everything encodes.
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatal("expected metrics, got none")
	}
}

func TestHTTPHandlerServesExposition(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncTaskOutcome("watch", "success")

	ts := httptest.NewServer(HTTPHandler(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "blogbuilder_task_outcomes_total") {
		t.Fatalf("exposition missing task outcome metric:\n%s", body)
	}
}

func TestNilRecorderMethodsAreSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveTaskDuration("build", time.Second)
	pr.IncTaskOutcome("build", "success")
	pr.IncRebuild()

	NoopRecorder{}.ObserveTaskDuration("build", time.Second)
	NoopRecorder{}.IncTaskOutcome("build", "success")
	NoopRecorder{}.IncRebuild()
}
