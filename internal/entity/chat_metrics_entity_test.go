package entity

import (
	"math"
	"testing"
	"time"
)

func TestRecordAgentResponse(t *testing.T) {
	m := &ChatMetrics{}

	m.RecordAgentResponse(10)
	if m.ResponseSamples != 1 || m.AvgAgentResponseSeconds != 10 {
		t.Fatalf("after first sample: avg %v, samples %d", m.AvgAgentResponseSeconds, m.ResponseSamples)
	}

	m.RecordAgentResponse(20)
	if m.ResponseSamples != 2 {
		t.Errorf("ResponseSamples = %d, want 2", m.ResponseSamples)
	}
	if math.Abs(m.AvgAgentResponseSeconds-15.0) > 1e-9 {
		t.Errorf("AvgAgentResponseSeconds = %v, want 15", m.AvgAgentResponseSeconds)
	}

	m.RecordAgentResponse(30)
	if math.Abs(m.AvgAgentResponseSeconds-20.0) > 1e-9 {
		t.Errorf("AvgAgentResponseSeconds = %v, want 20", m.AvgAgentResponseSeconds)
	}
}

func TestMetricsFinalize(t *testing.T) {
	m := &ChatMetrics{}
	created := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	m.Finalize(created, created.Add(90*time.Second))
	if m.DurationSeconds == nil || *m.DurationSeconds != 90 {
		t.Errorf("DurationSeconds = %v, want 90", m.DurationSeconds)
	}
}
