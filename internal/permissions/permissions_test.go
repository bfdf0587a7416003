package permissions

import (
	"runtime"
	"testing"
)

func TestReportAllowed(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNotApplicable, true},
		{StatusGranted, true},
		{StatusDenied, false},
	}
	for _, tt := range tests {
		if got := (Report{Status: tt.status}).Allowed(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestCheckInputMonitoringStub(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("requires the accessibility database")
	}
	report := CheckInputMonitoring(false)
	if report.Status != StatusNotApplicable || !report.Allowed() {
		t.Fatalf("unexpected report %+v", report)
	}
}
