package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCPUHistory(t *testing.T) {
	var h CPUHistory
	for i := range 15 {
		h = h.Add(float64(i * 10))
	}
	if len(h) != cpuSamples {
		t.Fatalf("len = %d, want %d", len(h), cpuSamples)
	}
	if h[0] != 50 || h[len(h)-1] != 100 {
		t.Errorf("history = %v", h)
	}

	h = h.Add(-5).Add(250)
	if h[len(h)-2] != 0 || h[len(h)-1] != 100 {
		t.Errorf("samples not clamped: %v", h)
	}
}

func TestCPUHistoryGraph(t *testing.T) {
	tests := []struct {
		name  string
		h     CPUHistory
		ascii bool
		want  string
	}{
		{"empty", nil, false, strings.Repeat(" ", cpuSamples)},
		{"idle and busy", CPUHistory{0, 100}, false, strings.Repeat(" ", cpuSamples-2) + "▁█"},
		{"ascii", CPUHistory{0, 50, 100}, true, strings.Repeat(" ", cpuSamples-3) + "_+@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.h.Graph(tt.ascii)
			if got != tt.want {
				t.Errorf("Graph() = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n != cpuSamples {
				t.Errorf("graph is %d cells", n)
			}
		})
	}
}

func TestCPUHistoryReadout(t *testing.T) {
	h := CPUHistory{}.Add(42)
	got := h.Readout(61.4, true)
	want := "CPU " + strings.Repeat(" ", cpuSamples-1) + "=  42%  MEM  61%"
	if got != want {
		t.Errorf("Readout() = %q, want %q", got, want)
	}
	if got := h.Readout(-1, true); strings.Contains(got, "MEM") {
		t.Errorf("failed memory reading shown: %q", got)
	}
}
