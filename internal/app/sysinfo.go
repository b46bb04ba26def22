package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/tuidesk/internal/pool"
)

// SysinfoInterval is how often CPU and memory are sampled.
const SysinfoInterval = time.Second

// cpuSamples is the length of the CPU graph.
const cpuSamples = 10

var (
	graphBars      = []rune("▁▂▃▄▅▆▇█")
	graphBarsASCII = []rune("_.-=+*#@")
)

// sysinfoMsg carries one sample. A failed reading is negative.
type sysinfoMsg struct {
	CPU, Mem float64
}

// sampleSysinfo waits for the interval, then reads CPU and memory usage on
// the command goroutine. The CPU figure covers the time since the previous
// call.
func sampleSysinfo(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		msg := sysinfoMsg{CPU: -1, Mem: -1}
		if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
			msg.CPU = pct[0]
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			msg.Mem = vm.UsedPercent
		}
		return msg
	})
}

// CPUHistory is a fixed-length series of CPU usage percentages.
type CPUHistory []float64

// Add appends a sample, dropping the oldest beyond cpuSamples.
func (h CPUHistory) Add(pct float64) CPUHistory {
	h = append(h, min(max(pct, 0), 100))
	if len(h) > cpuSamples {
		h = h[len(h)-cpuSamples:]
	}
	return h
}

// Graph renders the history as a fixed-width bar graph, left padded while
// samples are missing.
func (h CPUHistory) Graph(ascii bool) string {
	bars := graphBars
	if ascii {
		bars = graphBarsASCII
	}
	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	b.WriteString(strings.Repeat(" ", cpuSamples-len(h)))
	for _, pct := range h {
		i := min(int(pct/100*float64(len(bars))), len(bars)-1)
		b.WriteRune(bars[i])
	}
	return b.String()
}

// Readout formats the status line text, always the same width so the
// layout does not shift.
func (h CPUHistory) Readout(memPct float64, ascii bool) string {
	cur := 0.0
	if len(h) > 0 {
		cur = h[len(h)-1]
	}
	out := fmt.Sprintf("CPU %s %3.0f%%", h.Graph(ascii), cur)
	if memPct >= 0 {
		out += fmt.Sprintf("  MEM %3.0f%%", memPct)
	}
	return out
}
