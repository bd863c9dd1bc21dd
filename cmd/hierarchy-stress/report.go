package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	Worlds      int
	Entities    int
	Scenes      int
	OpsPerFrame int
	Seed        uint64

	// Results
	TotalTime     time.Duration
	Results       []*WorldResult
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Totals sums the per-world counters.
func (r *Report) Totals() WorldResult {
	var t WorldResult
	for _, w := range r.Results {
		t.Frames += w.Frames
		t.Reparents += w.Reparents
		t.Hoists += w.Hoists
		t.Destroys += w.Destroys
		t.Spawns += w.Spawns
		t.Switches += w.Switches
		t.FinalCount += w.FinalCount
		t.MaxDepth = max(t.MaxDepth, w.MaxDepth)
	}
	return t
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Hierarchy Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Worlds:** {{.Worlds}}
- **Entities per World:** {{.Entities}}
- **Scenes per World:** {{.Scenes}}
- **Operations per Frame:** {{.OpsPerFrame}}
- **Seed:** {{.Seed}}

## Results
- **Total Test Time:** {{.TotalTime}}
{{- with .Totals}}
- **Frames:** {{.Frames}}
- **Reparents:** {{.Reparents}} ({{.Hoists}} hoisted)
- **Destroys:** {{.Destroys}}
- **Spawns:** {{.Spawns}}
- **Scene Switches:** {{.Switches}}
- **Deepest Chain:** {{.MaxDepth}}
{{- end}}

## Per World
| World | Frames | Reparents | Hoists | Destroys | Entities | Depth | Avg Frame | Max Frame |
|-------|--------|-----------|--------|----------|----------|-------|-----------|-----------|
{{- range .Results}}
| {{.Index}} | {{.Frames}} | {{.Reparents}} | {{.Hoists}} | {{.Destroys}} | {{.FinalCount}} | {{.MaxDepth}} | {{.FrameTime.Avg}} | {{.FrameTime.Max}} |
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
