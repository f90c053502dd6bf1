package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/platform/app"
	"github.com/plus3/platform/ecs"
)

// FrameTimes accumulates the wall time of each stepped frame.
type FrameTimes struct {
	Min, Max, Avg, P99 time.Duration

	samples []time.Duration
}

func (f *FrameTimes) Add(d time.Duration) { f.samples = append(f.samples, d) }

func (f FrameTimes) Len() int { return len(f.samples) }

// Finalize computes the summary fields from the recorded samples.
func (f *FrameTimes) Finalize() {
	if len(f.samples) == 0 {
		return
	}
	sorted := slices.Clone(f.samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	f.Min = sorted[0]
	f.Max = sorted[len(sorted)-1]
	f.Avg = total / time.Duration(len(sorted))
	f.P99 = sorted[(len(sorted)-1)*99/100]
}

type Report struct {
	Duration   time.Duration
	Entities   int
	Churn      int
	Components int

	Elapsed time.Duration
	Frames  FrameTimes
	Draws   int64
	Phases  []app.PhaseStats
	Spawner ecs.SpawnerStats

	GCPauseMetrics bool
	MemBefore      runtime.MemStats
	MemAfter       runtime.MemStats
}

// FramesPerSecond is the achieved step rate over the whole run.
func (r *Report) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames.Len()) / r.Elapsed.Seconds()
}

type memoryRow struct {
	Name          string
	Before, After uint64
}

func (m memoryRow) Delta() int64 { return int64(m.After) - int64(m.Before) }

func (r *Report) Memory() []memoryRow {
	return []memoryRow{
		{"heap alloc", r.MemBefore.HeapAlloc, r.MemAfter.HeapAlloc},
		{"total alloc", r.MemBefore.TotalAlloc, r.MemAfter.TotalAlloc},
		{"sys", r.MemBefore.Sys, r.MemAfter.Sys},
		{"gc cycles", uint64(r.MemBefore.NumGC), uint64(r.MemAfter.NumGC)},
	}
}

func (r *Report) GCPause() time.Duration {
	return time.Duration(r.MemAfter.PauseTotalNs - r.MemBefore.PauseTotalNs)
}

var reportTemplate = template.Must(template.New("report").Parse(`
# Spawner Stress Report

| setting | value |
|---|---|
| duration | {{.Duration}} |
| population | {{.Entities}} |
| churn per frame | {{.Churn}} |
| max components | {{.Components}} |

## Frames
{{.Frames.Len}} frames in {{.Elapsed}} ({{printf "%.1f" .FramesPerSecond}}/s), {{.Draws}} draw requests.

| min | avg | p99 | max |
|---|---|---|---|
| {{.Frames.Min}} | {{.Frames.Avg}} | {{.Frames.P99}} | {{.Frames.Max}} |

## Phases
| phase | runs | avg | min | max |
|---|---|---|---|---|
{{range .Phases}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}
## Spawner
{{.Spawner.LiveEntities}} live entities, {{.Spawner.ComponentCount}} components, {{.Spawner.Generation}} resolutions, last id {{.Spawner.LastID}}.

| component | instances | entities |
|---|---|---|
{{range .Spawner.ComponentBreakdown}}| {{.TypeName}} | {{.Count}} | {{.EntityCount}} |
{{end}}
## Memory
| metric | before | after | delta |
|---|---|---|---|
{{range .Memory}}| {{.Name}} | {{.Before}} | {{.After}} | {{.Delta}} |
{{end}}{{if .GCPauseMetrics}}
GC pause over the run: {{.GCPause}}
{{end}}`))

func (r *Report) Generate(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}
