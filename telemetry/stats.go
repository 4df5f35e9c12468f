// Package telemetry records per-generation statistics and writes
// structured run output: CSV history, config snapshots and a run summary.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats is the stat record appended to the engine's history once
// per completed generation.
type GenerationStats struct {
	Generation      int     `csv:"generation" yaml:"generation"`
	Survivors       int     `csv:"survivors" yaml:"survivors"`
	SurvivalRate    float64 `csv:"survival_rate" yaml:"survival_rate"`
	KillCount       int     `csv:"kill_count" yaml:"kill_count"`
	AvgGenomeLength float64 `csv:"avg_genome_length" yaml:"avg_genome_length"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("survivors", s.Survivors),
		slog.Float64("survival_rate", s.SurvivalRate),
		slog.Int("kill_count", s.KillCount),
		slog.Float64("avg_genome_length", s.AvgGenomeLength),
	)
}

// RunSummary aggregates a whole run's history.
type RunSummary struct {
	Generations    int     `yaml:"generations"`
	MeanSurvival   float64 `yaml:"mean_survival"`
	StdSurvival    float64 `yaml:"std_survival"`
	BestSurvival   float64 `yaml:"best_survival"`
	BestGeneration int     `yaml:"best_generation"`
	FirstSurvival  float64 `yaml:"first_survival"`
	FinalSurvival  float64 `yaml:"final_survival"`
	Extinctions    int     `yaml:"extinctions"`
}

// Summarize reduces a run history to its headline aggregates. An empty
// history yields the zero summary.
func Summarize(history []GenerationStats) RunSummary {
	if len(history) == 0 {
		return RunSummary{}
	}

	rates := make([]float64, len(history))
	extinctions := 0
	for i, s := range history {
		rates[i] = s.SurvivalRate
		if s.Survivors == 0 {
			extinctions++
		}
	}

	best := floats.MaxIdx(rates)

	summary := RunSummary{
		Generations:    len(history),
		MeanSurvival:   stat.Mean(rates, nil),
		BestSurvival:   rates[best],
		BestGeneration: history[best].Generation,
		FirstSurvival:  rates[0],
		FinalSurvival:  rates[len(rates)-1],
		Extinctions:    extinctions,
	}
	if len(rates) > 1 {
		summary.StdSurvival = stat.StdDev(rates, nil)
	}
	return summary
}

// LogValue implements slog.LogValuer for structured logging.
func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.Generations),
		slog.Float64("mean_survival", s.MeanSurvival),
		slog.Float64("std_survival", s.StdSurvival),
		slog.Float64("best_survival", s.BestSurvival),
		slog.Int("best_generation", s.BestGeneration),
		slog.Float64("first_survival", s.FirstSurvival),
		slog.Float64("final_survival", s.FinalSurvival),
		slog.Int("extinctions", s.Extinctions),
	)
}
