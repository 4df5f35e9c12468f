package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, config 0 = time-based)")
	generations := flag.Int("generations", 0, "Generations to run (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV history and config snapshot")
	logStats := flag.Bool("log-stats", false, "Force per-generation stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// CLI overrides
	rngSeed := cfg.Run.Seed
	if *seed != 0 {
		rngSeed = *seed
	}
	numGenerations := cfg.Run.Generations
	if *generations > 0 {
		numGenerations = *generations
	}
	outDir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		outDir = *outputDir
	}
	emitStats := cfg.Telemetry.LogStats || *logStats

	selection, ok := sim.ParseSelection(cfg.Run.Selection)
	if !ok {
		slog.Warn("unrecognized selection criterion, everyone survives",
			"selection", cfg.Run.Selection,
		)
	}

	if cfg.Derived.Occupancy > 0.5 {
		slog.Warn("population close to grid capacity, spawn sampling degrades",
			"population", cfg.Population.Size,
			"cells", cfg.Derived.GridCells,
			"occupancy", cfg.Derived.Occupancy,
		)
	}

	engine := sim.NewEngine(sim.Params{
		WorldWidth:      cfg.World.Width,
		WorldHeight:     cfg.World.Height,
		PopulationSize:  cfg.Population.Size,
		GenomeLength:    cfg.Genome.Length,
		InternalNeurons: cfg.Brain.InternalNeurons,
		StepsPerGen:     cfg.Run.StepsPerGen,
		MutationRate:    cfg.Genome.MutationRate,
		Selection:       selection,
	}, rngSeed)

	for _, b := range cfg.Barriers {
		engine.AddBarrier(b.X, b.Y)
	}

	output, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"run_id", output.RunID(),
		"world_width", cfg.World.Width,
		"world_height", cfg.World.Height,
		"population", cfg.Population.Size,
		"steps_per_gen", cfg.Run.StepsPerGen,
		"generations", numGenerations,
		"selection", selection.String(),
		"seed", rngSeed,
	)

	engine.SpawnGeneration(nil)

	for i := 0; i < numGenerations; i++ {
		stats := engine.RunOneGeneration()

		if emitStats {
			slog.Info("generation complete", "stats", stats)
		}
		if err := output.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation stats", "error", err)
			os.Exit(1)
		}
	}

	summary := telemetry.Summarize(engine.History())
	if err := output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}

	slog.Info("simulation finished", "summary", summary)
}
