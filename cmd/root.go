package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/station-sim/station-sim/config"
	"github.com/station-sim/station-sim/sim"
	"github.com/station-sim/station-sim/sim/report"
	"github.com/station-sim/station-sim/sim/trace"
	"github.com/station-sim/station-sim/sim/workload"
)

var (
	// CLI flags for the simulation run
	configPath   string // Optional station config file (yaml/json)
	catalogPath  string // Dispenser catalog file
	requestsPath string // Customer request stream file
	pricesPath   string // Optional YAML price table
	seed         int64  // Seed for random service durations and selection
	logLevel     string // Log verbosity level
	policy       string // Dispenser selection policy
	traceLevel   string // Decision trace level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "station-sim",
	Short: "Discrete-event simulator for fuel station dispensers",
}

// buildConfig merges the optional config file with explicitly set flags;
// flags win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if cmd.Flags().Changed("catalog") || cfg.Catalog == "" {
		cfg.Catalog = catalogPath
	}
	if cmd.Flags().Changed("requests") || cfg.Requests == "" {
		cfg.Requests = requestsPath
	}
	if cmd.Flags().Changed("prices") {
		cfg.Prices = pricesPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("log") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = policy
	}
	if cmd.Flags().Changed("trace") {
		cfg.TraceLevel = traceLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fuel station simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		// Set up logging
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", cfg.LogLevel)
		}
		logrus.SetLevel(level)

		registry, err := sim.LoadRegistry(cfg.Catalog)
		if err != nil {
			logrus.Fatalf("Unable to load dispenser catalog: %v", err)
		}
		if registry.Len() == 0 {
			logrus.Fatalf("Dispenser catalog %s holds no usable dispensers. Exiting simulation.", cfg.Catalog)
		}

		prices := sim.DefaultPriceTable()
		if cfg.Prices != "" {
			prices, err = sim.LoadPriceTable(cfg.Prices)
			if err != nil {
				logrus.Fatalf("Unable to load price table: %v", err)
			}
		}

		requests, err := workload.LoadRequests(cfg.Requests)
		if err != nil {
			logrus.Fatalf("Unable to load request stream: %v", err)
		}

		logrus.Infof("Starting simulation with %d dispensers, %d requests, seed=%d, policy=%s",
			registry.Len(), len(requests), cfg.Seed, cfg.Policy)

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		selection := sim.NewSelectionPolicy(cfg.Policy, rng.ForSubsystem(sim.SubsystemSelection))
		durations := sim.NewUniformVariationModel(rng.ForSubsystem(sim.SubsystemService))

		// Initialize and run the simulator
		s := sim.NewSimulator(registry, selection, durations, prices, requests)
		if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
			s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
		}
		s.Run()

		s.Stats.Print()
		report.Build(s.Stats, prices).Print()

		if s.Trace != nil {
			summary := trace.Summarize(s.Trace)
			logrus.Infof("Trace: %d arrivals, %d accepted, %d lost, %d completions, mean service %.1f min",
				summary.TotalArrivals, summary.AcceptedCount, summary.LostCount,
				summary.CompletionCount, summary.MeanServiceDuration)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Optional station config file (yaml or json)")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "azs_data.txt", "Dispenser catalog file")
	runCmd.Flags().StringVar(&requestsPath, "requests", "input.txt", "Customer request stream file")
	runCmd.Flags().StringVar(&pricesPath, "prices", "", "YAML price table (default: built-in prices)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random service durations")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&policy, "policy", "shortest-queue", "Dispenser selection policy (shortest-queue, random)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	rootCmd.AddCommand(runCmd)
}
