package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/iwvelando/liquidity-sim/internal/analysis"
	"github.com/iwvelando/liquidity-sim/internal/config"
	"github.com/iwvelando/liquidity-sim/internal/recorder"
	"github.com/iwvelando/liquidity-sim/internal/simulation"
	"github.com/iwvelando/liquidity-sim/internal/topology"
	"github.com/iwvelando/liquidity-sim/pkg/constants"
	"github.com/iwvelando/liquidity-sim/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Fail fast on invalid configuration before touching any simulation state.
	if err := conf.Validate(); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	graph, err := topology.LoadFile(conf.Topology.File)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load topology from %s", conf.Topology.File),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info(fmt.Sprintf("loaded topology with %d companies and %d debt relationships", graph.NodeCount(), graph.EdgeCount()),
		zap.String("op", "main"),
	)

	var runRecorder recorder.Recorder = recorder.NewNoopRecorder()
	if conf.Recorder.Database != "" {
		sqliteRecorder, err := recorder.NewSQLiteRecorder(conf.Recorder.Database)
		if err != nil {
			logger.Fatal("failed to open run recorder",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		runRecorder = sqliteRecorder
	}
	defer func() {
		_ = runRecorder.Close()
	}()

	runner := analysis.NewRunner(graph, conf.Simulation.Seed, logger)

	if outputFormat == constants.OutputFormatPretty {
		output.PrettyNetwork(runner.NetworkReport())
		fmt.Printf("\n")
	}

	record := func(result *simulation.RunResult) {
		err := runRecorder.RecordRun(&recorder.RunRecord{
			ID:               uuid.NewString(),
			Scenario:         result.Scenario.String(),
			Iterations:       conf.Simulation.Iterations,
			BankIntervention: result.BankIntervention,
			Seed:             conf.Simulation.Seed,
		}, result)
		if err != nil {
			logger.Error("failed to record run",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	var results []*simulation.RunResult
	var comparison *analysis.Comparison

	switch {
	case conf.Simulation.CompareBankImpact:
		comparison, err = runner.CompareBankImpact(conf.Scenario(), conf.Simulation.Iterations)
		if err != nil {
			logger.Fatal("comparison failed", zap.String("op", "main"), zap.Error(err))
		}
		results = []*simulation.RunResult{comparison.WithoutBank, comparison.WithBank}
	case conf.Simulation.AllScenarios:
		results, err = runner.RunAllScenarios(conf.Simulation.Iterations, conf.Simulation.UseBankIntervention)
		if err != nil {
			logger.Fatal("scenario sweep failed", zap.String("op", "main"), zap.Error(err))
		}
	default:
		engine := simulation.NewEngine(graph, conf.Scenario(), conf.Simulation.Seed, logger)
		result, err := engine.Run(conf.Simulation.Iterations, conf.Simulation.UseBankIntervention)
		if err != nil {
			logger.Fatal("simulation failed", zap.String("op", "main"), zap.Error(err))
		}
		results = []*simulation.RunResult{result}
	}

	for _, result := range results {
		record(result)
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	default:
		output.PrettyFormat(results)
		if comparison != nil {
			fmt.Printf("\n")
			output.PrettyComparison(comparison)
		}
	}
}
