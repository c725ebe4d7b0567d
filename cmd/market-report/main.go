package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"market-report/internal/config"
	"market-report/internal/database"
	"market-report/internal/dataset"
	"market-report/internal/observability"
	"market-report/internal/report"
	"market-report/internal/runner"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	dbType := flag.String("db", "", "store driver (sqlite, postgres, mysql, or mongo)")
	iterations := flag.Int("iterations", 0, "number of load and analysis passes")
	limit := flag.Int("limit", -1, "rows printed per report, 0 prints all")
	formats := flag.String("format", "", "comma separated export formats (csv, json, xlsx)")
	outDir := flag.String("out", "", "export directory")
	teardown := flag.Bool("teardown", false, "drop the relations after the run")

	flag.Parse()

	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfigIfExists(*configPath)
	if err != nil {
		bootLogger.Error("failed to load config", "error", err)
		exitCode = 1
		return
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.Databases.Driver = *dbType
		case "iterations":
			cfg.BenchmarkSettings.Iterations = *iterations
		case "limit":
			cfg.Report.Limit = *limit
		case "format":
			cfg.Report.Formats = config.ParseFormats(*formats)
		case "out":
			cfg.Report.Dir = *outDir
		case "teardown":
			cfg.Teardown = *teardown
		}
	})
	if err := cfg.Validate(); err != nil {
		bootLogger.Error("invalid flags", "error", err)
		exitCode = 1
		return
	}

	runID := uuid.NewString()
	logger := observability.NewLogger(cfg.Logger).With("run_id", runID)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := database.NewDriver(cfg.Databases.Driver)
	if err != nil {
		logger.Error("unsupported database type", "driver", cfg.Databases.Driver, "error", err)
		exitCode = 1
		return
	}
	if err := driver.Connect(cfg.DSN()); err != nil {
		logger.Error("failed to connect", "driver", cfg.Databases.Driver, "error", err)
		exitCode = 1
		return
	}
	defer driver.Close()

	loader := dataset.NewLoader(dataset.Sources{
		Brands:       cfg.Sources.Brands,
		Independents: cfg.Sources.Independents,
		Population:   cfg.Sources.Population,
	}, logger)

	logger.Info("running market report", "driver", cfg.Databases.Driver, "iterations", cfg.BenchmarkSettings.Iterations)

	result, err := runner.Run(ctx, driver, loader, runner.Options{
		RunID:      runID,
		Driver:     cfg.Databases.Driver,
		Iterations: cfg.BenchmarkSettings.Iterations,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		logger.Error("analysis failed", "error", err)
		exitCode = 1
		return
	}

	if err := report.Print(os.Stdout, result.Reports, cfg.Report.Limit); err != nil {
		logger.Error("failed to print reports", "error", err)
		exitCode = 1
		return
	}

	files, err := report.Export(cfg.Report.Dir, cfg.Report.Formats, result.Reports)
	if err != nil {
		logger.Error("failed to export reports", "error", err)
		exitCode = 1
		return
	}
	if len(files) > 0 {
		logger.Info("reports exported", "files", files)
	}

	if cfg.Report.S3.Bucket != "" {
		uploader, err := report.NewS3Uploader(ctx, report.S3Config{
			Bucket:    cfg.Report.S3.Bucket,
			Region:    cfg.Report.S3.Region,
			Endpoint:  cfg.Report.S3.Endpoint,
			PathStyle: cfg.Report.S3.PathStyle,
		})
		if err != nil {
			logger.Error("failed to configure upload", "error", err)
			exitCode = 1
			return
		}
		keys, err := report.UploadAll(ctx, uploader, cfg.Report.S3.Prefix, runID, files)
		if err != nil {
			logger.Error("failed to upload reports", "error", err)
			exitCode = 1
			return
		}
		logger.Info("reports uploaded", "bucket", cfg.Report.S3.Bucket, "keys", keys)
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("failed to write metrics", "path", cfg.Metrics.Textfile, "error", err)
			exitCode = 1
			return
		}
	}

	if cfg.Teardown {
		if err := loader.Teardown(ctx, driver); err != nil {
			logger.Error("failed to teardown database", "error", err)
			exitCode = 1
			return
		}
	}

	logger.Info("analysis complete", "skipped_rows", result.Skipped, "data_integrity", result.DataIntegrity)

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		exitCode = 1
		return
	}
	fmt.Println()
	fmt.Println(string(jsonOutput))
}
