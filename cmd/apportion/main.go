package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/apportionment/internal/application"
	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/config"
	"github.com/eugenenazirov/apportionment/internal/logging"
	"github.com/eugenenazirov/apportionment/internal/report"
)

var signalNotify = signal.Notify

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("apportion", "Apportion legislative seats across regions with classical methods and report how fair the result is")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	logLevel := app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	reportCmd := app.Command("report", "Apportion the population table and print a fairness report").Default()
	methods := reportCmd.Flag("method", "Comma-separated methods to run, or \"all\"").Short('m').String()
	seats := reportCmd.Flag("seats", "Seat target; repeat to report several house sizes").Short('s').Ints()
	populationFile := reportCmd.Flag("population-file", "YAML population table (defaults to the 2013 census)").String()
	format := reportCmd.Flag("format", "Output format").Default("text").Enum("text", "json")
	var floorSet, exactSet bool
	divisorFloor := reportCmd.Flag("divisor-floor", "Divisor at which divisor searches give up").IsSetByUser(&floorSet).Int64()
	exactGeometric := reportCmd.Flag("exact-geometric", "Stop Huntington-Hill at exactly the requested seats").IsSetByUser(&exactSet).Bool()

	app.Command("methods", "List the available apportionment methods")

	serveCmd := app.Command("serve", "Serve the apportionment HTTP API")
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "apportion: %v\n", err)
		return ExitErrorConfig
	}

	overrides := &config.CLIOverrides{
		ConfigFile:     *configFile,
		LogLevel:       logLevel,
		Methods:        methods,
		PopulationFile: populationFile,
		Port:           port,
	}
	if len(*seats) > 0 {
		overrides.Seats = &(*seats)[0]
	}
	if floorSet {
		overrides.DivisorFloor = divisorFloor
	}
	if exactSet {
		overrides.ExactGeometric = exactGeometric
	}
	if *rateLimitRPS >= 0 {
		overrides.RateLimitRPS = rateLimitRPS
	}
	if *rateLimitBurst >= 0 {
		overrides.RateLimitBurst = rateLimitBurst
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "apportion: failed to load configuration: %v\n", err)
		return ExitErrorConfig
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "apportion: failed to initialize logger: %v\n", err)
		return ExitErrorConfig
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case "methods":
		return listMethods(stdout)
	case "serve":
		return serve(cfg, logger)
	default:
		seatTargets := *seats
		if len(seatTargets) == 0 {
			seatTargets = []int{cfg.Seats}
		}
		return runReport(cfg, seatTargets, *format, logger, stdout)
	}
}

// runReport apportions the configured table for every seat target and method
// and prints the reports seat target first, mirroring how house sizes are
// compared side by side.
func runReport(cfg config.Config, seatTargets []int, format string, logger *zap.Logger, out io.Writer) int {
	dist, err := cfg.Population()
	if err != nil {
		logger.Error("failed to load population table", zap.Error(err))
		return exitCodeFor(err)
	}

	registry := apportion.NewRegistry(cfg.RegistryOptions()...)
	reports, err := computeReports(registry, dist, seatTargets, cfg.Methods)
	if err != nil {
		logger.Error("apportionment failed", zap.Error(err))
		return exitCodeFor(err)
	}

	code := ExitSuccess
	for _, rep := range reports {
		if rep.Mismatch() {
			logger.Warn("apportionment does not match the seat target",
				zap.Stringer("method", rep.Method),
				zap.Int("seats", rep.RequestedSeats),
				zap.Int("allocated", rep.AllocatedSeats),
			)
			code = ExitErrorMismatch
		}
		if format == "text" {
			if err := report.WriteText(out, rep); err != nil {
				logger.Error("failed to write report", zap.Error(err))
				return ExitErrorGeneric
			}
		}
	}

	if format == "json" {
		if err := report.WriteJSON(out, reports); err != nil {
			logger.Error("failed to write report", zap.Error(err))
			return ExitErrorGeneric
		}
	}
	return code
}

func listMethods(out io.Writer) int {
	for _, m := range apportion.AllMethods {
		fmt.Fprintf(out, "%-20s %s\n", m, m.Historical())
	}
	return ExitSuccess
}

func serve(cfg config.Config, logger *zap.Logger) int {
	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitCodeFor(err)
	}

	if err := app.Start(); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return ExitErrorGeneric
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return ExitSuccess
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
