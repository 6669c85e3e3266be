// intercept-sim runs a fixed-step, deterministic engagement simulation
// between ballistic missiles, proportional-navigation interceptors, and
// ground radars, and writes per-tick state to a CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/asgard/interceptsim/internal/config"
	"github.com/asgard/interceptsim/internal/engine"
	"github.com/asgard/interceptsim/internal/metrics"
	"github.com/asgard/interceptsim/internal/obslog"
	"github.com/asgard/interceptsim/internal/simerr"
	"github.com/asgard/interceptsim/internal/telemetry"
	"github.com/asgard/interceptsim/internal/world"
)

var (
	scenarioPath         = flag.String("scenario", "", "scenario YAML file (required)")
	missileParamsPath    = flag.String("missile-params", "", "ballistic missile parameter YAML file (required)")
	interceptorParamsPath = flag.String("interceptor-params", "", "interceptor parameter YAML file (required)")
	radarParamsPath      = flag.String("radar-params", "", "fallback radar parameter YAML file")
	outPath              = flag.String("out", "trajectory.csv", "output CSV path")
	epsilon              = flag.Float64("epsilon", 50.0, "interception proximity threshold, meters")
	logLevel             = flag.String("log-level", "info", "log level: debug, info, warn, error")
	metricsAddr          = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
)

func main() {
	flag.Parse()
	log := obslog.New(*logLevel)

	if err := run(log); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(simerr.ExitCode(err))
	}
}

func run(log *logrus.Logger) error {
	if *scenarioPath == "" || *missileParamsPath == "" || *interceptorParamsPath == "" {
		return simerr.New(simerr.ConfigParse, fmt.Errorf("--scenario, --missile-params, and --interceptor-params are required"))
	}

	scenario, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}
	missileParams, err := config.LoadMissileParams(*missileParamsPath, false)
	if err != nil {
		return err
	}
	interceptorParams, err := config.LoadMissileParams(*interceptorParamsPath, true)
	if err != nil {
		return err
	}
	var radarParams config.RadarParams
	if *radarParamsPath != "" {
		radarParams, err = config.LoadRadarParams(*radarParamsPath)
		if err != nil {
			return err
		}
	}

	runID := uuid.NewString()
	runLog := logrus.NewEntry(log).WithField("run_id", runID)

	w := engine.BuildWorld(scenario, missileParams, interceptorParams, radarParams)

	out, err := os.Create(*outPath)
	if err != nil {
		return simerr.New(simerr.OutputIO, fmt.Errorf("creating %s: %w", *outPath, err))
	}
	defer out.Close()
	writer := telemetry.NewWriter(out)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var live *telemetry.LiveFeed
	if *metricsAddr != "" {
		live = telemetry.NewLiveFeed(runLog)
		defer live.Close()

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","run_id":"` + runID + `"}`))
		})
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		r.Get("/ws", live.ServeHTTP)
		srv := &http.Server{Addr: *metricsAddr, Handler: r}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		go func() {
			<-ctx.Done()
			_ = srv.Close()
		}()
	}

	orch := engine.New(engine.Config{
		DT:              scenario.TimeStep,
		Duration:        scenario.SimulationDuration,
		InterceptRadius: *epsilon,
	}, w, runLog)
	orch.WithMetrics(m)

	var writeErr error
	orch.OnTick(func(tick int, simTime float64, tickWorld *world.World) {
		if live != nil {
			live.Publish(telemetry.Snapshot(tick, simTime, tickWorld))
		}
		if writeErr != nil {
			return
		}
		writeErr = writer.WriteTick(simTime, tickWorld)
	})

	ran, runErr := orch.Run(ctx)
	if writeErr != nil {
		return writeErr
	}
	if runErr != nil {
		return runErr
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	runLog.WithFields(logrus.Fields{"ticks": ran, "output": *outPath}).Info("simulation run complete")
	return nil
}
