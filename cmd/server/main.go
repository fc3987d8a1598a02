// Command server serves balance curves over HTTP and gRPC and reloads the
// tuning when its files change.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/idle-balance/internal/api"
	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/config"
	"github.com/xtding233/idle-balance/internal/logging"
	"github.com/xtding233/idle-balance/internal/series"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	config.AddCommonFlags(fs)
	fs.String("http-addr", ":8080", "HTTP listen address (JSON API and /metrics)")
	fs.String("grpc-addr", ":9090", "gRPC listen address")
	fs.Bool("watch", true, "reload tuning when its files change")
	fs.Int("concurrency", 0, "series sampled in parallel per request (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := config.BindSettings(fs)
	if err != nil {
		return err
	}
	log, err := logging.NewLogger(v.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}

	loader := config.NewLoader(v.GetString(config.KeyConfigDir))
	scenario := v.GetString(config.KeyScenario)
	modelOpts := []balance.Option{balance.WithLogger(log.WithName("balance"))}
	res, err := loader.Resolve(scenario)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}
	snap, err := api.NewSnapshot(scenario, res, modelOpts...)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	holder := api.NewHolder(snap)
	log.Info("Tuning loaded", "scenario", scenario, "version", snap.Version)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gen := series.NewGenerator(
		series.WithGeneratorLogger(log.WithName("series")),
		series.WithMetrics(series.NewMetrics(reg)),
		series.WithConcurrency(v.GetInt("concurrency")),
	)
	srv := api.NewServer(holder, gen, log.WithName("api"))

	if v.GetBool("watch") {
		w, err := config.WatchLoader(log.WithName("watch"), loader, reloader(log, loader, holder, scenario, modelOpts))
		if err != nil {
			return fmt.Errorf("watch tuning: %w", err)
		}
		w.Start()
		defer w.Stop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/", srv.Routes())
	httpSrv := &http.Server{Addr: v.GetString("http-addr"), Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	grpcSrv := grpc.NewServer()
	health := srv.RegisterGRPC(grpcSrv)
	grpcLis, err := net.Listen("tcp", v.GetString("grpc-addr"))
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("HTTP listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		log.Info("gRPC listening", "addr", grpcLis.Addr().String())
		return grpcSrv.Serve(grpcLis)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("Shutting down")
		health.Shutdown()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(sctx)
	})
	return eg.Wait()
}

// reloader rebuilds the model after a tuning file changes. A bad edit is
// logged and the previous model keeps serving.
func reloader(log logr.Logger, loader *config.Loader, holder *api.Holder, scenario string, opts []balance.Option) func(string) {
	return func(path string) {
		loader.Invalidate()
		if err := holder.Reload(loader, scenario, opts...); err != nil {
			log.Error(err, "Tuning reload failed, keeping previous model", "path", path)
			return
		}
		log.Info("Tuning reloaded", "path", path, "version", holder.Load().Version)
	}
}
