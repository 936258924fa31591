package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/wcharczuk/localsqs/internal/elasticmq"
	"github.com/wcharczuk/localsqs/internal/spy"
)

var (
	flagBindAddr            = pflag.String("bind-addr", ":9326", "The server bind address")
	flagUpstream            = pflag.String("upstream", elasticmq.DefaultEndpoint, "The ElasticMQ url to forward requests to")
	flagShutdownGracePeriod = pflag.Duration("shutdown-grace-period", 5*time.Second, "The server shutdown grace period")
	flagLogLevel            = pflag.String("log-level", slog.LevelInfo.String(), "The log level (debug>info>warn>error)")
)

func main() {
	pflag.Parse()

	logLeveler := new(slog.LevelVar)
	if err := logLeveler.UnmarshalText([]byte(*flagLogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the captured requests
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLeveler,
	})))

	handler, err := newHandler(*flagUpstream)
	if err != nil {
		slog.Error("invalid upstream", slog.String("upstream", *flagUpstream), slog.Any("err", err))
		os.Exit(1)
	}
	httpSrv := &http.Server{
		Addr:    *flagBindAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("listening on bind address", slog.String("bind_addr", *flagBindAddr), slog.String("upstream", *flagUpstream))
		return httpSrv.ListenAndServe()
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownContext, shutdownComplete := context.WithTimeout(context.Background(), *flagShutdownGracePeriod)
		defer shutdownComplete()
		return httpSrv.Shutdown(shutdownContext)
	})
	if err := group.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func newHandler(upstream string) (*spy.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("sqsspy; upstream %q must include a scheme and host", upstream)
	}
	return &spy.Handler{
		Do:   spy.WriteOutput(os.Stdout),
		Next: httputil.NewSingleHostReverseProxy(target),
	}, nil
}
