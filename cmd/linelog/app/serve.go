// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/milchinskiy/linelog/control"
	"github.com/milchinskiy/linelog/logger"
	"github.com/milchinskiy/linelog/metrics"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// newServeHandler mounts the control API under /log and the metrics of reg
// under /metrics.
func newServeHandler(lg *logger.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Mount("/log", control.NewRouter(lg))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func newServeCmd(o *options) *cobra.Command {
	var (
		addr      string
		namespace string
		maxConns  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the log control API and metrics over HTTP",
		Long: `Serve the runtime control API under /log and Prometheus metrics under
/metrics until interrupted. Lines read from standard input are logged
at info level, so a process can be piped through the server.`,
		Example: `  app | linelog -g app serve --addr 127.0.0.1:9095`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			collector := metrics.NewCollector(namespace)
			reg := prometheus.NewRegistry()
			if err := collector.Register(reg); err != nil {
				return err
			}

			lg, group, err := o.newLogger(cmd, func(b *logger.Builder) { b.Observer(collector) })
			if err != nil {
				return err
			}
			defer func() { _ = lg.Close() }()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			if maxConns > 0 {
				ln = netutil.LimitListener(ln, maxConns)
			}
			srv := &http.Server{
				Handler:           newServeHandler(lg, reg),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				lg.Group("serve").Infof("listening on %s", ln.Addr())
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			// Not part of the group: a read from a terminal never returns.
			go func() {
				if err := pipeLines(cmd.InOrStdin(), lg, logger.LevelInfo, group); err != nil {
					lg.Group("serve").Error(err.Error())
				}
			}()
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
				defer cancel()
				lg.Group("serve").Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9095", "listen address")
	cmd.Flags().StringVar(&namespace, "namespace", "linelog", "metric name prefix")
	cmd.Flags().IntVar(&maxConns, "max-conns", 64, "maximum concurrent connections, 0 for no limit")
	return cmd
}
