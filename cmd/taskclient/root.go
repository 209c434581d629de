package main

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/td0m/taskclient/internal/api"
	"github.com/td0m/taskclient/internal/config"
	"github.com/td0m/taskclient/internal/logger"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/internal/tasks"
)

type flags struct {
	config      string
	apiURL      string
	logLevel    string
	errorPolicy string
	dateMatch   string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "taskclient",
		Short: "Terminal client for the tasks API",
		Long: `taskclient lists, adds, deletes and filters tasks on a /v1/tasks backend.
Without a subcommand it opens the interactive terminal page.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, f)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "taskclient.json", "Path to config file")
	pf.StringVar(&f.apiURL, "api-url", "", "Base URL of the tasks backend")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.errorPolicy, "error-policy", "", "What failed requests do: propagate or suppress")
	pf.StringVar(&f.dateMatch, "date-match", "", "How the date filter matches: prefix or exact")
	pf.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	root.AddCommand(
		newTUICmd(f),
		newListCmd(f),
		newAddCmd(f),
		newDeleteCmd(f),
		newFilterCmd(f),
	)
	return root
}

// app is everything a command needs, wired from config
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	page *page.Memory
	ops  *tasks.Operations

	closers []io.Closer
}

// newApp loads the config and wires the page to the backend.
// logOut receives logs when no log file is configured.
func newApp(cmd *cobra.Command, f *flags, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	override(cmd, "api-url", &cfg.API.BaseURL, f.apiURL)
	override(cmd, "log-level", &cfg.Log.Level, f.logLevel)
	override(cmd, "error-policy", &cfg.API.ErrorPolicy, f.errorPolicy)
	override(cmd, "date-match", &cfg.Filter.DateMatch, f.dateMatch)
	override(cmd, "metrics-addr", &cfg.Metrics.Addr, f.metricsAddr)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, logCloser, err := logger.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	var metrics *api.Metrics
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		metrics = api.NewMetrics(reg)
		a.serveMetrics(cfg.Metrics.Addr, reg)
	}

	policy, _ := cfg.Policy()
	match, _ := cfg.DateMatch()
	client := api.New(cfg.API.BaseURL, api.Options{
		HTTP:    &http.Client{Timeout: time.Duration(cfg.API.Timeout)},
		Logger:  logger.For(log, "api"),
		Policy:  policy,
		Metrics: metrics,
	})
	a.page = page.NewMemory()
	a.ops = tasks.New(client, a.page, tasks.Options{
		Logger:    logger.For(log, "tasks"),
		DateMatch: match,
	})
	tasks.Wire(a.page, a.ops)
	return a, nil
}

func override(cmd *cobra.Command, name string, dst *string, value string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

func (a *app) serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("metrics server stopped")
		}
	}()
	a.closers = append(a.closers, srv)
	a.log.WithField("addr", addr).Info("serving metrics")
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}
