package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/boqier/qiwei-mcp-server/handlers"
	"github.com/boqier/qiwei-mcp-server/pkg/config"
	"github.com/boqier/qiwei-mcp-server/pkg/k8s"
	"github.com/boqier/qiwei-mcp-server/pkg/sendmessage"
	"github.com/boqier/qiwei-mcp-server/prompts"
	"github.com/boqier/qiwei-mcp-server/resources"
	"github.com/boqier/qiwei-mcp-server/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/promslog"
	"github.com/spf13/pflag"
)

const version = "2.1.4"

type options struct {
	envFile      string
	botURLSecret string
	kubeconfig   string
	metricsAddr  string
	logLevel     string
	timeout      time.Duration
}

func parseFlags(args []string) (*pflag.FlagSet, *options, error) {
	fs := config.NewFlagSet("qiwei-mcp-server")
	opts := &options{}
	fs.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read BOT_URL from")
	fs.StringVar(&opts.botURLSecret, "bot-url-secret", "", "Kubernetes secret (namespace/name) holding BOT_URL, consulted last")
	fs.StringVar(&opts.kubeconfig, "kubeconfig", "", "kubeconfig used with --bot-url-secret")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.DurationVar(&opts.timeout, "timeout", sendmessage.DefaultTimeout, "webhook request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, opts, nil
}

func newLogger(level string) (*slog.Logger, error) {
	lvl := promslog.NewLevel()
	if err := lvl.Set(level); err != nil {
		return nil, err
	}
	// stdout carries the MCP stream
	return promslog.New(&promslog.Config{Level: lvl, Writer: os.Stderr}), nil
}

func loadConfig(ctx context.Context, fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	var extra []config.Source
	if opts.botURLSecret != "" {
		ref, err := k8s.ParseSecretRef(opts.botURLSecret)
		if err != nil {
			return nil, err
		}
		clientset, err := k8s.NewClientset(opts.kubeconfig)
		if err != nil {
			return nil, err
		}
		src, err := k8s.LoadSecretSource(ctx, clientset, ref)
		if err != nil {
			return nil, err
		}
		extra = append(extra, src)
	}
	return config.Load(config.LoadOptions{Flags: fs, DotenvPath: opts.envFile, Extra: extra})
}

func newServer(client handlers.Sender, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"mcp-qiwei",
		version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.AddTool(tools.SendQiweiMessageTool(), handlers.SendQiweiMessageHandler(client, logger))
	s.AddPrompt(prompts.QiweiMarkdownPrompt(), handlers.QiweiMarkdownPrompt())
	s.AddResource(resources.MarkdownGuideResource(), handlers.GetMarkdownGuide)
	return s
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
}

func run(args []string) error {
	fs, opts, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	cfg, err := loadConfig(context.Background(), fs, opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	client, err := sendmessage.New(cfg,
		sendmessage.WithTimeout(opts.timeout),
		sendmessage.WithMetrics(sendmessage.NewMetrics(reg)),
	)
	if err != nil {
		return fmt.Errorf("failed to create qiwei client: %w", err)
	}
	if opts.metricsAddr != "" {
		serveMetrics(opts.metricsAddr, reg, logger)
	}

	s := newServer(client, logger)
	logger.Info("server starting", "version", version)
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
