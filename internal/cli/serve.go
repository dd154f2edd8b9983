package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/veritaslab/veritas/internal/cache"
	"github.com/veritaslab/veritas/internal/llm"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/pipeline"
	"github.com/veritaslab/veritas/internal/server"
	"github.com/veritaslab/veritas/internal/store"
	"github.com/veritaslab/veritas/internal/worker"
)

var (
	serveHost     string
	servePort     int
	serveStore    string
	serveDemo     bool
	serveProvider string
	serveModel    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim verification HTTP API",
	Long: `Serve starts the HTTP API:

  POST   /check    verify a claim
  GET    /history  paginated result history
  GET    /stats    aggregate statistics
  DELETE /history  clear the result history
  GET    /health   health check

Example:
  veritas serve
  veritas serve --port 9000
  VERITAS_LLM_PROVIDER=openai veritas serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "bind port (overrides config)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "result log backend: memory or sqlite (overrides config)")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "force demo mode (rule-based canned responses)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "generation backend: ollama or openai (overrides config)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "model name (overrides config)")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("store.backend", serveCmd.Flags().Lookup("store"))
	_ = viper.BindPFlag("llm.provider", serveCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", serveCmd.Flags().Lookup("model"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveStore != "" {
		cfg.Store.Backend = serveStore
	}
	if serveProvider != "" {
		cfg.LLM.Provider = serveProvider
		cfg.LLM.DemoMode = false
	}
	if serveDemo {
		cfg.LLM.DemoMode = true
	}
	if serveModel != "" {
		cfg.LLM.Model = serveModel
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	checker, st, err := buildChecker(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	srv := server.NewServer(checker, st, cfg.Server, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// buildChecker assembles the verification pipeline from configuration
func buildChecker(cfg model.Config, logger *zap.Logger) (*pipeline.Checker, store.Store, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("create provider: %w", err)
	}

	st, err := store.New(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	opts := pipeline.Options{
		Limiter: worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Logger:  logger,
	}
	if cfg.Cache.Enabled {
		opts.Cache = cache.NewResultCache(cfg.Cache.TTL)
	}

	logger.Info("pipeline ready",
		zap.String("provider", provider.Name()),
		zap.String("store", cfg.Store.Backend),
		zap.Bool("cache", cfg.Cache.Enabled))

	return pipeline.NewChecker(provider, st, opts), st, nil
}
