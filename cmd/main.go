package main

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
	"golang.org/x/sync/errgroup"

	"github.com/YelzhanWeb/pizzaform/internal/adapter/catalog"
	"github.com/YelzhanWeb/pizzaform/internal/adapter/httpclient"
	"github.com/YelzhanWeb/pizzaform/internal/adapter/logger"
	"github.com/YelzhanWeb/pizzaform/internal/adapter/postgres"
	"github.com/YelzhanWeb/pizzaform/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/pizzaform/internal/adapter/terminal"
	"github.com/YelzhanWeb/pizzaform/internal/app/orderform"
	"github.com/YelzhanWeb/pizzaform/internal/config"
	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"

	httpAdapter "github.com/YelzhanWeb/pizzaform/internal/adapter/http"
)

var (
	configPath string
	verbose    bool
	port       int
)

var rootCmd = &cobra.Command{
	Use:           "pizzaform",
	Short:         "Pizza order form with eager validation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the order form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

		lgr, err := logger.New("form-server", logger.WithLevel(cfg.Logging.Level), logger.WithDebug(verbose))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer lgr.Sync()

		return runFormServer(cmd.Context(), cfg, lgr)
	},
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Fill in the order form on the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := "error"
		if verbose {
			level = "debug"
		}
		lgr, err := logger.New("form-terminal", logger.WithLevel(level))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer lgr.Sync()

		err = runTerminalForm(cmd.Context(), cfg, lgr)
		if errors.Is(err, terminal.ErrAborted) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	serveCmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP port")

	rootCmd.AddCommand(serveCmd, orderCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFormServer(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	toppings, err := loadCatalog(ctx, cfg, lgr)
	if err != nil {
		return err
	}

	submitter, closeSubmitter, err := newSubmitter(cfg, lgr)
	if err != nil {
		return err
	}
	defer closeSubmitter()

	sessions := httpAdapter.NewSessionStore(func() interfaces.OrderFormService {
		return orderform.NewService(toppings, submitter, lgr)
	})
	formHandler := httpAdapter.NewFormHandler(sessions, lgr)

	mux := http.NewServeMux()
	formHandler.Register(mux)

	handler := httpAdapter.RecoveryMiddleware(lgr)(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lgr.Info("service_started", fmt.Sprintf("Order form started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
			"port":      cfg.Server.Port,
			"transport": cfg.Submit.Transport,
			"toppings":  toppings.Len(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lgr.Info("shutdown_initiated", "Shutting down order form", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
			return err
		}
		return nil
	})

	return g.Wait()
}

func runTerminalForm(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	toppings, err := loadCatalog(ctx, cfg, lgr)
	if err != nil {
		return err
	}

	submitter, closeSubmitter, err := newSubmitter(cfg, lgr)
	if err != nil {
		return err
	}
	defer closeSubmitter()

	form := orderform.NewService(toppings, submitter, lgr)
	session := terminal.NewSession(form, terminal.NewSurveyDriver(os.Stdout), lgr)
	return session.Run(ctx)
}

// loadCatalog reads the toppings once at startup from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, lgr logger.Logger) (*domain.Catalog, error) {
	if cfg.Catalog.Source != config.CatalogPostgres {
		return catalog.Load(ctx, catalog.NewStatic(cfg.Catalog.Toppings))
	}

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	return catalog.Load(ctx, postgres.NewCatalogRepository(db))
}

func newSubmitter(cfg *config.Config, lgr logger.Logger) (interfaces.OrderSubmitter, func(), error) {
	if cfg.Submit.Transport != config.TransportAMQP {
		return httpclient.NewSubmitter(cfg.Submit.Endpoint, cfg.Submit.Timeout), func() {}, nil
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host":     cfg.RabbitMQ.Host,
		"exchange": cfg.Submit.Exchange,
	})

	return rabbitmq.NewSubmitter(mqConn, cfg.Submit.Exchange), func() { _ = mqConn.Close() }, nil
}
