package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BielosX/wombat/poke-proxy/src/api"
	"github.com/BielosX/wombat/poke-proxy/src/cache"
	"github.com/BielosX/wombat/poke-proxy/src/config"
	"github.com/BielosX/wombat/poke-proxy/src/pokeapi"
	"github.com/BielosX/wombat/poke-proxy/src/proxy"
	"github.com/BielosX/wombat/poke-proxy/src/s3"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

type application struct {
	cfg   *config.Config
	store cache.Store
	proxy *proxy.PokemonFetchProxy
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogDevelopment {
		return zap.NewDevelopment(zap.AddStacktrace(zap.FatalLevel))
	}
	return zap.NewProduction()
}

func newStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		return cache.NewMemoryStore(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisStore(ctx, &cache.RedisConfig{
			Addr:      cfg.Cache.RedisAddr,
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			Retention: cfg.Cache.Retention,
		}, sugar)
	case config.CacheBackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, err
		}
		return cache.NewS3Store(s3.NewClient(awsCfg), cfg.Cache.BucketName, cfg.Cache.Prefix), nil
	default:
		return nil, nil
	}
}

func setup(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	sugar = logger.Sugar()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []pokeapi.Option{
		pokeapi.WithBaseUrl(cfg.PokeApi.BaseUrl),
		pokeapi.WithHTTPClient(&http.Client{Timeout: cfg.PokeApi.Timeout}),
	}
	if store != nil {
		opts = append(opts, pokeapi.WithCache(store))
	}
	client := pokeapi.NewClient(sugar, opts...)
	sugar.Infof("Using %s cache backend", cfg.Cache.Backend)
	return &application{
		cfg:   cfg,
		store: store,
		proxy: proxy.NewPokemonFetchProxy(client, sugar),
	}, nil
}

func (a *application) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			sugar.Warnf("Failed to close cache: %s", err)
		}
	}
	_ = sugar.Sync()
}

func runLambda(a *application) {
	handlers := api.NewLambdaHandlers(a.proxy, sugar)
	switch a.cfg.Handler {
	case "fetch":
		lambda.Start(handlers.HandleFetch)
	case "api":
		lambda.Start(handlers.HandleHTTP)
	default:
		sugar.Fatalf("Unknown Handler %s", a.cfg.Handler)
	}
}

func runServer(ctx context.Context, a *application) error {
	server := api.NewServer(a.proxy, sugar)
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		sugar.Infof("Listening on %s", a.cfg.ListenAddr)
		errChan <- srv.ListenAndServe()
	}()
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}
	sugar.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "poke-proxy",
		Short:         "Fetches a Pokemon from PokeAPI and returns its id, name and types",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			runLambda(a)
			return nil
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the proxy over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return runServer(cmd.Context(), a)
		},
	})

	var id, revalidate int32
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a single Pokemon and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			var request proxy.Request
			if cmd.Flags().Changed("id") {
				request.Id = &id
			}
			if cmd.Flags().Changed("revalidate") {
				request.CacheLifetimeSeconds = &revalidate
			}
			result, err := a.proxy.FetchPokemon(cmd.Context(), request)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}
	fetchCmd.Flags().Int32Var(&id, "id", 0, "Pokemon id, random in [1,100] when omitted")
	fetchCmd.Flags().Int32Var(&revalidate, "revalidate", proxy.DefaultCacheLifetimeSeconds, "cache lifetime in seconds")
	root.AddCommand(fetchCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if sugar != nil {
			sugar.Errorf("%s", err)
			_ = sugar.Sync()
		} else {
			_, _ = os.Stderr.WriteString(err.Error() + "\n")
		}
		stop()
		os.Exit(1)
	}
}
