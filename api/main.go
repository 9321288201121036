package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jimiolaniyan/signup"
	"github.com/jimiolaniyan/signup/config"
	"github.com/jimiolaniyan/signup/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	hasher, err := signup.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating hasher")
	}

	accounts, closeStore, err := openAccountRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("error opening account store")
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := signup.NewService(hasher, accounts)
	controller := signup.NewSignupController(signup.NewEmailValidator(), svc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      signup.NewRouter(controller, signup.NewMetrics(reg), reg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.Store).Msg("server started")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
	}
}

// openAccountRepository returns the configured store and a func releasing
// whatever connection it holds.
func openAccountRepository(cfg *config.Config) (signup.Repository, func(), error) {
	if cfg.Store != config.StoreMongo {
		return signup.NewAccountRepository(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	c := client.Database(cfg.MongoDBName).Collection(signup.AccountsCollection)
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("error disconnecting from mongo")
		}
	}
	return signup.NewMongoAccountRepository(c), closeFn, nil
}
