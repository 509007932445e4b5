package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vantaworks/vectoradmin/internal/metrics"
	backuphistrepo "github.com/vantaworks/vectoradmin/internal/repository/backuphist"
	backupjobrepo "github.com/vantaworks/vectoradmin/internal/repository/backupjob"
	collectionrepo "github.com/vantaworks/vectoradmin/internal/repository/collection"
	documentrepo "github.com/vantaworks/vectoradmin/internal/repository/document"
	chiTransport "github.com/vantaworks/vectoradmin/internal/transport/chi"
	openaiTransport "github.com/vantaworks/vectoradmin/internal/transport/openai"
	backupuc "github.com/vantaworks/vectoradmin/internal/usecase/backupsvc"
	clusteruc "github.com/vantaworks/vectoradmin/internal/usecase/cluster"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
	healthuc "github.com/vantaworks/vectoradmin/internal/usecase/health"
	ingestuc "github.com/vantaworks/vectoradmin/internal/usecase/ingest"
	"github.com/vantaworks/vectoradmin/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	logger := a.logger
	cfg := a.cfg

	logger.Info("Starting vectoradmin API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cluster", cfg.Cluster.Endpoint()),
	)

	ctx := cmd.Context()
	if err := a.store.WaitForReady(ctx, time.Duration(cfg.Cluster.TimeoutSec)*time.Second); err != nil {
		return fmt.Errorf("cluster not ready: %w", err)
	}
	logger.Info("Connected to cluster")

	// Register remote-call metrics explicitly (no init())
	metrics.RegisterRemoteMetrics()

	// Repositories
	collRepo := collectionrepo.New(a.store)
	docRepo := documentrepo.New(a.store)
	histRepo := backuphistrepo.New(a.store, cfg.Backup.HistoryCollection)
	jobRepo := backupjobrepo.New(a.store)

	// Pass nil interface (not typed nil pointer!) when verification is off.
	var verifier collectionuc.KeyVerifier
	if cfg.Cluster.VerifyVecKeys {
		verifier = openaiTransport.NewVerifier(&openaiTransport.Config{Logger: logger})
	}

	// Use case services
	collSvc := collectionuc.New(collRepo, providerKeys(cfg.Keys), verifier)
	ingestSvc := ingestuc.New(docRepo, cfg.Ingest.BatchSize, cfg.Ingest.SampleLimit)
	backupSvc := backupuc.New(histRepo, jobRepo, cfg.Backup.ScanLimit)
	clusterSvc := clusteruc.New(a.store, time.Duration(cfg.Cluster.CacheTTLSec)*time.Second)
	healthSvc := healthuc.New(a.store, a.store)

	if err := backupSvc.Init(ctx); err != nil {
		logger.Warn("Backup history collection not initialized", zap.Error(err))
	}

	server := chiTransport.NewServer(collSvc, ingestSvc, backupSvc, clusterSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
