package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ktuncer/wastewise/internal/analytics"
	"github.com/ktuncer/wastewise/internal/classifier"
	"github.com/ktuncer/wastewise/internal/events"
	"github.com/ktuncer/wastewise/internal/menu"
	"github.com/ktuncer/wastewise/internal/orchestrator"
	"github.com/ktuncer/wastewise/internal/server"
	"github.com/ktuncer/wastewise/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the waste analytics API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		repo, closeRepo, err := openRepository(ctx, cfg)
		if err != nil {
			log.Fatalf("opening repository: %v", err)
		}
		defer closeRepo()

		if cfg.S3.Bucket == "" {
			log.Fatal("s3.bucket must be configured to accept photo uploads")
		}
		if cfg.InferenceURL == "" {
			log.Fatal("inference_url must be configured to request classifications")
		}

		store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("initializing photo storage: %v", err)
		}

		var publisher orchestrator.Publisher
		if cfg.KafkaEnabled {
			saramaPublisher, err := events.NewSaramaPublisher(cfg)
			if err != nil {
				log.Fatalf("initializing kafka publisher: %v", err)
			}
			defer saramaPublisher.Close()
			publisher = saramaPublisher
		}

		engine := analytics.NewEngine(repo)
		optimizer := menu.NewOptimizer(repo)
		orch := orchestrator.New(store, classifier.NewClient(cfg.InferenceURL), repo, repo, publisher)

		srv := server.New(engine, optimizer, orch, repo, store, cfg.AllowedOrigins)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("listen", ":8000", "Address to listen on")
	viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}
