package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ktuncer/wastewise/internal/models"
	"github.com/ktuncer/wastewise/internal/repositories"
	"github.com/ktuncer/wastewise/internal/repositories/postgres"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wastewise",
	Short: "Tracks cafeteria food waste from classified tray photos",
	Long: `wastewise aggregates tray photo classifications into waste statistics
per day, category and dish, and recommends the daily menu with the
lowest observed waste. It orchestrates photo uploads and the remote
classification service that produces the analysis records.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openRepository picks the postgres repository when a database URL is
// configured and falls back to the in-memory store otherwise.
func openRepository(ctx context.Context, cfg *models.Config) (repositories.AnalysisRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		return repositories.NewMemoryAnalysisRepository(), func() {}, nil
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return postgres.NewAnalysisRepository(pool), pool.Close, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
