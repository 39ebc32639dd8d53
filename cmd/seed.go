package cmd

import (
	"context"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ktuncer/wastewise/internal/factories"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic analysis records for a demo environment",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		repo, closeRepo, err := openRepository(ctx, cfg)
		if err != nil {
			log.Fatalf("opening repository: %v", err)
		}
		defer closeRepo()

		seed, _ := cmd.Flags().GetInt64("seed")
		weekOf := time.Now()
		if raw, _ := cmd.Flags().GetString("week-of"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				log.Fatalf("invalid --week-of value %q: %v", raw, err)
			}
			weekOf = parsed
		}

		count := cfg.SeedRecords
		factory := factories.NewAnalysisRecordFactory(seed)
		records := factory.CreateBatch(count, weekOf)

		bar := progressbar.Default(int64(count), "seeding analysis records")
		const chunkSize = 50
		for start := 0; start < len(records); start += chunkSize {
			end := start + chunkSize
			if end > len(records) {
				end = len(records)
			}
			if err := repo.BulkCreate(ctx, records[start:end]); err != nil {
				log.Fatalf("inserting records: %v", err)
			}
			bar.Add(end - start)
		}
		log.Printf("seeded %d analysis records", count)
	},
}

func init() {
	seedCmd.Flags().Int("count", 200, "Number of records to generate")
	seedCmd.Flags().Int64("seed", 42, "Random seed for generation")
	seedCmd.Flags().String("week-of", "", "Anchor week (yyyy-mm-dd, defaults to the current week)")
	viper.BindPFlag("seed_records", seedCmd.Flags().Lookup("count"))
	rootCmd.AddCommand(seedCmd)
}
