package cmd

import (
	"context"
	"log"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/ktuncer/wastewise/internal/export"
	"github.com/ktuncer/wastewise/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the analysis record set to a parquet file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		repo, closeRepo, err := openRepository(ctx, cfg)
		if err != nil {
			log.Fatalf("opening repository: %v", err)
		}
		defer closeRepo()

		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			outputPath = cfg.ExportPath
		}
		if outputPath == "" {
			outputPath = "analysis_results.parquet"
		}

		count, err := export.ToParquet(ctx, repo, outputPath)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("exported %d records to %s", count, outputPath)

		push, _ := cmd.Flags().GetBool("push")
		if !push {
			return
		}
		if cfg.S3.Bucket == "" {
			log.Fatal("s3.bucket must be configured to push the export")
		}
		store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("initializing object storage: %v", err)
		}
		data, err := os.ReadFile(outputPath)
		if err != nil {
			log.Fatalf("reading export file: %v", err)
		}
		key := path.Join("exports", path.Base(outputPath))
		url, err := store.PutObject(ctx, key, data, "application/octet-stream")
		if err != nil {
			log.Fatalf("pushing export to S3: %v", err)
		}
		log.Printf("export pushed to %s", url)
	},
}

func init() {
	exportCmd.Flags().String("output", "", "Output parquet file path")
	exportCmd.Flags().Bool("push", false, "Push the export to the configured S3 bucket")
	rootCmd.AddCommand(exportCmd)
}
