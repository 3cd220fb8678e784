package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sampleKind string
	sampleDays int
	sampleOut  string
)

// sampleCmd writes a sample pick CSV for a layout's slots
var sampleCmd = &cobra.Command{
	Use:   "sample <layout-id>",
	Short: "Generate a sample pick CSV for a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layoutID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || layoutID <= 0 {
			return fmt.Errorf("invalid layout id %q", args[0])
		}
		if sampleKind != models.UploadKindElement && sampleKind != models.UploadKindItem {
			return fmt.Errorf("invalid kind %q: want %s or %s", sampleKind, models.UploadKindElement, models.UploadKindItem)
		}

		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.db.Close()

		data, err := svc.uploads.SampleCSV(cmd.Context(), layoutID, sampleKind, sampleDays)
		if err != nil {
			return err
		}

		if sampleOut == "" || sampleOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(sampleOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", sampleOut, err)
		}
		logger.Info("sample written", zap.String("path", sampleOut), zap.Int("bytes", len(data)))
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleKind, "kind", models.UploadKindItem, "Upload kind: element or item")
	sampleCmd.Flags().IntVar(&sampleDays, "days", 14, "Days of sample picks")
	sampleCmd.Flags().StringVarP(&sampleOut, "output", "o", "", "Output file (default stdout)")
}
