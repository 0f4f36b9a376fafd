package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Tofuswang/journey/internal/config"
	"github.com/Tofuswang/journey/internal/export"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <journey-id>",
		Short: "Write one journey map as CSV",
		Long: `Write the CSV download of one journey map to a file, or to stdout when
no output path is given. The bytes are identical to the web download.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return exportJourney(cmd.Context(), cfg, args[0], output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: stdout, \"-\" also means stdout)")
	return cmd
}

func exportJourney(ctx context.Context, cfg config.Config, id, output string, stdout io.Writer) error {
	store, err := storage.Open(ctx, cfg.StorageDriver, cfg.StorageDSN())
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	defer store.Close()

	rec, err := store.GetJourney(ctx, id)
	if err != nil {
		return fmt.Errorf("journey %s: %w", id, err)
	}

	if output == "" || output == "-" {
		return export.WriteCSV(stdout, rec)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
