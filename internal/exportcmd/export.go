package exportcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/seysony91-ship-it/product-images/internal/catalog"
	"github.com/seysony91-ship-it/product-images/internal/config"
)

func executeExport(ctx context.Context, env *Env, cfg config.Config) error {
	slog.Info("Starting export",
		"source", cfg.Source,
		"root", env.Root,
		"images_dir", cfg.ImagesDir,
		"output", cfg.Output)

	urls, err := newURLBuilder(cfg)
	if err != nil {
		return err
	}

	rows, err := buildRows(ctx, newLister(env, cfg), urls)
	if err != nil {
		return err
	}

	format, err := catalog.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	opts := catalog.Options{
		Format:       catalog.ResolveFormat(format, cfg.Output),
		IncludeFiles: cfg.IncludeFiles,
		Title:        fmt.Sprintf("%s/%s images", cfg.GitHub.User, cfg.GitHub.Repo),
	}
	if cfg.GitHub.BaseURL != "" {
		opts.Title = urls.Base()
	}

	summaryOut := env.Stdout
	outputPath := cfg.Output
	if cfg.Output == catalog.Stdout {
		if err := catalog.Write(env.Stdout, rows, opts); err != nil {
			return fmt.Errorf("failed to write catalog: %w", err)
		}
		summaryOut = env.Stderr
		outputPath = "stdout"
	} else {
		outputPath = env.Path(cfg.Output)
		slog.Info("Saving catalog", "output", outputPath, "format", opts.Format)
		if err := catalog.WriteFile(env.Fs, outputPath, rows, opts); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
	}

	printSummary(summaryOut, catalog.Summarize(rows))
	fmt.Fprintf(summaryOut, "\nCatalog saved to: %s\n", outputPath)

	return nil
}

func printSummary(w io.Writer, s catalog.Summary) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Catalog Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Folders:          %d\n", s.Folders)
	fmt.Fprintf(w, "Images:           %d of %d slots (%.1f%%)\n", s.Images, s.Capacity, s.FillRate()*100)
	fmt.Fprintf(w, "Short folders:    %d\n", len(s.ShortFolders))
	fmt.Fprintf(w, "Without cover:    %d\n", len(s.NoCoverFolders))
	fmt.Fprintln(w, "========================================")
}
