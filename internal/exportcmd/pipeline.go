package exportcmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seysony91-ship-it/product-images/internal/catalog"
	"github.com/seysony91-ship-it/product-images/internal/models"
	"github.com/seysony91-ship-it/product-images/internal/rawurl"
	"github.com/seysony91-ship-it/product-images/internal/selector"
	"github.com/seysony91-ship-it/product-images/internal/source"
)

// selectFolder picks the folder's images and attaches their URLs
func selectFolder(folder string, assets []models.Asset, urls *rawurl.Builder) models.FolderSelection {
	byName := make(map[string]models.Asset, len(assets))
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		if _, ok := byName[a.Name]; ok {
			continue
		}
		byName[a.Name] = a
		names = append(names, a.Name)
	}

	sel := models.FolderSelection{Folder: folder, Entries: []models.Entry{}}
	for _, c := range selector.Pick(names) {
		asset := byName[c.Name]
		sel.Entries = append(sel.Entries, models.Entry{
			Asset: asset,
			Role:  c.Role,
			URL:   urls.URL(asset.Path),
		})
	}
	return sel
}

// buildRows walks every folder in order. The first listing error aborts
// the run and no rows are returned.
func buildRows(ctx context.Context, lister source.Lister, urls *rawurl.Builder) ([]catalog.Row, error) {
	folders, err := lister.Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	slog.Info("Folders found", "count", len(folders))

	rows := make([]catalog.Row, 0, len(folders))
	for i, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assets, err := lister.ListFilesInFolder(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
		}
		if len(assets) == 0 {
			slog.Debug("Skipping folder without images", "folder", folder)
			continue
		}

		sel := selectFolder(folder, assets, urls)
		rows = append(rows, catalog.NewRow(folder, sel.Entries))

		slog.Debug("Folder selected",
			"folder", folder,
			"progress", fmt.Sprintf("%d/%d", i+1, len(folders)),
			"images", len(assets),
			"picked", len(sel.Entries))
	}

	return rows, nil
}
