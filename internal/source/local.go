package source

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/seysony91-ship-it/product-images/internal/models"
	"github.com/spf13/afero"
)

// Local lists folders under <root>/<imagesDir> on a filesystem
type Local struct {
	fs        afero.Fs
	root      string
	imagesDir string
	filter    Filter
}

// NewLocal creates a Local lister. imagesDir is relative to root.
func NewLocal(fs afero.Fs, root, imagesDir string, filter Filter) *Local {
	return &Local{
		fs:        fs,
		root:      root,
		imagesDir: imagesDir,
		filter:    filter,
	}
}

func (l *Local) dir() string {
	return filepath.Join(l.root, l.imagesDir)
}

// Folders returns every directory directly under the images directory
func (l *Local) Folders(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := l.dir()
	ok, err := afero.DirExists(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat images directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImagesDirNotFound, dir)
	}

	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	var folders []string
	for _, info := range infos {
		if info.IsDir() {
			folders = append(folders, info.Name())
		}
	}
	SortFolders(folders)

	slog.Debug("Listed local folders", "dir", dir, "folders", len(folders))
	return folders, nil
}

// ListFilesInFolder returns the regular image files directly inside folder.
// Sub-directories are not descended into.
func (l *Local) ListFilesInFolder(ctx context.Context, folder string) ([]models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(l.fs, filepath.Join(l.dir(), folder))
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	prefix := path.Clean(filepath.ToSlash(l.imagesDir))
	var assets []models.Asset
	for _, info := range infos {
		if !info.Mode().IsRegular() || !l.filter.Match(info.Name()) {
			continue
		}
		assets = append(assets, models.Asset{
			Name: info.Name(),
			Path: path.Join(prefix, folder, info.Name()),
		})
	}

	return assets, nil
}
