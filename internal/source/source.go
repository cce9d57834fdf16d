// Package source lists product folders and their image files, either from a
// directory on disk or from a git tree listing.
package source

import (
	"context"
	"errors"

	"github.com/seysony91-ship-it/product-images/internal/models"
)

// ErrImagesDirNotFound is returned when the images directory does not exist
var ErrImagesDirNotFound = errors.New("images directory not found")

// Lister enumerates product folders and the image files inside each one
type Lister interface {
	// Folders returns folder names in catalog order (see SortFolders)
	Folders(ctx context.Context) ([]string, error)
	// ListFilesInFolder returns the image files of one folder
	ListFilesInFolder(ctx context.Context, folder string) ([]models.Asset, error)
}
