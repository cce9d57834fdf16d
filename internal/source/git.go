package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/seysony91-ship-it/product-images/internal/models"
	"golang.org/x/text/encoding/unicode"
)

// Runner executes git with args inside dir and returns its stdout
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ExecGit runs the git binary found on PATH
func ExecGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// GitOptions configures a GitTree
type GitOptions struct {
	Root      string // Repository working directory
	ImagesDir string // Images directory relative to the repository root
	Ref       string // Tree-ish to list, e.g. origin/main
	Fetch     bool   // Run "git fetch --all --prune" before listing
	Filter    Filter
	Runner    Runner // Defaults to ExecGit
}

// GitTree lists folders from the files recorded in a git tree, so the
// catalog only references files that are actually published.
type GitTree struct {
	opts GitOptions

	loaded   bool
	folders  []string
	byFolder map[string][]models.Asset
}

// NewGitTree creates a GitTree lister
func NewGitTree(opts GitOptions) *GitTree {
	if opts.Runner == nil {
		opts.Runner = ExecGit
	}
	if opts.Ref == "" {
		opts.Ref = "origin/main"
	}
	return &GitTree{opts: opts}
}

// Folders returns the folders that contain at least one image in the tree
func (g *GitTree) Folders(ctx context.Context) ([]string, error) {
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	return append([]string(nil), g.folders...), nil
}

// ListFilesInFolder returns the images recorded under folder, including
// those in nested sub-directories
func (g *GitTree) ListFilesInFolder(ctx context.Context, folder string) ([]models.Asset, error) {
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	return append([]models.Asset(nil), g.byFolder[folder]...), nil
}

func (g *GitTree) load(ctx context.Context) error {
	if g.loaded {
		return nil
	}

	if g.opts.Fetch {
		slog.Info("Fetching remotes", "root", g.opts.Root)
		if _, err := g.opts.Runner(ctx, g.opts.Root, "fetch", "--all", "--prune"); err != nil {
			return fmt.Errorf("failed to fetch: %w", err)
		}
	}

	slog.Debug("Listing git tree", "ref", g.opts.Ref)
	out, err := g.opts.Runner(ctx, g.opts.Root,
		"-c", "core.quotepath=false", "ls-tree", "-r", "-z", "--name-only", g.opts.Ref)
	if err != nil {
		return fmt.Errorf("failed to list tree %s: %w", g.opts.Ref, err)
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(out)
	if err != nil {
		return fmt.Errorf("failed to decode tree listing: %w", err)
	}

	folders, byFolder, seenPrefix := groupPaths(string(decoded), g.opts.ImagesDir, g.opts.Filter)
	if !seenPrefix {
		return fmt.Errorf("%w: %s in %s", ErrImagesDirNotFound, g.opts.ImagesDir, g.opts.Ref)
	}

	g.folders = folders
	g.byFolder = byFolder
	g.loaded = true

	slog.Debug("Git tree grouped", "ref", g.opts.Ref, "folders", len(folders))
	return nil
}

// groupPaths splits a NUL separated listing into image assets per top-level
// folder of imagesDir. Within a folder the first path of each base name wins.
func groupPaths(listing, imagesDir string, filter Filter) ([]string, map[string][]models.Asset, bool) {
	prefix := path.Clean(filepath.ToSlash(imagesDir)) + "/"

	byFolder := make(map[string][]models.Asset)
	seenNames := make(map[string]map[string]bool)
	seenPrefix := false

	for _, p := range strings.Split(listing, "\x00") {
		if p == "" || !strings.HasPrefix(p, prefix) {
			continue
		}
		seenPrefix = true

		folder, rest, ok := strings.Cut(strings.TrimPrefix(p, prefix), "/")
		if !ok || folder == "" || rest == "" {
			continue
		}

		name := path.Base(p)
		if !filter.Match(name) {
			continue
		}

		if seenNames[folder] == nil {
			seenNames[folder] = make(map[string]bool)
		}
		if seenNames[folder][name] {
			continue
		}
		seenNames[folder][name] = true

		byFolder[folder] = append(byFolder[folder], models.Asset{Name: name, Path: p})
	}

	folders := make([]string, 0, len(byFolder))
	for f := range byFolder {
		folders = append(folders, f)
	}
	SortFolders(folders)

	return folders, byFolder, seenPrefix
}
