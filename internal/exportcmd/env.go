package exportcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/seysony91-ship-it/product-images/internal/config"
	"github.com/seysony91-ship-it/product-images/internal/rawurl"
	"github.com/seysony91-ship-it/product-images/internal/source"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Env carries the process-level settings shared by all commands. The root
// command binds its persistent flags to Root and ConfigPath.
type Env struct {
	Fs             afero.Fs
	Root           string // Repository root; relative paths resolve against it
	ConfigPath     string
	ConfigRequired bool // Fail when ConfigPath does not exist
	Stdout         io.Writer
	Stderr         io.Writer
	Getenv         func(string) string
	GitRunner      source.Runner
}

// NewEnv returns an Env backed by the OS filesystem and process streams
func NewEnv() *Env {
	return &Env{
		Fs:         afero.NewOsFs(),
		Root:       ".",
		ConfigPath: config.DefaultFile,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
	}
}

// Path resolves p against Root unless it is absolute
func (e *Env) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.Root, p)
}

// sourceFlags are the flags every command that lists folders accepts.
// They only override the config when set on the command line.
type sourceFlags struct {
	source     string
	imagesDir  string
	extensions []string
	ref        string
	fetch      bool
	user       string
	repo       string
	branch     string
	baseURL    string
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", config.SourceLocal, "Where to list images from (local or git)")
	cmd.Flags().StringVar(&f.imagesDir, "images-dir", "images", "Images directory relative to the root")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", source.DefaultExtensions, "Image file extensions")
	cmd.Flags().StringVar(&f.ref, "ref", "", "Git tree to list with --source git (default origin/<branch>)")
	cmd.Flags().BoolVar(&f.fetch, "fetch", false, "Run git fetch --all --prune before listing (--source git)")
	cmd.Flags().StringVar(&f.user, "user", "", "GitHub user or organisation owning the repository")
	cmd.Flags().StringVar(&f.repo, "repo", "", "GitHub repository name")
	cmd.Flags().StringVar(&f.branch, "branch", "", "Branch used in raw URLs")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "URL prefix to use instead of raw.githubusercontent.com")
}

func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = f.source
	}
	if flags.Changed("images-dir") {
		cfg.ImagesDir = f.imagesDir
	}
	if flags.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if flags.Changed("ref") {
		cfg.Ref = f.ref
	}
	if flags.Changed("fetch") {
		cfg.Fetch = f.fetch
	}
	if flags.Changed("user") {
		cfg.GitHub.User = f.user
	}
	if flags.Changed("repo") {
		cfg.GitHub.Repo = f.repo
	}
	if flags.Changed("branch") {
		cfg.GitHub.Branch = f.branch
	}
	if flags.Changed("base-url") {
		cfg.GitHub.BaseURL = f.baseURL
	}
}

// loadConfig merges defaults, the config file, the environment and the
// command-line flags, in increasing order of precedence.
func loadConfig(env *Env, apply func(*config.Config)) (config.Config, error) {
	cfgPath := env.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultFile
	}
	cfgPath = env.Path(cfgPath)

	if env.ConfigRequired {
		ok, err := afero.Exists(env.Fs, cfgPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to stat config file: %w", err)
		}
		if !ok {
			return config.Config{}, fmt.Errorf("config file not found: %s", cfgPath)
		}
	}

	cfg, err := config.Load(env.Fs, cfgPath, env.Getenv)
	if err != nil {
		return cfg, err
	}
	if apply != nil {
		apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLister(env *Env, cfg config.Config) source.Lister {
	filter := source.NewFilter(cfg.Extensions)
	if cfg.Source == config.SourceGit {
		return source.NewGitTree(source.GitOptions{
			Root:      env.Root,
			ImagesDir: cfg.ImagesDir,
			Ref:       cfg.EffectiveRef(),
			Fetch:     cfg.Fetch,
			Filter:    filter,
			Runner:    env.GitRunner,
		})
	}
	return source.NewLocal(env.Fs, env.Root, cfg.ImagesDir, filter)
}

func newURLBuilder(cfg config.Config) (*rawurl.Builder, error) {
	b, err := rawurl.NewBuilder(cfg.GitHub)
	if err != nil {
		return nil, fmt.Errorf("failed to configure URLs: %w", err)
	}
	return b, nil
}
