package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/seysony91-ship-it/product-images/internal/config"
	"github.com/seysony91-ship-it/product-images/internal/exportcmd"
	"github.com/seysony91-ship-it/product-images/internal/logging"
	"github.com/spf13/cobra"
)

// Execute runs imgcatalog with args and returns the process exit code
func Execute(ctx context.Context, version string, args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)

	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		return 1
	}
	return 0
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(exportcmd.NewEnv())
}

func newRootCmd(env *exportcmd.Env) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "imgcatalog",
		Short: "Product image URL catalog generator",
		Long: `imgcatalog picks up to four representative images per product folder
(one cover, then detail shots) and writes their public raw URLs to a catalog.

Folders are read from images/<folder>/ in the working tree or from a git tree,
and URLs point at raw.githubusercontent.com unless a base URL is configured.

Settings come from catalog.yaml, CATALOG_* environment variables (a .env file
is loaded if present) and command-line flags, in increasing order of precedence.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load(env.Path(".env"))

			logging.Setup(cmd.ErrOrStderr(), verbose)

			env.Stdout = cmd.OutOrStdout()
			env.Stderr = cmd.ErrOrStderr()
			env.ConfigRequired = cmd.Flags().Changed("config")
		},
	}

	cmd.PersistentFlags().StringVar(&env.ConfigPath, "config", config.DefaultFile, "Config file, relative to the root")
	cmd.PersistentFlags().StringVar(&env.Root, "root", ".", "Repository root containing the images directory")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(exportcmd.NewExportCmd(env))
	cmd.AddCommand(exportcmd.NewInspectCmd(env))
	cmd.AddCommand(exportcmd.NewReportCmd(env))

	return cmd
}
