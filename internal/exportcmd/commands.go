package exportcmd

import (
	"fmt"

	"github.com/seysony91-ship-it/product-images/internal/config"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command that writes the image URL catalog
func NewExportCmd(env *Env) *cobra.Command {
	var src sourceFlags
	var output string
	var format string
	var includeFiles bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Pick four images per product folder and write their URLs to a catalog",
		Long: `Walk every product folder under the images directory, pick one cover image and
up to three detail images per folder, and write their public raw URLs to a catalog.

Cover images contain one of ㄷㅍ, 대표, thumb or cover in their name; detail images
contain 메인 이미지, 상세, detail or main. Within each group files are ordered by the
last number in their name. Folders with fewer matches are filled from the remaining
images in the same order.

With --source git the folder contents come from the git tree (default origin/<branch>)
instead of the working directory, so only published files are referenced.`,
		Example: `  # Write image_urls.csv from the local images/ directory
  imgcatalog export

  # Use the files recorded on origin/main after fetching
  imgcatalog export --source git --fetch

  # Parquet catalog without touching the CSV
  imgcatalog export --output catalog.parquet

  # HTML preview to eyeball the picks
  imgcatalog export --output preview.html

  # CSV to stdout, URL columns only
  imgcatalog export --output - --files=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, func(cfg *config.Config) {
				src.apply(cmd, cfg)
				if cmd.Flags().Changed("output") {
					cfg.Output = output
				}
				if cmd.Flags().Changed("format") {
					cfg.Format = format
				}
				if cmd.Flags().Changed("files") {
					cfg.IncludeFiles = includeFiles
				}
			})
			if err != nil {
				return err
			}

			return executeExport(cmd.Context(), env, cfg)
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "image_urls.csv", "Catalog path relative to the root, or - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "Catalog format: csv, parquet or html (default from the output extension)")
	cmd.Flags().BoolVar(&includeFiles, "files", true, "Include file_1..file_4 columns in CSV output")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd(env *Env) *cobra.Command {
	var src sourceFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <folder>",
		Short: "Show how the images of one folder are ranked and picked",
		Long: `Inspect lists every image of a single product folder with its sort key, whether it
matches the cover or detail keywords, and which slot it was picked for.

This command is useful for checking why a folder ended up with an unexpected
cover before regenerating the catalog.`,
		Example: `  # Inspect folder images/1200
  imgcatalog inspect 1200

  # Inspect what is published on origin/main
  imgcatalog inspect 1200 --source git

  # Machine readable output
  imgcatalog inspect 1200 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, func(cfg *config.Config) { src.apply(cmd, cfg) })
			if err != nil {
				return err
			}

			return executeInspect(cmd.Context(), env, cfg, args[0], asJSON)
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the selection as JSON")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd(env *Env) *cobra.Command {
	var format string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "report [catalog]",
		Short: "Summarise an existing catalog file",
		Long: `Load a CSV or Parquet catalog and report how many folders it covers, how many
image slots are filled, and which folders are short of images or lack a cover.`,
		Example: `  # Summary of the default catalog
  imgcatalog report

  # JSON summary including every row
  imgcatalog report catalog.parquet --format json --detailed

  # Per-folder CSV
  imgcatalog report image_urls.csv --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath := ""
			if len(args) == 1 {
				catalogPath = args[0]
			} else {
				cfg, err := loadConfig(env, nil)
				if err != nil {
					return err
				}
				catalogPath = cfg.Output
			}

			switch format {
			case "text", "json", "csv":
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json, csv)", format)
			}

			return executeReport(env, catalogPath, format, detailed)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include every row in the report")

	return cmd
}
