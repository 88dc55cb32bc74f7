package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzbridge/pkg/cache"
	"github.com/matzehuels/tikzbridge/pkg/convert"
	"github.com/matzehuels/tikzbridge/pkg/figure"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output        string
		toStdout      bool
		format        string
		configPath    string
		standalone    bool
		documentClass string
		noDisclaimer  bool
		tikzOptions   string
		axisOptions   []string
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "convert <figure-file>",
		Short: "Convert a figure description to TikZ markup",
		Long: `Convert reads a JSON or YAML figure description and writes the
equivalent TikZ/pgfplots markup.

The input format is inferred from the file extension (.json, .yaml, .yml)
unless --format is given. Use "-" to read from stdin, in which case
--format is required. Output goes to <input>.tikz next to the input file
unless --output or --stdout is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over config file values.
			flags := cmd.Flags()
			if !flags.Changed("standalone") {
				standalone = cfg.Standalone
			}
			if !flags.Changed("document-class") && cfg.DocumentClass != "" {
				documentClass = cfg.DocumentClass
			}
			if !flags.Changed("no-disclaimer") {
				noDisclaimer = cfg.NoDisclaimer
			}
			if !flags.Changed("tikz-options") && cfg.TikzOptions != "" {
				tikzOptions = cfg.TikzOptions
			}
			if !flags.Changed("axis-option") && len(cfg.AxisOptions) > 0 {
				axisOptions = cfg.AxisOptions
			}
			if !flags.Changed("no-cache") {
				noCache = cfg.NoCache
			}

			input := args[0]
			raw, inFormat, err := readInput(input, format)
			if err != nil {
				return err
			}

			store := cache.NewNullCache()
			if !noCache {
				if store, err = openCache(); err != nil {
					c.Logger.Warn("cache unavailable; converting without it", "error", err)
					store = cache.NewNullCache()
				}
			}
			defer store.Close()

			runner := convert.NewRunner(store, c.Logger)
			result, err := runner.Execute(cmd.Context(), raw, inFormat, convert.Options{
				TikzOptions:      tikzOptions,
				ExtraAxisOptions: axisOptions,
				Standalone:       standalone,
				DocumentClass:    documentClass,
				NoDisclaimer:     noDisclaimer,
				Logger:           c.Logger,
			})
			if err != nil {
				return err
			}

			printWarnings(result.Warnings)

			if toStdout {
				fmt.Fprint(cmd.OutOrStdout(), result.Code)
				return nil
			}

			path := output
			if path == "" {
				path = outputPath(input)
			}
			if path == "" {
				return fmt.Errorf("reading from stdin requires --output or --stdout")
			}
			if err := convert.Save(path, result.Code); err != nil {
				return err
			}

			printSuccess("Wrote %s", path)
			if result.CacheHit {
				printDetail("from cache")
			}
			if n := len(result.Warnings); n > 0 {
				printDetail("%d warning(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write markup to stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json or yaml); inferred from the extension by default")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/tikzbridge/config.toml)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "wrap output in a compilable document")
	cmd.Flags().StringVar(&documentClass, "document-class", convert.DefaultDocumentClass, "document class for --standalone")
	cmd.Flags().BoolVar(&noDisclaimer, "no-disclaimer", false, "omit the generated-file header comment")
	cmd.Flags().StringVar(&tikzOptions, "tikz-options", "", "options for the tikzpicture environment")
	cmd.Flags().StringArrayVar(&axisOptions, "axis-option", nil, "extra axis option (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// readInput loads the figure bytes and decides the input format.
func readInput(input, format string) ([]byte, string, error) {
	if input == "-" {
		if format == "" {
			return nil, "", fmt.Errorf("reading from stdin requires --format")
		}
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return raw, format, nil
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", input, err)
	}
	if format == "" {
		if format, err = figure.FormatForPath(input); err != nil {
			return nil, "", err
		}
	}
	return raw, format, nil
}

// outputPath derives the default output path from the input file name.
func outputPath(input string) string {
	if input == "-" {
		return ""
	}
	if i := strings.LastIndex(input, "."); i > 0 {
		return input[:i] + ".tikz"
	}
	return input + ".tikz"
}
