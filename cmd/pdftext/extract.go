package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/discover"
	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/normalize"
	"github.com/pdiddy/pdftext/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract text from every PDF in a directory",
	Long: `Extract scans a directory for PDF files and writes one text file per PDF
next to it (book.pdf -> book.md), overwriting earlier output.

Cleanup levels:
  light  rejoin words hyphenated across line breaks (default)
  full   additionally join wrapped lines and collapse whitespace
  none   write the page text as extracted

With --cleanup full, --paragraphs preserve keeps blank lines between
paragraphs; the default (collapse) folds the whole document into one line.

Failed documents are reported but do not change the exit status unless
--fail-on-error is set. A missing input directory is always an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.InputDir = args[0]
		}
		return runExtract(cfg, cmd.OutOrStdout())
	},
}

func init() {
	f := extractCmd.Flags()
	f.String("input-dir", ".", "directory scanned for PDF files")
	f.String("suffix", discover.DefaultSuffix, "file name suffix selecting input files")
	f.Bool("ignore-case", false, "match the suffix case-insensitively")
	f.String("output-ext", convert.DefaultOutputExt, "extension of the output files")
	f.String("backend", string(types.BackendLedongthuc), "extraction backend: ledongthuc, pdfcpu, or pdftotext")
	f.String("cleanup", string(normalize.LevelLight), "cleanup level: none, light, or full")
	f.String("paragraphs", string(normalize.ParagraphsCollapse), "paragraph handling for full cleanup: collapse or preserve")
	f.String("container-runtime", "auto", "container runtime for the pdftotext backend: auto, docker, or podman")
	f.String("container-image", extract.DefaultPdftotextImage, "container image providing pdftotext")
	f.Bool("fail-on-error", false, "exit non-zero when any document fails")

	bindFlags(extractCmd, map[string]string{
		"input_dir":         "input-dir",
		"suffix":            "suffix",
		"ignore_case":       "ignore-case",
		"output_ext":        "output-ext",
		"backend":           "backend",
		"cleanup":           "cleanup",
		"paragraphs":        "paragraphs",
		"container_runtime": "container-runtime",
		"container_image":   "container-image",
		"fail_on_error":     "fail-on-error",
	})

	rootCmd.AddCommand(extractCmd)
}

// bindFlags binds each viper key to the named flag of cmd.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// loadConfig reads the effective configuration (flags, PDFTEXT_* environment,
// config file, defaults) from viper.
func loadConfig() (types.ExtractionConfig, error) {
	var cfg types.ExtractionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// runExtract validates cfg and runs the batch, writing progress to w.
// Configuration problems are returned before any document is touched.
func runExtract(cfg types.ExtractionConfig, w io.Writer) error {
	level, err := normalize.ParseLevel(cfg.Cleanup)
	if err != nil {
		return err
	}
	paragraphs, err := normalize.ParseParagraphMode(cfg.Paragraphs)
	if err != nil {
		return err
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}

	ex, err := extract.New(cfg)
	if err != nil {
		return err
	}

	match := discover.Options{Suffix: cfg.Suffix, IgnoreCase: cfg.IgnoreCase}
	opts := convert.Options{OutputExt: cfg.OutputExt, Level: level, Paragraphs: paragraphs}

	result, err := convert.ConvertDir(ex, cfg.InputDir, match, opts, w)
	if err != nil {
		return err
	}
	if cfg.FailOnError && result.HasFailures() {
		return fmt.Errorf("%d of %d documents failed: %v", result.Failed, result.Total(), result.FailedDocs)
	}
	return nil
}
