// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refconvert CLI.
// Running refconvert with no arguments converts every <study>_refs.json in
// the configured input directory into <study>_refs.html in the output
// directory.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/refconvert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics; replaced in PersistentPreRunE.
var logger = zap.NewNop()

// configErr holds a config file that was found or named but could not be
// read. cobra.OnInitialize hooks cannot fail, so it surfaces in preRun.
var configErr error

// rootCmd is the base command for the refconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "refconvert",
	Short: "Convert citation JSON files into HTML publication lists",
	Long: `refconvert reads reference files that map citation keys such as
"Griffiths, 2016" to citation text, orders the citations by the year in each
key, and writes an HTML ordered list for inclusion in the publications pages.

Input files are named <study>_refs.json and live in the input directory
(default docs/_data). Each produces <study>_refs.html in the output directory
(default _includes/publications). A file that fails to convert is reported
and skipped; the rest of the batch still runs.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runConvertAll,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refconvert.yaml or ~/.config/refconvert/refconvert.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics at debug level")
	rootCmd.PersistentFlags().String("input-dir", types.DefaultInputDir, "directory containing <study>_refs.json files")
	rootCmd.PersistentFlags().String("output-dir", types.DefaultOutputDir, "directory for rendered <study>_refs.html files")
	rootCmd.PersistentFlags().String("pattern", types.DefaultPattern, "filename glob for reference files")
	bindFlags()

	rootCmd.Flags().Bool("dry-run", false, "list the planned conversions without writing anything")
	rootCmd.Flags().Bool("json", false, "print the batch result as JSON (progress goes to stderr)")
	rootCmd.Flags().String("report", "", "write the batch result to a .yaml, .yml or .json file")
	rootCmd.Flags().Bool("strict", false, "exit non-zero when any file fails to convert")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "json")
}

// bindFlags ties the config keys to their persistent flags so a flag set on
// the command line wins over environment and config file.
func bindFlags() {
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("input_dir", rootCmd.PersistentFlags().Lookup("input-dir"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refconvert"))
		}
	}

	viper.SetEnvPrefix("REFCONVERT")
	viper.AutomaticEnv()

	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		// Only a missing default config is silent; a named file must load.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		configErr = fmt.Errorf("reading config file %s: %w", viper.ConfigFileUsed(), err)
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

func preRun(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	return initLogger(cmd, args)
}

// initLogger builds the zap logger. Only warnings reach stderr unless
// --verbose is set.
func initLogger(cmd *cobra.Command, args []string) error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if viper.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// converterConfig resolves the conversion settings from flags, environment
// and config file, in viper's precedence order.
func converterConfig() types.ConverterConfig {
	cfg := types.ConverterConfig{
		InputDir:  viper.GetString("input_dir"),
		OutputDir: viper.GetString("output_dir"),
		Pattern:   viper.GetString("pattern"),
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
