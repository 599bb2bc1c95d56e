// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docucheck CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docucheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docucheck CLI.
var rootCmd = &cobra.Command{
	Use:   "docucheck",
	Short: "Travel-document verification and visa eligibility checks",
	Long: `docucheck verifies scanned travel documents against an applicant's
declared data and evaluates visa eligibility under a configurable policy.

Each stage is a subcommand: analyze runs the full pipeline on document
images, mrz parses machine-readable zones directly, policy validates
eligibility policy files, and audit inspects past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docucheck.yaml or ~/.config/docucheck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docucheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docucheck"))
		}
	}

	viper.SetEnvPrefix("DOCUCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from viper, applying
// defaults for anything the config file leaves unset.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		OCR: types.OCRConfig{
			Languages: viper.GetStringSlice("ocr.languages"),
			DPI:       viper.GetInt("ocr.dpi"),
		},
		Policy: types.PolicyConfig{
			Path: viper.GetString("policy.path"),
		},
		Audit: types.AuditConfig{
			Dir:      viper.GetString("audit.dir"),
			Disabled: viper.GetBool("audit.disabled"),
		},
	}
	if cfg.Audit.Dir == "" {
		cfg.Audit.Dir = "audit"
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
