package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keepmind9/botpipe/internal/config"
	"github.com/spf13/cobra"
)

var (
	validateConfigFile string
	validateJSON       bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Config string   `json:"config"`
	Mode   string   `json:"mode,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a botpipe configuration file",
	Long: `Validate the botpipe configuration file without starting the daemon.

This command checks:
  - YAML syntax and environment variable expansion
  - Required fields (api token)
  - Ingestion mode and its options

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile := validateConfigFile
		if configFile == "" {
			for _, loc := range []string{
				"config.yaml",
				filepath.Join(os.Getenv("HOME"), ".config/botpipe/config.yaml"),
				"/etc/botpipe/config.yaml",
			} {
				if _, err := os.Stat(loc); err == nil {
					configFile = loc
					break
				}
			}
		}
		if configFile == "" {
			fmt.Println("No configuration file found")
			os.Exit(1)
		}

		result := ValidationResult{Valid: true, Config: configFile}
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Mode = cfg.Mode
		}

		if validateJSON {
			data, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(data))
		} else if result.Valid {
			fmt.Printf("Configuration %s is valid (mode: %s)\n", result.Config, result.Mode)
		} else {
			fmt.Printf("Configuration %s is invalid:\n", result.Config)
			for _, e := range result.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}

		if !result.Valid {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Path to configuration file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation result as JSON")
}
