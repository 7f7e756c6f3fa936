package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Creates a default configuration file at ~/.hbaprobe/config.yaml.

The default config resolves clusters under /etc/postgresql and allows
queries against every cluster. Tighten clusters.allow to restrict which
clusters may be inspected.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const defaultConfig = `# hbaprobe configuration

clusters:
  # Clusters are resolved as <root>/<version>/<name>/pg_hba.conf
  root: /etc/postgresql

  # Glob patterns over "version/name" cluster ids that may be queried.
  allow:
    - "*/*"

lint:
  # Networks at or below these prefix lengths are flagged as wide.
  wide_ipv4_prefix: 16
  wide_ipv6_prefix: 48
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fail("getting home directory: %v", err)
	}

	configDir := filepath.Join(home, ".hbaprobe")
	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		return fail("config already exists at %s", configPath)
	}

	// Create directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fail("creating config directory: %v", err)
	}

	// Write config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fail("writing config file: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config at %s\n", configPath)
	return nil
}
