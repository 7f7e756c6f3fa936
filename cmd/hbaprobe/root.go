package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	logLevel    string
	clusterSpec string
	queryIP     string
	queryMethod string
	forceSSL    bool
)

var rootCmd = &cobra.Command{
	Use:   "hbaprobe <mode> <database> <role>",
	Short: "Query pg_hba.conf for hypothetical connections",
	Long: `Hbaprobe answers whether a hypothetical incoming connection would be
authorized by a cluster's pg_hba.conf. If no rule authorizes it, the line
that would have to be added is printed on stdout.

Example:
  hbaprobe check test nobody --cluster=17/main --ip=10.0.0.5
  hbaprobe check app app_user --cluster=17/main --method=trust`,
	Version:               "0.1.0",
	Args:                  cobra.ExactArgs(3),
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
	SilenceErrors:         true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := args[0]
		if mode != "check" {
			return fail("unknown mode %q (expected %q)", mode, "check")
		}
		return runCheck(cmd, args[1], args[2])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.hbaprobe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&clusterSpec, "cluster", "", "cluster as <version>/<name>")
	rootCmd.Flags().StringVar(&queryIP, "ip", "", "source address; makes the query a network query")
	rootCmd.Flags().StringVar(&queryMethod, "method", "", fmt.Sprintf("authentication method (default %q, %q for local queries)", "md5", "ident sameuser"))
	rootCmd.Flags().BoolVar(&forceSSL, "force-ssl", false, "require an SSL-enforcing rule")
}
