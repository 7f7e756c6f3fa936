package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pgkit/hbaprobe/internal/config"
	"github.com/pgkit/hbaprobe/internal/hba"
	"github.com/pgkit/hbaprobe/internal/logging"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a cluster's rule file for unsafe or dead rules",
	Long: `Lint loads the cluster's pg_hba.conf and reports unsafe methods, overly
wide networks and rules shadowed by earlier ones. One finding is printed
per line as "SEVERITY code line=N message". Exits 1 if any finding has
ERROR severity.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	logger, cleanup, err := logging.Setup(logLevel)
	if err != nil {
		return fail("setting up logging: %v", err)
	}
	defer cleanup()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fail("%v", err)
	}

	store, cl, err := loadClusterStore(cfg)
	if err != nil {
		return err
	}

	issues := hba.Lint(store, hba.LintConfig{
		WideV4: cfg.Lint.WideIPv4Prefix,
		WideV6: cfg.Lint.WideIPv6Prefix,
	})

	hasError := false
	for _, is := range issues {
		if is.Severity == hba.SeverityError {
			hasError = true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s line=%d %s\n", is.Severity, is.Code, is.Line, is.Message)
	}

	logger.Info("lint finished",
		slog.String("cluster", cl.ID()),
		slog.Int("findings", len(issues)),
		slog.Bool("errors", hasError))

	if hasError {
		return &exitError{code: 1}
	}
	return nil
}
