package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgkit/hbaprobe/internal/cluster"
	"github.com/pgkit/hbaprobe/internal/config"
	"github.com/pgkit/hbaprobe/internal/hba"
	"github.com/pgkit/hbaprobe/internal/logging"
	"github.com/pgkit/hbaprobe/internal/policy"
)

// runCheck evaluates a single connection hypothesis. Exit 0 when some rule
// authorizes it, exit 1 (with the synthesized line on stdout) when none
// does.
func runCheck(cmd *cobra.Command, database, role string) error {
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

	query, err := buildQuery(database, role)
	if err != nil {
		return err
	}

	if entry, ok := store.Match(query); ok {
		logger.Info("authorized",
			slog.String("cluster", cl.ID()),
			slog.String("database", query.Database),
			slog.String("role", query.Role),
			slog.String("method", query.Method),
			slog.String("rule", entry.Raw))
		return nil
	}

	line := hba.Synthesize(query)
	logger.Info("not authorized",
		slog.String("cluster", cl.ID()),
		slog.String("database", query.Database),
		slog.String("role", query.Role),
		slog.String("method", query.Method),
		slog.String("suggested", line))
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return &exitError{code: 1}
}

// loadClusterStore resolves --cluster against the config, enforces the
// cluster allowlist and loads the rule file. All failures are exit-2
// validation errors.
func loadClusterStore(cfg *config.Config) (*hba.Store, cluster.Cluster, error) {
	if clusterSpec == "" {
		return nil, cluster.Cluster{}, fail("missing required flag --cluster")
	}
	cl, err := cluster.Resolve(cfg.Clusters.Root, clusterSpec)
	if err != nil {
		return nil, cluster.Cluster{}, fail("%v", err)
	}
	pol, err := policy.New(cfg.Clusters.Allow)
	if err != nil {
		return nil, cluster.Cluster{}, fail("invalid clusters.allow pattern: %v", err)
	}
	if !pol.Evaluate(cl.ID()) {
		return nil, cluster.Cluster{}, fail("cluster %s is not allowed by policy", cl.ID())
	}
	store, err := hba.Load(cl.HBAPath())
	if err != nil {
		return nil, cluster.Cluster{}, fail("%v", err)
	}
	return store, cl, nil
}

// buildQuery turns validated flag input into the immutable query value.
func buildQuery(database, role string) (hba.Query, error) {
	query := hba.Query{
		Database: database,
		Role:     role,
		ForceSSL: forceSSL,
	}

	if queryIP != "" {
		addr, err := hba.ParseIP(queryIP)
		if err != nil {
			return hba.Query{}, fail("%v", err)
		}
		query.Addr = addr
	}

	if queryMethod == "" {
		if query.IsLocal() {
			query.Method = "ident sameuser"
		} else {
			query.Method = "md5"
		}
		return query, nil
	}

	tokens := strings.Fields(queryMethod)
	if len(tokens) == 0 || !hba.KnownMethod(tokens[0]) {
		return hba.Query{}, fail("unknown authentication method %q", queryMethod)
	}
	query.Method = strings.Join(tokens, " ")
	return query, nil
}
