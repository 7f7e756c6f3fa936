// Package policy provides cluster allowlist evaluation.
package policy

import (
	"strings"

	"github.com/gobwas/glob"
)

// Policy evaluates cluster allowlist rules.
type Policy struct {
	patterns []glob.Glob
}

// New creates a Policy from cluster-id glob patterns (e.g. "17/*").
func New(patterns []string) (*Policy, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, g)
	}
	return &Policy{patterns: compiled}, nil
}

// Evaluate returns true if the "version/name" cluster id is allowed.
func (p *Policy) Evaluate(cluster string) bool {
	cluster = strings.ToLower(strings.TrimSpace(cluster))

	for _, pattern := range p.patterns {
		if pattern.Match(cluster) {
			return true
		}
	}
	return false
}
