package project

import (
	"fmt"

	"github.com/xyproto/env/v2"
)

// Environment variables that override cclex.toml.
const (
	EnvJobs           = "CCLEX_JOBS"
	EnvMaxDiagnostics = "CCLEX_MAX_DIAGNOSTICS"
	EnvCache          = "CCLEX_CACHE"
	EnvCacheDir       = "CCLEX_CACHE_DIR"
)

// ApplyEnv overlays CCLEX_* variables on m and validates the result.
// Flags are applied by the caller afterwards.
func (m *Manifest) ApplyEnv() error {
	if env.Has(EnvJobs) {
		m.Lex.Jobs = env.Int(EnvJobs, m.Lex.Jobs)
	}
	if env.Has(EnvMaxDiagnostics) {
		m.Lex.MaxDiagnostics = env.Int(EnvMaxDiagnostics, m.Lex.MaxDiagnostics)
	}
	if env.Has(EnvCache) {
		m.Cache.Enabled = env.Bool(EnvCache)
	}
	if env.Has(EnvCacheDir) {
		m.Cache.Dir = env.Str(EnvCacheDir, m.Cache.Dir)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}
