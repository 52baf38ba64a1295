package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"cclex/internal/diag"
	"cclex/internal/source"
)

const (
	DefaultMaxDiagnostics = 100
	DefaultCacheDir       = ".cclex/cache"
)

// Manifest is the decoded cclex.toml.
type Manifest struct {
	Path string `toml:"-"` // "" for the built-in defaults
	Root string `toml:"-"`

	Lex   LexConfig   `toml:"lex"`
	Cache CacheConfig `toml:"cache"`
}

// LexConfig holds the [lex] table.
type LexConfig struct {
	Extensions     []string `toml:"extensions"`
	Jobs           int      `toml:"jobs"` // 0 - по числу CPU
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

// CacheConfig holds the [cache] table.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // относительно Root
}

// DefaultManifest returns the configuration used when no cclex.toml exists.
func DefaultManifest() *Manifest {
	return &Manifest{
		Lex: LexConfig{
			Extensions:     []string{".c", ".h"},
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
		Cache: CacheConfig{Dir: DefaultCacheDir},
	}
}

// ManifestError describes a cclex.toml that failed to decode or validate.
// Start and Len locate the problem in the file when known.
type ManifestError struct {
	Path  string
	Msg   string
	Start int
	Len   int
	Err   error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Diagnostic registers the manifest in fs and returns a PRJ5001 diagnostic
// pointing at the error position.
func (e *ManifestError) Diagnostic(fs *source.FileSet) (diag.Diagnostic, error) {
	id, err := fs.Load(e.Path)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	f := fs.Get(id)
	size := len(f.Content)
	start := min(max(e.Start, 0), size)
	end := min(start+max(e.Len, 0), size)
	sp := source.Span{File: id, Start: uint32(start), End: uint32(end)} //nolint:gosec // bounded by len(Content)
	return diag.NewError(diag.ProjInvalidManifest, sp, e.Msg), nil
}

// LoadManifest finds cclex.toml above startDir and decodes it.
// Without a manifest it returns DefaultManifest and ok=false.
func LoadManifest(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return DefaultManifest(), false, nil
	}
	m, err = DecodeManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DecodeManifest reads path on top of DefaultManifest and validates it.
func DecodeManifest(path string) (*Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, m)
	if err != nil {
		me := &ManifestError{Path: path, Msg: "failed to parse TOML", Err: err}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			me.Msg = perr.Message
			me.Start = perr.Position.Start
			me.Len = perr.Position.Len
		} else {
			me.Msg = err.Error()
		}
		return nil, me
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ManifestError{Path: path, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	if err := m.Validate(); err != nil {
		return nil, &ManifestError{Path: path, Msg: err.Error(), Err: err}
	}
	return m, nil
}

// Validate checks value ranges and normalizes extensions to ".ext" form.
func (m *Manifest) Validate() error {
	if m.Lex.Jobs < 0 {
		return fmt.Errorf("[lex].jobs must be >= 0, got %d", m.Lex.Jobs)
	}
	if m.Lex.MaxDiagnostics < 0 {
		return fmt.Errorf("[lex].max_diagnostics must be >= 0, got %d", m.Lex.MaxDiagnostics)
	}
	if len(m.Lex.Extensions) == 0 {
		return errors.New("[lex].extensions must not be empty")
	}
	for i, ext := range m.Lex.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return fmt.Errorf("[lex].extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.Lex.Extensions[i] = ext
	}
	if m.Cache.Enabled && strings.TrimSpace(m.Cache.Dir) == "" {
		return errors.New("[cache].dir must be set when the cache is enabled")
	}
	return nil
}

// MatchesExtension reports whether path has one of the configured extensions.
func (m *Manifest) MatchesExtension(path string) bool {
	return slices.Contains(m.Lex.Extensions, filepath.Ext(path))
}

// CacheDir returns the cache directory resolved against the project root.
func (m *Manifest) CacheDir() string {
	dir := m.Cache.Dir
	if dir == "" || filepath.IsAbs(dir) || m.Root == "" {
		return dir
	}
	return filepath.Join(m.Root, dir)
}

// Encode renders m as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# cclex project configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes a default cclex.toml into dir. An existing manifest is
// kept unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		}
	}
	data, err := DefaultManifest().Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // manifest is not secret
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
