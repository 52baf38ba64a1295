package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"cclex/internal/diag"
	"cclex/internal/source"
	"cclex/internal/token"
)

// Current schema version - increment when DiskPayload format or scanner
// output changes.
const diskCacheSchemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash).
type Digest [32]byte

// DiskCache хранит токены файлов на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached scan of one file. Token text is not stored;
// it is sliced back out of the file content on load.
type DiskPayload struct {
	Schema      uint16
	ContentHash Digest
	Kinds       []uint8
	Starts      []uint32
	Ends        []uint32
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic without file identity.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("disk cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey derives the cache key of a file scanned with a diagnostics cap.
// The cap is part of the key because the stored bag is already truncated.
func CacheKey(f *source.File, maxDiagnostics int) Digest {
	h := sha256.New()
	var hdr [10]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(hdr[2:], uint64(max(maxDiagnostics, 0))) //nolint:gosec // non-negative
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(f.Hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // already renamed on success

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
// A missing entry or an entry of another schema is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("disk cache: decode %x: %w", key[:4], err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельный Get не увидел полу-удалённое
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// payloadFromScan converts a scan result into its cached form.
func payloadFromScan(f *source.File, toks []token.Token, bag *diag.Bag) *DiskPayload {
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		ContentHash: f.Hash,
		Kinds:       make([]uint8, len(toks)),
		Starts:      make([]uint32, len(toks)),
		Ends:        make([]uint32, len(toks)),
	}
	for i, tok := range toks {
		p.Kinds[i] = uint8(tok.Kind)
		p.Starts[i] = tok.Span.Start
		p.Ends[i] = tok.Span.End
	}
	for _, d := range bag.Items() {
		p.Diagnostics = append(p.Diagnostics, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return p
}

// scanFromPayload rebuilds tokens and diagnostics for f. It rejects payloads
// that do not fit the file so a corrupt entry degrades to a cache miss.
func scanFromPayload(f *source.File, p *DiskPayload, maxDiagnostics int) ([]token.Token, *diag.Bag, error) {
	if p.ContentHash != f.Hash {
		return nil, nil, errors.New("content hash mismatch")
	}
	n := len(p.Kinds)
	if n == 0 || len(p.Starts) != n || len(p.Ends) != n {
		return nil, nil, errors.New("malformed token arrays")
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return nil, nil, err
	}

	toks := make([]token.Token, n)
	for i := range n {
		k := token.Kind(p.Kinds[i])
		start, end := p.Starts[i], p.Ends[i]
		if !k.Valid() || start > end || end > size {
			return nil, nil, fmt.Errorf("token %d out of range", i)
		}
		toks[i] = token.Token{
			Kind: k,
			Span: source.Span{File: f.ID, Start: start, End: end},
			Text: string(f.Content[start:end]),
		}
	}
	if toks[n-1].Kind != token.EOF {
		return nil, nil, errors.New("missing EOF")
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diagnostics {
		if cd.Start > cd.End || cd.End > size {
			return nil, nil, errors.New("diagnostic out of range")
		}
		bag.Add(diag.New(
			diag.Severity(cd.Severity),
			diag.Code(cd.Code),
			source.Span{File: f.ID, Start: cd.Start, End: cd.End},
			cd.Message,
		))
	}
	return toks, bag, nil
}
