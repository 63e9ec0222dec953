package expense

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store loads and saves a whole Ledger.
type Store interface {
	// Load returns the persisted ledger, or an empty one if nothing was ever saved.
	Load(ctx context.Context) (*Ledger, error)
	// Save replaces the persisted ledger.
	Save(ctx context.Context, l *Ledger) error
}

// Format is the encoding of a ledger file.
type Format int

const (
	// PipeFormat is the flat `id|description|amount|date` format.
	PipeFormat Format = iota
	// JSONLFormat is one json object per line.
	JSONLFormat
)

func (f Format) String() string {
	switch f {
	case PipeFormat:
		return "pipe"
	case JSONLFormat:
		return "jsonl"
	default:
		return "unknown"
	}
}

// FormatFor returns the format of a ledger file based on its extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return JSONLFormat
	}
	return PipeFormat
}

func (f Format) decode(r io.Reader) (*Ledger, error) {
	switch f {
	case PipeFormat:
		return DecodeLedger(r)
	case JSONLFormat:
		return DecodeJSONL(r)
	default:
		return nil, fmt.Errorf("cannot decode %v ledger format", f)
	}
}

func (f Format) encode(w io.Writer, l *Ledger) error {
	switch f {
	case PipeFormat:
		return EncodeLedger(w, l)
	case JSONLFormat:
		return EncodeJSONL(w, l)
	default:
		return fmt.Errorf("cannot encode %v ledger format", f)
	}
}

// FileStore persists a ledger in a single local file.
type FileStore struct {
	path   string
	format Format
}

// NewFileStore returns a store for the ledger file at path, with the format
// given by the file extension.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, format: FormatFor(path)}
}

// Path returns the path of the ledger file.
func (s *FileStore) Path() string { return s.path }

// Load reads the ledger file. A missing file is an empty ledger.
//
// If a record is malformed, it returns an empty ledger and a *RecordError.
func (s *FileStore) Load(_ context.Context) (*Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("load-ledger missing file, starting empty", "file", s.path)
		return NewLedger(), nil
	}
	if err != nil {
		return NewLedger(), fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	l, err := s.format.decode(f)
	if err != nil {
		var recErr *RecordError
		if errors.As(err, &recErr) {
			recErr.File = s.path
			return l, recErr
		}
		return l, fmt.Errorf("could not decode ledger file %q: %w", s.path, err)
	}
	slog.Debug("load-ledger", "file", s.path, "format", s.format, "count", l.Len())
	return l, nil
}

// Save rewrites the whole ledger file.
//
// The content goes to a temporary file in the same folder that is then
// renamed over the ledger file, so a crash never leaves a truncated ledger.
func (s *FileStore) Save(_ context.Context, l *Ledger) (err error) {
	mode := fs.FileMode(0644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm() // keep the mode of the existing file
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %q: %w", s.path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := s.format.encode(w, l); err != nil {
		return fmt.Errorf("could not encode ledger file %q: %w", s.path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("could not sync ledger file %q: %w", s.path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("could not set mode of ledger file %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close ledger file %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", s.path, err)
	}
	slog.Debug("save-ledger", "file", s.path, "format", s.format, "count", l.Len())
	return nil
}

// check that FileStore is a Store.
var _ Store = (*FileStore)(nil)
