package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// Reader turns a statement file into raw rows keyed by the header row.
type Reader interface {
	Read(r io.ReadSeeker) ([]model.RawRow, error)
	Format() string
	Extensions() []string
}

// SupportedExtensions lists every extension an upload may declare.
var SupportedExtensions = []string{"csv", "xlsx", "xls"}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader for each of its extensions. Panics on duplicate extension.
func (r *Registry) Register(rd Reader) {
	for _, ext := range rd.Extensions() {
		key := NormalizeExt(ext)
		if _, ok := r.readers[key]; ok {
			panic("duplicate reader extension: " + key)
		}
		r.readers[key] = rd
	}
}

// Get returns the reader for ext, or nil.
func (r *Registry) Get(ext string) Reader {
	return r.readers[NormalizeExt(ext)]
}

// DefaultRegistry returns a registry with the delimited-text and spreadsheet readers.
func DefaultRegistry() *Registry {
	r := DelimitedRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	return r
}

// DelimitedRegistry returns a registry that only reads CSV files.
func DelimitedRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	return r
}

// NormalizeExt lower-cases ext and strips a leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// Supported reports whether ext is one of SupportedExtensions.
func Supported(ext string) bool {
	return slices.Contains(SupportedExtensions, NormalizeExt(ext))
}

// Read parses the file at path with the reader registered for ext.
func (r *Registry) Read(path, ext string) ([]model.RawRow, error) {
	ext = NormalizeExt(ext)
	if !Supported(ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	rd := r.Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("%w: cannot read .%s files, convert the statement to CSV and upload it again", ErrMissingCapability, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrParseFailure, filepath.Base(path), err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, filepath.Base(path))
	}
	return rows, nil
}

// processedDir is the subdirectory of the import directory for imported files.
const processedDir = "processed"

// Scan returns supported statement files in dir, sorted by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !Supported(filepath.Ext(e.Name())) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
