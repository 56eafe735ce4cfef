// Package sheet decodes statement files (CSV, XLS, XLSX) into rows of cells.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Decoder converts the raw bytes of a statement file into its first sheet.
type Decoder interface {
	Decode(data []byte) ([][]model.Cell, error)
	Format() string
}

// Registry holds decoders keyed by file extension.
type Registry struct {
	decoders map[string]Decoder
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format string
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder for its format. Panics on duplicate format.
func (r *Registry) Register(d Decoder) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// ForFile returns the decoder matching the extension of name, or nil.
func (r *Registry) ForFile(name string) Decoder {
	return r.Get(FormatOf(name))
}

// Formats returns the registered formats.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVDecoder{})
	r.Register(&XLSDecoder{})
	r.Register(&XLSXDecoder{})
	return r
}

// FormatOf returns the lower-case extension of name without the dot.
func FormatOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Scan returns the files in dir that a decoder in r can read. A missing
// directory yields no files.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format := FormatOf(e.Name())
		if r.Get(format) == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Size:   info.Size(),
			Format: format,
		})
	}
	return files, nil
}
