// Package catalog holds the static mapping from MBTI code to the canned
// result record, with a mandatory DEFAULT fallback entry.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/tinytelemetry/mbtilens/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed mbti.yaml
var builtinYAML []byte

// ErrNoDefault is returned when a catalog would be built without a DEFAULT entry.
var ErrNoDefault = errors.New("catalog: missing " + model.DefaultCode + " entry")

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Catalog is an immutable code -> record table. Safe for concurrent reads.
type Catalog struct {
	records map[string]model.Record
}

// document is the on-disk YAML shape.
type document struct {
	Types map[string]model.Record `yaml:"types"`
}

var builtin = mustParse(builtinYAML)

// Default returns the built-in catalog.
func Default() *Catalog {
	return builtin
}

// New validates records and builds a catalog from them. Keys are
// upper-cased and descriptions are reduced to plain text.
func New(records map[string]model.Record) (*Catalog, error) {
	out, err := normalizeRecords(records)
	if err != nil {
		return nil, err
	}
	if _, ok := out[model.DefaultCode]; !ok {
		return nil, ErrNoDefault
	}
	return &Catalog{records: out}, nil
}

// Load decodes a YAML catalog document from r. Entries override those of
// base, which may be nil.
func Load(r io.Reader, base *Catalog) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	overrides, err := normalizeRecords(doc.Types)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]model.Record)
	if base != nil {
		for code, rec := range base.records {
			merged[code] = rec
		}
	}
	for code, rec := range overrides {
		merged[code] = rec
	}
	if _, ok := merged[model.DefaultCode]; !ok {
		return nil, ErrNoDefault
	}
	return &Catalog{records: merged}, nil
}

// normalizeRecords upper-cases keys, validates colours and strips markup.
// Two keys that differ only in case or surrounding space are an error.
func normalizeRecords(records map[string]model.Record) (map[string]model.Record, error) {
	out := make(map[string]model.Record, len(records))
	for code, rec := range records {
		key := strings.ToUpper(strings.TrimSpace(code))
		if key == "" {
			return nil, errors.New("catalog: empty type code")
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("catalog: type %s defined more than once", key)
		}
		rec.Color = strings.TrimSpace(rec.Color)
		if !colorPattern.MatchString(rec.Color) {
			return nil, fmt.Errorf("catalog: type %s: invalid color %q", key, rec.Color)
		}
		rec.Description = plainText(rec.Description)
		out[key] = rec
	}
	return out, nil
}

// LoadFile is Load on the file at path.
func LoadFile(path string, base *Catalog) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f, base)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return c, nil
}

// Lookup returns the record stored for code, compared upper-case.
func (c *Catalog) Lookup(code string) (model.Record, bool) {
	rec, ok := c.records[strings.ToUpper(code)]
	return rec, ok
}

// Resolve upper-cases raw, substitutes DEFAULT when it is empty, and looks
// it up. Unknown codes keep their upper-cased Code but carry the DEFAULT
// record.
func (c *Catalog) Resolve(raw string) model.Resolution {
	code := strings.ToUpper(raw)
	if code == "" {
		code = model.DefaultCode
	}
	if rec, ok := c.records[code]; ok {
		return model.Resolution{Code: code, Record: rec, Known: code != model.DefaultCode}
	}
	return model.Resolution{Code: code, Record: c.records[model.DefaultCode]}
}

// Codes returns the known codes in lexical order, DEFAULT excluded.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.records))
	for code := range c.records {
		if code == model.DefaultCode {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len reports the number of entries including DEFAULT.
func (c *Catalog) Len() int {
	return len(c.records)
}

func mustParse(data []byte) *Catalog {
	c, err := Load(bytes.NewReader(data), nil)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in data: %v", err))
	}
	return c
}
