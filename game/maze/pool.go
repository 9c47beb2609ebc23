package maze

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var defaultPoolYAML []byte

// DefaultPool returns the built-in quote pool.
func DefaultPool() []Quote {
	pool, err := LoadPool(bytes.NewReader(defaultPoolYAML))
	if err != nil {
		panic(fmt.Sprintf("maze: embedded quote pool is invalid: %s", err))
	}
	return pool
}

// LoadPoolFile reads a YAML quote pool from path.
func LoadPoolFile(path string) ([]Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadPool(f)
}

// LoadPool decodes a YAML list of quotes. Entries without an id get
// "quote-<index>"; every entry is validated.
func LoadPool(r io.Reader) ([]Quote, error) {
	var pool []Quote
	if err := yaml.NewDecoder(r).Decode(&pool); err != nil {
		return nil, fmt.Errorf("decoding quote pool: %w", err)
	}

	seen := make(map[string]struct{}, len(pool))
	for i := range pool {
		if pool[i].ID == "" {
			pool[i].ID = fmt.Sprintf("quote-%d", i)
		}
		if err := pool[i].Validate(); err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, err)
		}
		if _, dup := seen[pool[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidQuote, pool[i].ID)
		}
		seen[pool[i].ID] = struct{}{}
	}

	return pool, nil
}
