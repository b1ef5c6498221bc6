package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Pool is a named, validated set of items loaded from a pool file.
type Pool struct {
	Game        string `yaml:"game"`
	Description string `yaml:"description"`
	Items       []Item `yaml:"items"`

	// Path is the file the pool was loaded from, if any.
	Path string `yaml:"-"`
}

// maxParallelLoads bounds concurrent file reads in LoadPoolDir.
const maxParallelLoads = 4

// ParsePool decodes and validates a YAML pool document.
func ParsePool(data []byte) (Pool, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Pool{}, fmt.Errorf("%w: parse yaml: %v", ErrInvalidPool, err)
	}
	if err := validateDocument(doc); err != nil {
		return Pool{}, err
	}

	var p Pool
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pool{}, fmt.Errorf("%w: decode pool: %v", ErrInvalidPool, err)
	}
	if err := Validate(p.Items); err != nil {
		return Pool{}, fmt.Errorf("pool %q: %w", p.Game, err)
	}
	return p, nil
}

// LoadPoolFile reads and validates one pool file.
func LoadPoolFile(path string) (Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pool{}, fmt.Errorf("read pool file: %w", err)
	}
	p, err := ParsePool(data)
	if err != nil {
		return Pool{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	p.Path = path
	return p, nil
}

// LoadPoolDir loads every *.yaml / *.yml file in dir, sorted by game name.
// Two files declaring the same game is an error.
func LoadPoolDir(ctx context.Context, dir string) ([]Pool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pool dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	pools := make([]Pool, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := LoadPoolFile(path)
			if err != nil {
				return err
			}
			pools[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(pools))
	for _, p := range pools {
		if prev, dup := seen[p.Game]; dup {
			return nil, fmt.Errorf("%w: game %q defined in both %s and %s",
				ErrInvalidPool, p.Game, filepath.Base(prev), filepath.Base(p.Path))
		}
		seen[p.Game] = p.Path
	}

	sort.Slice(pools, func(i, j int) bool { return pools[i].Game < pools[j].Game })
	return pools, nil
}
