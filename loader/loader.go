// Package loader resolves the input documents of a generation run and parses
// them.
//
// Inputs are file paths. Empty strings are ignored; when no input remains,
// the loader looks for swagger.yaml or swagger.yml in a root directory (the
// working directory by default). Files are parsed concurrently, each with
// its own parser, and returned in input order.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/erraggy/oas2sls/oaserrors"
	"github.com/erraggy/oas2sls/parser"
	"golang.org/x/sync/errgroup"
)

// discoverPattern matches the file names picked up by discovery.
var discoverPattern = regexp.MustCompile(`^swagger\.ya?ml$`)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

type loadConfig struct {
	rootDir     string
	logger      parser.Logger
	concurrency int
}

// WithRootDir sets the directory searched when no input path is given.
// Default: the current working directory.
func WithRootDir(dir string) Option {
	return func(cfg *loadConfig) error {
		cfg.rootDir = dir
		return nil
	}
}

// WithLogger sets the structured logger passed on to the parser.
func WithLogger(l parser.Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithConcurrency limits how many documents are parsed at once.
// Default: runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(cfg *loadConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must be positive"}
		}
		cfg.concurrency = n
		return nil
	}
}

// Load resolves inputs and parses every resolved document.
// The result has the same order as the resolved inputs. The first failure
// cancels the remaining work and is returned.
func Load(ctx context.Context, inputs []string, opts ...Option) ([]*parser.Document, error) {
	cfg := &loadConfig{
		rootDir:     ".",
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("loader: invalid options: %w", err)
		}
	}
	log := parser.OrNop(cfg.logger)

	paths, err := Resolve(inputs, cfg.rootDir)
	if err != nil {
		return nil, err
	}

	docs := make([]*parser.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := parser.ParseWithOptions(
				parser.WithFilePath(path),
				parser.WithLogger(cfg.logger),
			)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	log.Debug("loaded documents", "count", len(docs))
	return docs, nil
}

// Resolve returns the non-empty entries of inputs, or the discovered
// document in rootDir when there are none.
func Resolve(inputs []string, rootDir string) ([]string, error) {
	paths := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in != "" {
			paths = append(paths, in)
		}
	}
	if len(paths) > 0 {
		return paths, nil
	}

	found, err := Discover(rootDir)
	if err != nil {
		return nil, err
	}
	return []string{found}, nil
}

// Discover returns the absolute path of the first swagger.yaml or
// swagger.yml in dir, in directory listing order.
func Discover(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("loader: %w", &oaserrors.InputError{Path: dir, Message: "invalid root directory", Cause: err})
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return "", fmt.Errorf("loader: %w", &oaserrors.InputError{Path: abs, Message: "cannot read root directory", Cause: err})
	}

	for _, entry := range entries {
		if !entry.IsDir() && discoverPattern.MatchString(entry.Name()) {
			return filepath.Join(abs, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("loader: %w", &oaserrors.InputError{Path: abs, Message: "cannot find swagger file"})
}
