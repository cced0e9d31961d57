package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dexit/pkg/dexit"
	"dexit/pkg/logging"

	"gopkg.in/yaml.v3"
)

// FileSystem is the default dexit.Loader: it discovers YAML files under a
// directory (or reads a single file) and parses each one as a stream of
// one or more test-set documents.
type FileSystem struct {
	Debug bool
}

// NewFileSystem builds a FileSystem loader.
func NewFileSystem(debug bool) *FileSystem {
	return &FileSystem{Debug: debug}
}

// Load implements dexit.Loader.
func (l *FileSystem) Load(ctx context.Context, testsPath string) ([]dexit.TestDocument, error) {
	info, err := os.Stat(testsPath)
	if err != nil {
		return nil, fmt.Errorf("loader: %s does not exist: %w", testsPath, err)
	}

	if !info.IsDir() {
		docs, err := l.loadFile(testsPath)
		if err != nil {
			return nil, err
		}
		return docs, nil
	}

	var docs []dexit.TestDocument
	err = filepath.WalkDir(testsPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isYAMLFile(path) {
			return nil
		}

		if l.Debug {
			logging.Debug("Loader", "loading test file %s", path)
		}

		fileDocs, err := l.loadFile(path)
		if err != nil {
			return fmt.Errorf("loader: %s: %w", path, err)
		}
		docs = append(docs, fileDocs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: walking %s: %w", testsPath, err)
	}

	if l.Debug {
		logging.Debug("Loader", "loaded %d test-set documents from %s", len(docs), testsPath)
	}

	return docs, nil
}

// loadFile parses one YAML file as a multi-document stream. A single file
// may describe more than one test set, each separated by a "---" document
// marker.
func (l *FileSystem) loadFile(path string) ([]dexit.TestDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var docs []dexit.TestDocument
	decoder := yaml.NewDecoder(f)
	for index := 0; ; index++ {
		var set dexit.TestSet
		if err := decoder.Decode(&set); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to parse document %d in %s: %w", index, path, err)
		}
		docs = append(docs, dexit.TestDocument{
			Source: filepath.Base(path),
			Path:   abs,
			Index:  index,
			Set:    set,
		})
	}

	return docs, nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
