// Package seed loads catalogue records from YAML files.
//
// A seed file looks like:
//
//	records:
//	  - kind: customer
//	    id: C001
//	    fields:
//	      name: Acme Ltd
//	      city: Leeds
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// ErrEmptySeed indicates a seed file with no records.
var ErrEmptySeed = errors.New("seed: no records")

// settle is how long Watch waits for a burst of file events to finish.
const settle = 100 * time.Millisecond

type file struct {
	Records []entry `yaml:"records"`
}

type entry struct {
	Kind   string         `yaml:"kind"`
	ID     string         `yaml:"id"`
	Fields map[string]any `yaml:"fields"`
}

// Parse decodes seed YAML into records. Kinds accept the same spellings
// as the CLI (plurals, any case).
func Parse(data []byte) ([]domain.Record, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(f.Records) == 0 {
		return nil, ErrEmptySeed
	}

	records := make([]domain.Record, 0, len(f.Records))
	for i, e := range f.Records {
		kind, err := domain.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("record %d: kind %q: %w", i, e.Kind, err)
		}
		fields := e.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		records = append(records, domain.Record{
			ID:     e.ID,
			Kind:   kind,
			Fields: fields,
		})
	}
	return records, nil
}

// Load reads and parses a seed file.
func Load(path string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Loaded %d records from %s", len(records), path)
	return records, nil
}

// Watch calls onChange with the freshly loaded records each time the file
// at path is written or replaced. It blocks until ctx is cancelled.
// The parent directory is watched so editors that save by rename are seen.
func Watch(ctx context.Context, path string, onChange func([]domain.Record, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve seed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("Watching %s", abs)

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case <-timer.C:
			onChange(Load(abs))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Seed watcher error: %v", err)
		}
	}
}
