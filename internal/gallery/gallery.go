package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/svgtint/internal/source"
)

// DefaultConcurrency is the number of documents loaded at once by LoadAll.
const DefaultConcurrency = 4

// Options configures a Gallery.
type Options struct {
	Fetcher source.Fetcher
	Loader  Loader

	// Concurrency bounds parallel loads. Defaults to DefaultConcurrency.
	Concurrency int

	Logger hclog.Logger
}

// Gallery holds one Instance per manifest entry. Instances share no state.
type Gallery struct {
	entries     []Entry
	instances   []*Instance
	byID        map[string]*Instance
	concurrency int
	logger      hclog.Logger
}

// New creates an idle instance for every entry.
func New(entries []Entry, opts Options) (*Gallery, error) {
	if opts.Fetcher == nil || opts.Loader == nil {
		return nil, fmt.Errorf("gallery requires a fetcher and a loader")
	}
	if err := ValidateManifest(entries); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g := &Gallery{
		entries:     entries,
		byID:        make(map[string]*Instance, len(entries)),
		concurrency: concurrency,
		logger:      logger.Named("gallery"),
	}
	for _, e := range entries {
		inst := NewInstance(e.ID, opts.Fetcher, opts.Loader, g.logger)
		g.instances = append(g.instances, inst)
		g.byID[e.ID] = inst
	}
	return g, nil
}

// Entries returns the manifest entries in order.
func (g *Gallery) Entries() []Entry {
	return g.entries
}

// Instances returns the instances in manifest order.
func (g *Gallery) Instances() []*Instance {
	return g.instances
}

// Instance returns the instance for an entry id.
func (g *Gallery) Instance(id string) (*Instance, bool) {
	inst, ok := g.byID[id]
	return inst, ok
}

// LoadAll loads every entry concurrently. A failing entry does not stop the others;
// the returned map holds the error of each entry that failed.
func (g *Gallery) LoadAll(ctx context.Context) map[string]error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make(map[string]error)
		sem  = make(chan struct{}, g.concurrency)
	)

	for idx, e := range g.entries {
		inst := g.instances[idx]
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				errs[e.ID] = ctx.Err()
				mu.Unlock()
				return
			}
			defer func() { <-sem }()

			if err := inst.Load(ctx, e.Details.Src); err != nil {
				mu.Lock()
				errs[e.ID] = err
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	g.logger.Info("gallery loaded", "entries", len(g.entries), "failed", len(errs))
	return errs
}
