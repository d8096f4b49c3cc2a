package analysis

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// MockProvider returns a uniformly chosen canned analysis regardless of file content
type MockProvider struct {
	templates []types.AnalysisRecord
	delay     time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// MockOption configures a MockProvider
type MockOption func(*MockProvider)

// WithDelay sets the total simulated processing time, split evenly across the phases
func WithDelay(d time.Duration) MockOption {
	return func(p *MockProvider) {
		p.delay = d
	}
}

// WithSeed makes template selection deterministic
func WithSeed(seed uint64) MockOption {
	return func(p *MockProvider) {
		p.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewMockProvider creates a provider over the given template pool
func NewMockProvider(templates []types.AnalysisRecord, opts ...MockOption) (*MockProvider, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("at least one analysis template is required")
	}

	p := &MockProvider{
		templates: templates,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewDefaultMockProvider creates a provider over the embedded templates
func NewDefaultMockProvider(opts ...MockOption) (*MockProvider, error) {
	templates, err := DefaultTemplates()
	if err != nil {
		return nil, err
	}
	return NewMockProvider(templates, opts...)
}

// Analyze reports each phase, waits out the simulated delay and returns a copy of a random template
func (p *MockProvider) Analyze(ctx context.Context, _ types.UploadFile, progress ProgressFunc) (*types.AnalysisRecord, error) {
	step := p.delay / time.Duration(len(Phases))

	for _, ph := range Phases {
		if progress != nil {
			progress(ph)
		}
		if err := sleep(ctx, step); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	idx := p.rng.IntN(len(p.templates))
	p.mu.Unlock()

	record, err := cloneRecord(&p.templates[idx])
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(Progress{Phase: PhaseFinalizing, Percent: 100})
	}
	return record, nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
