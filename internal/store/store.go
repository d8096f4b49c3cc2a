// Package store persists analysis records and the newest-first history index
// on top of a string key-value backend.
//
// Layout:
//
//	resumeHistory -> JSON array of HistoryIndexEntry, newest first
//	resume_<id>   -> JSON AnalysisRecord
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/kvstore"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
	"golang.org/x/sync/errgroup"
)

// HistoryKey is the key holding the history index
const HistoryKey = "resumeHistory"

// recordKeyPrefix prefixes the key of every stored record
const recordKeyPrefix = "resume_"

// clearConcurrency bounds parallel removals in Clear
const clearConcurrency = 8

// RecordKey returns the storage key for the record with the given ID
func RecordKey(id string) string {
	return recordKeyPrefix + id
}

// Store is the analysis store. It is safe for concurrent use within one process.
type Store struct {
	backend  kvstore.Backend
	provider analysis.Provider
	ids      *IDGenerator
	now      func() time.Time

	// mu serializes writers of the history index
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for IDs and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store over backend that asks provider for analyses
func New(backend kvstore.Backend, provider analysis.Provider, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		provider: provider,
		ids:      &IDGenerator{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit analyzes file and persists the result.
//
// The file must already have passed upload validation. The record and its
// history entry are written as one unit: a listed entry always resolves to a record.
func (s *Store) Submit(ctx context.Context, file types.UploadFile, progress analysis.ProgressFunc) (*types.AnalysisRecord, error) {
	record, err := s.provider.Analyze(ctx, file, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", file.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory(ctx)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		s.ids.Observe(history[0].ID)
	}

	completedAt := s.now()
	record.ID = s.ids.Next(completedAt)
	record.FileName = file.Name
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("analysis for %s is invalid: %w", file.Name, err)
	}

	entry := types.NewHistoryEntry(record, file.Name, completedAt)
	history = append([]types.HistoryIndexEntry{entry}, history...)

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := s.writeBoth(ctx, record.ID, string(recordJSON), string(historyJSON)); err != nil {
		return nil, err
	}

	log.Printf("[store] Stored analysis %s for %s (rating %d)", record.ID, file.Name, record.Feedback.Rating)
	return record, nil
}

// ListHistory returns every history entry, newest first.
// An empty store yields an empty slice.
func (s *Store) ListHistory(ctx context.Context) ([]types.HistoryIndexEntry, error) {
	return s.readHistory(ctx)
}

// GetAnalysis returns the record stored under id.
// Absent or undecodable records yield *types.ErrNotFound.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*types.AnalysisRecord, error) {
	if id == "" {
		return nil, &types.ErrNotFound{ID: id}
	}

	key := RecordKey(id)
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}
	if !ok {
		return nil, &types.ErrNotFound{ID: id}
	}

	record, err := decodeRecord(key, raw)
	if err != nil {
		log.Printf("[store] Treating analysis %s as missing: %v", id, err)
		return nil, &types.ErrNotFound{ID: id, Cause: err}
	}
	return record, nil
}

// Clear removes the history index and every analysis it lists.
//
// The index goes first, so no listed entry outlives its record. Entries whose
// records could not be removed are written back to the index. An unreadable
// index is dropped, but the records it listed cannot be found and the decode
// error is returned.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.loadHistory(ctx)
	var decodeErr *types.ErrStorageDecode
	if errors.As(err, &decodeErr) {
		if rmErr := s.backend.Remove(ctx, HistoryKey); rmErr != nil {
			return fmt.Errorf("failed to clear history: %w", rmErr)
		}
		return fmt.Errorf("history index was unreadable, stored analyses were left in place: %w", err)
	}
	if err != nil {
		return err
	}

	if err := s.backend.Remove(ctx, HistoryKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	failed := make([]bool, len(history))
	var g errgroup.Group
	g.SetLimit(clearConcurrency)
	for i, entry := range history {
		g.Go(func() error {
			if err := s.backend.Remove(ctx, RecordKey(entry.ID)); err != nil {
				failed[i] = true
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		kept := s.restoreHistory(context.WithoutCancel(ctx), history, failed)
		return fmt.Errorf("failed to clear analyses (%d left in history): %w", kept, err)
	}

	log.Printf("[store] Cleared %d analyses", len(history))
	return nil
}

// restoreHistory writes back the entries whose removal failed and whose
// records still exist. It returns how many entries were restored.
func (s *Store) restoreHistory(ctx context.Context, history []types.HistoryIndexEntry, failed []bool) int {
	kept := []types.HistoryIndexEntry{}
	for i, entry := range history {
		if !failed[i] {
			continue
		}
		if _, ok, err := s.backend.Get(ctx, RecordKey(entry.ID)); err != nil || !ok {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		return 0
	}

	raw, err := json.Marshal(kept)
	if err == nil {
		err = s.backend.Set(ctx, HistoryKey, string(raw))
	}
	if err != nil {
		log.Printf("[store] Failed to restore %d history entries: %v", len(kept), err)
		return 0
	}
	return len(kept)
}

// readHistory loads the index. A malformed index is logged and read as empty.
func (s *Store) readHistory(ctx context.Context) ([]types.HistoryIndexEntry, error) {
	history, err := s.loadHistory(ctx)
	var decodeErr *types.ErrStorageDecode
	if errors.As(err, &decodeErr) {
		log.Printf("[store] Ignoring unreadable history index: %v", err)
		return []types.HistoryIndexEntry{}, nil
	}
	return history, err
}

// loadHistory loads the index, reporting a malformed one as *types.ErrStorageDecode
func (s *Store) loadHistory(ctx context.Context) ([]types.HistoryIndexEntry, error) {
	raw, ok, err := s.backend.Get(ctx, HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok {
		return []types.HistoryIndexEntry{}, nil
	}
	return decodeHistory(raw)
}

// writeBoth stores the record and the index as a single logical write
func (s *Store) writeBoth(ctx context.Context, id, recordJSON, historyJSON string) error {
	recordKey := RecordKey(id)

	if batcher, ok := s.backend.(kvstore.Batcher); ok {
		err := batcher.SetAll(ctx, []kvstore.Entry{
			{Key: recordKey, Value: recordJSON},
			{Key: HistoryKey, Value: historyJSON},
		})
		if err != nil {
			return fmt.Errorf("failed to save analysis %s: %w", id, err)
		}
		return nil
	}

	// Record first, so the index never points at a missing record
	if err := s.backend.Set(ctx, recordKey, recordJSON); err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", id, err)
	}
	if err := s.backend.Set(ctx, HistoryKey, historyJSON); err != nil {
		if rmErr := s.backend.Remove(context.WithoutCancel(ctx), recordKey); rmErr != nil {
			log.Printf("[store] Failed to roll back analysis %s: %v", id, rmErr)
		}
		return fmt.Errorf("failed to save history for %s: %w", id, err)
	}
	return nil
}

func decodeRecord(key, raw string) (*types.AnalysisRecord, error) {
	if err := schemas.ValidateAnalysisRecord([]byte(raw)); err != nil {
		return nil, &types.ErrStorageDecode{Key: key, Cause: err}
	}

	var record types.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &types.ErrStorageDecode{Key: key, Cause: err}
	}
	return &record, nil
}

func decodeHistory(raw string) ([]types.HistoryIndexEntry, error) {
	if err := schemas.ValidateHistory([]byte(raw)); err != nil {
		return nil, &types.ErrStorageDecode{Key: HistoryKey, Cause: err}
	}

	var history []types.HistoryIndexEntry
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, &types.ErrStorageDecode{Key: HistoryKey, Cause: err}
	}
	if history == nil {
		history = []types.HistoryIndexEntry{}
	}
	return history, nil
}
