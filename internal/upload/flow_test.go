package upload

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/kvstore"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlow(t *testing.T) (*Flow, *store.Store, *kvstore.MemoryBackend) {
	t.Helper()
	backend := kvstore.NewMemoryBackend()
	provider, err := analysis.NewDefaultMockProvider(analysis.WithSeed(1))
	require.NoError(t, err)
	s := store.New(backend, provider)
	return NewFlow(s, 0), s, backend
}

type recorder struct {
	states   []State
	progress []analysis.Progress
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnState:    func(s State) { r.states = append(r.states, s) },
		OnProgress: func(p analysis.Progress) { r.progress = append(r.progress, p) },
	}
}

func TestFlow_AcceptsSmallPDF(t *testing.T) {
	flow, s, _ := newTestFlow(t)
	ctx := context.Background()
	rec := &recorder{}

	record, err := flow.Run(ctx, types.UploadFile{Name: "resume1.pdf", Size: 2 * 1024 * 1024, MimeType: PDFMimeType}, rec.hooks())
	require.NoError(t, err)

	assert.NotEmpty(t, record.PersonalDetails.Name)
	assert.GreaterOrEqual(t, record.Feedback.Rating, 0)
	assert.LessOrEqual(t, record.Feedback.Rating, 10)

	history, err := s.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "resume1.pdf", history[0].FileName)

	assert.Equal(t, []State{StateValidating, StateProcessing, StateStored, StateIdle}, rec.states)
	assert.NotEmpty(t, rec.progress)
}

func TestFlow_RejectsOversizedPDF(t *testing.T) {
	flow, s, backend := newTestFlow(t)
	ctx := context.Background()
	rec := &recorder{}

	record, err := flow.Run(ctx, types.UploadFile{Name: "big.pdf", Size: 12 * 1024 * 1024, MimeType: PDFMimeType}, rec.hooks())
	assert.Nil(t, record)

	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size", verr.Field)

	history, err := s.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 0)
	assert.Equal(t, 0, backend.Len())

	assert.Equal(t, []State{StateValidating, StateRejected, StateIdle}, rec.states)
	assert.Empty(t, rec.progress)
}

func TestFlow_RejectsDocx(t *testing.T) {
	flow, _, backend := newTestFlow(t)
	docx := types.UploadFile{
		Name:     "resume.docx",
		Size:     40 * 1024,
		MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	_, err := flow.Run(context.Background(), docx, Hooks{})

	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Equal(t, MsgNotPDF, verr.Message)
	assert.Equal(t, 0, backend.Len())
}

type failingSubmitter struct {
	calls int
}

func (f *failingSubmitter) Submit(context.Context, types.UploadFile, analysis.ProgressFunc) (*types.AnalysisRecord, error) {
	f.calls++
	return nil, errors.New("backend offline")
}

func TestFlow_StoreFailureReturnsToIdle(t *testing.T) {
	sub := &failingSubmitter{}
	flow := NewFlow(sub, 0)
	rec := &recorder{}

	_, err := flow.Run(context.Background(), types.UploadFile{Name: "a.pdf", Size: 1, MimeType: PDFMimeType}, rec.hooks())
	require.EqualError(t, err, "backend offline")
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, []State{StateValidating, StateProcessing, StateIdle}, rec.states)
}

func TestFlow_RejectedUploadNeverCallsStore(t *testing.T) {
	sub := &failingSubmitter{}
	flow := NewFlow(sub, 1024)

	_, err := flow.Run(context.Background(), types.UploadFile{Name: "a.pdf", Size: 2048, MimeType: PDFMimeType}, Hooks{})
	require.Error(t, err)
	assert.Equal(t, 0, sub.calls)
	assert.Equal(t, int64(1024), flow.MaxSize())
}

func TestNewFlow_DefaultLimit(t *testing.T) {
	assert.Equal(t, MaxFileSize, NewFlow(&failingSubmitter{}, 0).MaxSize())
}
