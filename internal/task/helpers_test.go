package task

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// mockTask implements the Task interface for testing
type mockTask struct {
	id     uuid.UUID
	kind   Kind
	execFn func(ctx context.Context) error
}

func (m *mockTask) ID() uuid.UUID { return m.id }
func (m *mockTask) Kind() Kind { return m.kind }

func (m *mockTask) Execute(ctx context.Context) error {
	if m.execFn != nil {
		return m.execFn(ctx)
	}
	return nil
}

func newMockTask() *mockTask {
	return &mockTask{id: uuid.New(), kind: "mock"}
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// generationCall is one recorded RunGeneration invocation.
type generationCall struct {
	VideoID     uuid.UUID
	EquipmentID uuid.UUID
	Prompt      string
}

// recordingGenerator records RunGeneration calls.
type recordingGenerator struct {
	mu    sync.Mutex
	calls []generationCall
	err   error
}

func (g *recordingGenerator) RunGeneration(_ context.Context, videoID, equipmentID uuid.UUID, prompt string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generationCall{videoID, equipmentID, prompt})
	return g.err
}

func (g *recordingGenerator) Calls() []generationCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]generationCall(nil), g.calls...)
}
