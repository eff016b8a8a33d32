// Package mocks provides hand-written test doubles for the store, blob,
// provider and event interfaces.
//
// Each mock has a function field per method. When a field is nil the mock
// falls back to a simple in-memory behavior, so scenario tests can run
// against working fakes and override only the calls they care about:
//
//	videos := mocks.NewMockVideoStore()
//	videos.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
//	    return store.ErrVideoNotFound
//	}
package mocks
