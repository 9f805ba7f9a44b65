package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/matrixgame/internal/dependencies/mocks"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/user"
	"github.com/mcoot/matrixgame/internal/storage"
	"github.com/mcoot/matrixgame/internal/storage/memory"
	"github.com/mcoot/matrixgame/internal/storage/sqlite"
	"github.com/mcoot/matrixgame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App on in-memory storage with a mocked clock
func NewTestApp() *TestApp {
	return newTestApp(memory.New())
}

// NewSQLiteTestApp creates an App on a sqlite database at path with a
// mocked clock. Sessions stay in memory.
func NewSQLiteTestApp(ctx context.Context, path string) (*TestApp, error) {
	store, err := sqlite.New(ctx, path)
	if err != nil {
		return nil, err
	}
	app := newTestApp(store)
	app.closers = append(app.closers, store)
	return app, nil
}

func newTestApp(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	sessions, ok := store.(storage.SessionStore)
	if !ok {
		sessions = memory.New()
	}

	app := newWithDependencies(
		store,
		sessions,
		mockClock,
		auth.DefaultConfig(),
		user.Config{BcryptCost: bcrypt.MinCost},
		testutil.NopLogger(),
	)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
