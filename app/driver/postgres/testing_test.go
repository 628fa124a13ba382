package postgres

import (
	"context"
	"io"
	"log/slog"

	"github.com/pashagolub/pgxmock/v3"
)

// fakeStoreSource hands every caller the same mock pool regardless of
// the tenant in ctx.
type fakeStoreSource struct {
	pool pgxmock.PgxPoolIface
	err  error
}

func (f *fakeStoreSource) Executor(ctx context.Context) (DatabaseIface, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pool, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
