package framecheck

import (
	"context"
	"log/slog"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/logger"
)

// logDataset traces a dataset crossing the guarded boundary. Logging
// happens before validation so the shape is on record even when the
// report fails the call.
func (g *Guard) logDataset(boundary string, ds dataset.Dataset) {
	if g.logger == nil {
		return
	}
	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "dataset at function boundary",
		logger.Function(g.function),
		logger.Boundary(boundary),
		logger.Shape(dataset.Describe(ds, true)),
		logger.Rows(ds.NumRows()),
	)
}
