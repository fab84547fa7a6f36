package condition

import (
	"github.com/rxtech-lab/argo-strategy/internal/indicator"
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
)

// Context carries everything a single evaluation needs: the full bar series,
// the current bar index, and the per-run indicator cache. The caller advances
// Index bar by bar; Bars, Closes and Cache stay fixed for the whole run.
type Context struct {
	Bars   []types.Bar
	Closes []float64
	Index  int
	Cache  *indicator.Cache
	Logger *logger.Logger
}

// NewContext builds a run context for the given bar series. The closing-price
// series is extracted once here so indicator computation never re-walks the
// bars.
func NewContext(bars []types.Bar, cache *indicator.Cache, log *logger.Logger) *Context {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Context{
		Bars:   bars,
		Closes: types.Closes(bars),
		Index:  0,
		Cache:  cache,
		Logger: log,
	}
}
