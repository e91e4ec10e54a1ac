package job

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
	"golang.org/x/sync/errgroup"
)

type Request struct {
	Script *Script
	Tasks  []TaskRunner
}

func (r *Request) ID() string {
	return r.Script.ID
}

func (r *Request) Name() string {
	return r.Script.Name
}

func failed(res *util.Result) bool {
	return res != nil && res.Code != 0
}

// batches groups neighbouring concurrent tasks; every other task is a batch
// of its own, so steps still take effect in script order.
func (r *Request) batches() [][]int {
	ret := make([][]int, 0)
	var cur []int
	for i, t := range r.Tasks {
		if isConcurrent(t) {
			cur = append(cur, i)
			continue
		}
		if len(cur) > 0 {
			ret = append(ret, cur)
			cur = nil
		}
		ret = append(ret, []int{i})
	}
	if len(cur) > 0 {
		ret = append(ret, cur)
	}
	return ret
}

// Run executes the tasks. Results are returned in task order; a failed
// batch stops the run after its running tasks finish.
func (r *Request) Run(ctx context.Context) (bool, []*util.Result) {
	defer r.Script.Env.CleanUp()

	logger := r.Logger().With().Str("script", r.Script.ID).Logger()
	logger.Info().Msgf("run %d tasks, concurrency %d", len(r.Tasks), r.Script.Concurrency)

	results := make([]*util.Result, len(r.Tasks))
	for bi, batch := range r.batches() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.Script.Concurrency)
		for _, i := range batch {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					results[i] = util.Error("Canceled", err)
					return err
				}
				logger.Info().Msgf("running script task[%d]", i)
				res := r.Tasks[i].Run()
				results[i] = res
				if failed(res) {
					logger.Err(res).Msgf("script task[%d] failed", i)
					return res
				}
				logger.Info().Msgf("script task[%d] succeeded", i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.Error().Msgf("batch[%d] failed: %s", bi, err.Error())
			return false, compact(results)
		}
	}
	return true, results
}

func compact(results []*util.Result) []*util.Result {
	ret := make([]*util.Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			ret = append(ret, res)
		}
	}
	return ret
}

func (r *Request) Logger() *zerolog.Logger {
	return r.Script.Env.Logger()
}
