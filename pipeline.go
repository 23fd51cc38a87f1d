package teletext

import (
	"context"
	"sync"
)

// DefaultWorkers is the number of pages rendered concurrently by RenderAll.
const DefaultWorkers = 4

func (t *Teletext) feedArticles(ctx context.Context, articles []Article) (<-chan Article, <-chan error, error) {
	out := make(chan Article)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, a := range articles {
			select {
			case out <- a:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

func (t *Teletext) pageWorker(ctx context.Context, in <-chan Article, opts Options, fn func(*Page) error) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for a := range in {
			p, err := t.Render(ctx, a, opts)
			if err != nil {
				if ctx.Err() != nil {
					errc <- ctx.Err()
					return
				}
				// A bad article only loses its own page
				t.logger.Printf("Skipping \"%s\": %v\n", a.Title, err)
				continue
			}

			if err := fn(p); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// RenderAll renders each article using up to workers concurrent pages and
// calls fn with every page that renders successfully. fn may be called
// concurrently. Articles that fail to render are logged and skipped; the
// first error returned by fn stops the pipeline and is returned.
func (t *Teletext) RenderAll(ctx context.Context, articles []Article, opts Options, workers int, fn func(*Page) error) error {
	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	in, errc, err := t.feedArticles(ctx, articles)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := t.pageWorker(ctx, in, opts, fn)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
