package app

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/gomovies/internal/constants"
	"github.com/amaumene/gomovies/internal/models"
	"github.com/amaumene/gomovies/pkg/debounce"
	"github.com/amaumene/gomovies/pkg/logger"
)

const eventBuffer = 64

type queryEvent struct {
	query string
}

type debouncedEvent struct {
	query string
}

type fetchDoneEvent struct {
	seq    uint64 // must match Controller.seq to be applied
	query  string
	movies []models.Movie
	err    error
}

type trendingEvent struct {
	records []models.TrendingRecord
	err     error
}

// Options tunes a Controller. Zero values pick the defaults.
type Options struct {
	DebounceDelay time.Duration
	TrendingLimit int
	Logger        logger.Logger
}

// Controller drives one search session. All state is owned by the Run
// goroutine; other goroutines only send it events.
type Controller struct {
	searcher      Searcher
	logger        logger.Logger
	debouncer     *debounce.Debouncer[string]
	trendingLimit int

	events chan any
	done   chan struct{}

	// loop-owned
	state       State
	seq         uint64
	cancelFetch context.CancelFunc

	mu          sync.RWMutex
	snapshot    State
	subscribers map[int]func(State)
	nextSubID   int
	started     bool
}

func NewController(searcher Searcher, opts Options) *Controller {
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = constants.DebounceDelay
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = constants.TrendingLimit
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	c := &Controller{
		searcher:      searcher,
		logger:        opts.Logger,
		trendingLimit: opts.TrendingLimit,
		events:        make(chan any, eventBuffer),
		done:          make(chan struct{}),
		state:         newState(),
		subscribers:   make(map[int]func(State)),
	}
	// the mount fetch starts as soon as Run does
	c.state.Loading = true
	c.snapshot = c.state.clone()
	c.debouncer = debounce.New(opts.DebounceDelay, func(q string) {
		c.send(debouncedEvent{query: q})
	})
	return c
}

// Run mounts the session and processes events until ctx is cancelled.
// It may be called once.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.mu.Unlock()

	defer close(c.done)
	defer c.debouncer.Stop()
	defer c.cancelInFlight()

	c.mount(ctx)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debugf("[Controller] stopping: %v", ctx.Err())
			return nil
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// SetQuery records raw input. The query is acted upon once input has been
// quiet for the debounce delay.
func (c *Controller) SetQuery(query string) {
	c.send(queryEvent{query: query})
	c.debouncer.Push(query)
}

// Submit acts on the pending query now instead of waiting out the delay.
func (c *Controller) Submit() {
	c.debouncer.Flush()
}

// Snapshot returns the latest published State.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.clone()
}

// OnChange registers fn to receive every published State. fn runs on the
// controller goroutine and must not block. The returned func unregisters.
func (c *Controller) OnChange(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Subscribe returns a channel carrying published states. A slow reader
// only misses intermediate states, never the newest one.
func (c *Controller) Subscribe(buffer int) (<-chan State, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan State, buffer)
	cancel := c.OnChange(func(s State) {
		for {
			select {
			case ch <- s:
				return
			default:
				select {
				case <-ch:
				default:
				}
			}
		}
	})
	return ch, cancel
}

func (c *Controller) send(ev any) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) mount(ctx context.Context) {
	go func() {
		tctx, cancel := context.WithTimeout(ctx, constants.TrendingTimeout)
		defer cancel()
		records, err := c.searcher.Trending(tctx, c.trendingLimit)
		c.send(trendingEvent{records: records, err: err})
	}()

	c.startFetch(ctx, c.state.DebouncedQuery)
}

func (c *Controller) handle(ctx context.Context, ev any) {
	switch ev := ev.(type) {
	case queryEvent:
		if ev.query == c.state.Query {
			return
		}
		c.state.Query = ev.query
		c.publish()

	case debouncedEvent:
		if ev.query == c.state.DebouncedQuery {
			return
		}
		c.state.DebouncedQuery = ev.query
		c.startFetch(ctx, ev.query)

	case fetchDoneEvent:
		c.finishFetch(ev)

	case trendingEvent:
		if ev.err != nil {
			c.logger.Warnf("[Controller] failed to load trending searches: %v", ev.err)
			return
		}
		if ev.records == nil {
			ev.records = []models.TrendingRecord{}
		}
		c.state.Trending = ev.records
		c.publish()
	}
}

// startFetch supersedes any in-flight fetch.
func (c *Controller) startFetch(ctx context.Context, query string) {
	c.cancelInFlight()

	c.seq++
	seq := c.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel

	c.state.Loading = true
	c.state.Error = ""
	c.publish()

	go func() {
		movies, err := c.searcher.Find(fetchCtx, query)
		c.send(fetchDoneEvent{seq: seq, query: query, movies: movies, err: err})
	}()
}

func (c *Controller) finishFetch(ev fetchDoneEvent) {
	if ev.seq != c.seq {
		c.logger.Debugf("[Controller] dropping stale result for %q", ev.query)
		return
	}
	c.cancelInFlight()

	c.state.Loading = false
	if ev.err != nil {
		c.logger.Errorf("[Controller] fetch for %q failed: %v", ev.query, ev.err)
		c.state.Movies = []models.Movie{}
		c.state.Error = constants.FetchErrorMessage
	} else {
		if ev.movies == nil {
			ev.movies = []models.Movie{}
		}
		c.state.Movies = ev.movies
		c.state.Error = ""
	}
	c.publish()
}

func (c *Controller) cancelInFlight() {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) publish() {
	s := c.state.clone()

	c.mu.Lock()
	c.snapshot = s
	subs := make([]func(State), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s.clone())
	}
}
