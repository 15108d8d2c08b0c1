package movies

import (
	"context"
	"errors"
	"sync"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const DefaultGenreId = 1

// ErrOutsideProvider is the panic value of MustFromContext when no provider is in scope.
var ErrOutsideProvider = errors.New("movies: state must be used within a movies provider")

var tracer = otel.Tracer("storefront_backend/movies")

// Provider holds the movie browsing state: the genre list, fetched once on
// Mount, and the movies plus genre detail of the selected genre, fetched
// again on every selection change.
type Provider struct {
	api    API
	logger *logrus.Logger

	mu      sync.Mutex
	state   State
	mounted bool
	closed  bool
	// seq identifies the newest selection fetch; older results are dropped.
	seq    uint64
	cancel context.CancelFunc

	baseCtx    context.Context
	baseCancel context.CancelFunc

	subs    map[int]chan State
	nextSub int
	wg      sync.WaitGroup
}

type Option func(*Provider)

func WithLogger(logger *logrus.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func WithInitialGenre(id int) Option {
	return func(p *Provider) {
		p.state.SelectedGenreId = id
	}
}

func NewProvider(api API, opts ...Option) *Provider {
	baseCtx, baseCancel := context.WithCancel(context.Background())
	p := &Provider{
		api:        api,
		logger:     config.GetLogger(),
		state:      State{SelectedGenreId: DefaultGenreId},
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
		subs:       map[int]chan State{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount starts the fetch for the selected genre and loads the genre list.
// Only the first call does anything.
func (p *Provider) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.mounted || p.closed {
		p.mu.Unlock()
		return nil
	}
	p.mounted = true
	p.startSelectionLocked()
	p.mu.Unlock()

	ctx, span := tracer.Start(ctx, "movies.ListGenres")
	genres, err := p.api.ListGenres(ctx)
	span.End()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		config.LogError(p.logger, "provider.go", "Mount", "ListGenres", nil, err)
		p.state.GenresErr = err
	} else {
		p.state.Genres = genres
	}
	p.notifyLocked()
	return err
}

// SelectGenre changes the selected genre. Any fetch for the previous
// selection is cancelled and its result discarded. Selecting the current
// genre does nothing.
func (p *Provider) SelectGenre(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || id == p.state.SelectedGenreId {
		return
	}
	p.state.SelectedGenreId = id
	if p.mounted {
		p.startSelectionLocked()
	}
	p.notifyLocked()
}

func (p *Provider) startSelectionLocked() {
	if p.cancel != nil {
		p.cancel()
	}
	p.seq++
	ctx, cancel := context.WithCancel(p.baseCtx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.fetchSelection(ctx, cancel, p.seq, p.state.SelectedGenreId)
}

func (p *Provider) fetchSelection(ctx context.Context, cancel context.CancelFunc, seq uint64, genreId int) {
	defer p.wg.Done()
	defer cancel()

	ctx, span := tracer.Start(ctx, "movies.fetchSelection", trace.WithAttributes(attribute.Int("genre.id", genreId)))
	defer span.End()

	var (
		movies []Movie
		genre  Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = p.api.ListMovies(gctx, genreId)
		return err
	})
	g.Go(func() error {
		var err error
		genre, err = p.api.GetGenre(gctx, genreId)
		return err
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq || p.closed {
		span.SetAttributes(attribute.Bool("movies.stale", true))
		return
	}
	if err != nil {
		span.RecordError(err)
		config.LogError(p.logger, "provider.go", "fetchSelection", "fetch genre", genreId, err)
		p.state.Movies = nil
		p.state.SelectedGenre = Genre{}
		p.state.Err = err
	} else {
		p.state.Movies = movies
		p.state.SelectedGenre = genre
		p.state.Err = nil
	}
	p.notifyLocked()
}

func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

// Subscribe returns a channel receiving the state after each change. The
// channel holds only the latest state; a slow reader skips intermediate ones.
// Call the returned func to unsubscribe.
func (p *Provider) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	if p.closed {
		close(ch)
	} else {
		p.subs[id] = ch
	}
	p.mu.Unlock()

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
	}
}

func (p *Provider) notifyLocked() {
	snapshot := p.state.clone()
	for _, ch := range p.subs {
		select {
		case ch <- snapshot:
			continue
		default:
		}
		// replace the unread state with the newer one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Wait blocks until in-flight fetches finish.
func (p *Provider) Wait() {
	p.wg.Wait()
}

// Close cancels in-flight fetches, closes subscriber channels and waits.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.baseCancel()
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

type providerKey struct{}

// WithProvider puts p in scope for code reading movie state from ctx.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// MustFromContext panics with ErrOutsideProvider when ctx carries no provider.
func MustFromContext(ctx context.Context) *Provider {
	p, ok := FromContext(ctx)
	if !ok {
		panic(ErrOutsideProvider)
	}
	return p
}
