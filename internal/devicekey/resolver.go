package devicekey

import (
	"context"
	"sync"

	"github.com/container-registry/devicekey/internal/identity"
	"github.com/container-registry/devicekey/internal/metrics"
	"github.com/container-registry/devicekey/internal/platform"
	"github.com/rs/zerolog"
)

// SourceFallback names the synthesized identifier used when no platform source answered.
const SourceFallback = "fallback"

// Resolver resolves the device key once and serves the cached value afterwards.
type Resolver struct {
	platform platform.Tag
	sources  *identity.Sources
	fetchers []identity.Fetcher
	synth    *identity.FallbackSynthesizer
	log      *zerolog.Logger
	observe  func(platform, source string)

	mu     sync.Mutex
	key    *[KeySize]byte
	source string
}

type Option func(*Resolver)

// WithPlatform overrides the detected platform.
func WithPlatform(tag platform.Tag) Option {
	return func(r *Resolver) { r.platform = tag }
}

// WithFetchers replaces the platform lookups.
func WithFetchers(fetchers ...identity.Fetcher) Option {
	return func(r *Resolver) { r.fetchers = fetchers }
}

// WithSources builds the platform lookups from custom OS collaborators.
// WithFetchers takes precedence.
func WithSources(src identity.Sources) Option {
	return func(r *Resolver) { r.sources = &src }
}

func WithSynthesizer(s *identity.FallbackSynthesizer) Option {
	return func(r *Resolver) { r.synth = s }
}

func WithLogger(log *zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithMetrics records every resolution with the given observer.
func WithMetrics(observe func(platform, source string)) Option {
	return func(r *Resolver) { r.observe = observe }
}

// New creates a Resolver for the running platform using the real OS sources.
func New(opts ...Option) *Resolver {
	nop := zerolog.Nop()
	r := &Resolver{
		platform: platform.Detect(),
		log:      &nop,
		observe:  metrics.ObserveResolution,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetchers == nil {
		src := identity.DefaultSources()
		if r.sources != nil {
			src = *r.sources
		}
		r.fetchers = identity.FetchersFor(r.platform, src)
	}
	if r.synth == nil {
		r.synth = identity.NewFallbackSynthesizer()
	}
	return r
}

// Platform reports the platform tag the resolver dispatches on.
func (r *Resolver) Platform() platform.Tag {
	return r.platform
}

// CryptKey returns the device key, resolving it on first use. It never fails:
// when no platform source answers, a synthesized identifier is normalized instead.
func (r *Resolver) CryptKey(ctx context.Context) [KeySize]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.key == nil {
		key, source := r.resolve(ctx)
		r.key = &key
		r.source = source
		if r.observe != nil {
			r.observe(r.platform.String(), source)
		}
	}
	return *r.key
}

// Source names the lookup that produced the cached key, or "" before the first CryptKey call.
func (r *Resolver) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

func (r *Resolver) resolve(ctx context.Context) ([KeySize]byte, string) {
	raw, source, err := identity.FirstAvailable(ctx, r.fetchers...)
	if err == nil {
		r.log.Debug().Str("platform", r.platform.String()).Str("source", source).Msg("Resolved system UUID")
		return Normalize(raw), source
	}

	r.log.Debug().Err(err).Str("platform", r.platform.String()).Msg("It is not possible to get a system UUID, synthesizing one")
	raw = r.synth.Synthesize(ctx, !r.platform.IsAndroid())
	return Normalize(raw), SourceFallback
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	return New()
})

// CryptKey returns the device key of the running process, resolved once with the
// default sources.
func CryptKey() [KeySize]byte {
	return defaultResolver().CryptKey(context.Background())
}
