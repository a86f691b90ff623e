package proxy

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/BielosX/wombat/poke-proxy/src/pokeapi"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
)

const tracerName = "github.com/BielosX/wombat/poke-proxy/src/proxy"

type PokemonFetchProxy struct {
	upstream Upstream
	sugar    *zap.SugaredLogger
	tracer   trace.Tracer
	intN     func(n int) int
}

type Option func(*PokemonFetchProxy)

func WithTracer(tracer trace.Tracer) Option {
	return func(p *PokemonFetchProxy) { p.tracer = tracer }
}

// WithRandom replaces the source used to pick a default identifier. intN must
// return a value in [0, n).
func WithRandom(intN func(n int) int) Option {
	return func(p *PokemonFetchProxy) { p.intN = intN }
}

func NewPokemonFetchProxy(upstream Upstream, sugar *zap.SugaredLogger, opts ...Option) *PokemonFetchProxy {
	p := &PokemonFetchProxy{
		upstream: upstream,
		sugar:    sugar,
		tracer:   otel.Tracer(tracerName),
		intN:     rand.IntN,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Resolve applies defaults to a request and validates supplied values.
func (p *PokemonFetchProxy) Resolve(request Request) (Params, error) {
	params := Params{CacheLifetimeSeconds: DefaultCacheLifetimeSeconds}
	if request.Id != nil {
		if *request.Id < 1 {
			return Params{}, zerr.With(zerr.Wrap(ErrInvalidIdentifier, "invalid id"), "id", *request.Id)
		}
		params.Id = *request.Id
	} else {
		params.Id = int32(p.intN(MaxDefaultId-MinDefaultId+1) + MinDefaultId)
	}
	if request.CacheLifetimeSeconds != nil {
		if *request.CacheLifetimeSeconds < 0 {
			return Params{}, zerr.With(zerr.Wrap(ErrInvalidCacheLifetime, "invalid cache lifetime"),
				"cache_lifetime_seconds", *request.CacheLifetimeSeconds)
		}
		params.CacheLifetimeSeconds = *request.CacheLifetimeSeconds
		params.LifetimeSupplied = true
	}
	return params, nil
}

// FetchPokemon resolves the request, performs one upstream fetch and returns
// the projection. Nothing is returned alongside an error.
func (p *PokemonFetchProxy) FetchPokemon(ctx context.Context, request Request) (*Result, error) {
	params, err := p.Resolve(request)
	if err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "FetchPokemon", trace.WithAttributes(
		attribute.Int("pokemon.id", int(params.Id)),
		attribute.Int("pokemon.cache_lifetime_seconds", int(params.CacheLifetimeSeconds)),
	))
	defer span.End()

	sugar := p.sugar.With("invocationId", uuid.NewString())
	if params.LifetimeSupplied && params.CacheLifetimeSeconds > 0 {
		sugar.Infof("Fetching Pokemon with ID: %d (revalidate: %ds)", params.Id, params.CacheLifetimeSeconds)
	} else {
		sugar.Infof("Fetching Pokemon with ID: %d", params.Id)
	}

	pokemon, err := p.upstream.GetPokemon(ctx, params.Id, params.CacheLifetime())
	if err != nil {
		if errors.Is(err, pokeapi.ErrFetchFailed) {
			sugar.Errorf("Failed to fetch Pokemon %d: %s", params.Id, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sugar.Infof("Successfully fetched Pokemon: %s (ID: %d)", pokemon.Name, pokemon.Id)
	span.SetAttributes(attribute.String("pokemon.name", pokemon.Name))
	return Project(pokemon), nil
}

// Project reduces an upstream document to the result shape, keeping type order.
func Project(pokemon *pokeapi.PokemonResponse) *Result {
	types := make([]string, 0, len(pokemon.Types))
	for _, t := range pokemon.Types {
		types = append(types, t.Type.Name)
	}
	return &Result{
		Id:   pokemon.Id,
		Name: pokemon.Name,
		Type: types,
	}
}
