// Package api exposes the proxy over Lambda invocations and plain HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BielosX/wombat/poke-proxy/src/pokeapi"
	"github.com/BielosX/wombat/poke-proxy/src/proxy"
	"go.trai.ch/zerr"
)

var ErrInvalidParameter = zerr.New("invalid parameter")

// Fetcher is implemented by proxy.PokemonFetchProxy.
type Fetcher interface {
	FetchPokemon(ctx context.Context, request proxy.Request) (*proxy.Result, error)
}

type ErrorBody struct {
	Error string `json:"error"`
}

func parseOptionalInt32(name, raw string) (*int32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidParameter, name+" must be an integer"), "value", raw)
	}
	v := int32(value)
	return &v, nil
}

// ParseRequest builds a proxy request from the textual id and revalidate
// parameters. Empty strings mean the parameter was not given.
func ParseRequest(id, revalidate string) (proxy.Request, error) {
	parsedId, err := parseOptionalInt32("id", id)
	if err != nil {
		return proxy.Request{}, err
	}
	parsedRevalidate, err := parseOptionalInt32("revalidate", revalidate)
	if err != nil {
		return proxy.Request{}, err
	}
	return proxy.Request{Id: parsedId, CacheLifetimeSeconds: parsedRevalidate}, nil
}

func cacheLifetimeSeconds(request proxy.Request) int32 {
	if request.CacheLifetimeSeconds == nil {
		return proxy.DefaultCacheLifetimeSeconds
	}
	return *request.CacheLifetimeSeconds
}

func cacheControl(request proxy.Request) string {
	return "public, max-age=" + strconv.Itoa(int(cacheLifetimeSeconds(request)))
}

// StatusCode maps a fetch error to the HTTP status reported to callers.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidParameter),
		errors.Is(err, proxy.ErrInvalidIdentifier),
		errors.Is(err, proxy.ErrInvalidCacheLifetime):
		return http.StatusBadRequest
	case errors.Is(err, pokeapi.ErrFetchFailed),
		errors.Is(err, pokeapi.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
