package proxy

import (
	"context"
	"time"

	"github.com/BielosX/wombat/poke-proxy/src/pokeapi"
)

//go:generate mockgen -source=upstream.go -destination=mocks/mock_upstream.go -package=mocks

// Upstream fetches a single pokemon document.
type Upstream interface {
	GetPokemon(ctx context.Context, id int32, lifetime time.Duration) (*pokeapi.PokemonResponse, error)
}
