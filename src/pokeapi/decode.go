package pokeapi

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

var errMissingField = zerr.New("missing field")

func requireField(present bool, field string) error {
	if present {
		return nil
	}
	return zerr.Wrap(errMissingField, field)
}

// decodePokemon parses an upstream body and rejects documents that lack any of
// the fields the projection reads.
func decodePokemon(body []byte) (*PokemonResponse, error) {
	var wire wirePokemonResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, zerr.Wrap(err, "invalid json")
	}
	if err := requireField(wire.Id != nil, "id"); err != nil {
		return nil, err
	}
	if err := requireField(wire.Name != nil && *wire.Name != "", "name"); err != nil {
		return nil, err
	}
	if err := requireField(wire.Types != nil, "types"); err != nil {
		return nil, err
	}
	types := make([]PokemonType, 0, len(*wire.Types))
	for _, entry := range *wire.Types {
		if err := requireField(entry.Type != nil && entry.Type.Name != nil, "types[].type.name"); err != nil {
			return nil, err
		}
		types = append(types, PokemonType{
			Slot: entry.Slot,
			Type: PokemonTypeEntry{Name: *entry.Type.Name},
		})
	}
	return &PokemonResponse{
		Id:    *wire.Id,
		Name:  *wire.Name,
		Types: types,
	}, nil
}
