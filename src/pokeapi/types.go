package pokeapi

type PokemonTypeEntry struct {
	Name string `json:"name"`
}

type PokemonType struct {
	Slot int32            `json:"slot"`
	Type PokemonTypeEntry `json:"type"`
}

type PokemonResponse struct {
	Id    int32         `json:"id"`
	Name  string        `json:"name"`
	Types []PokemonType `json:"types"`
}

// The wire shapes keep every field optional so that a missing field can be
// told apart from a zero value while decoding.
type wirePokemonTypeEntry struct {
	Name *string `json:"name"`
}

type wirePokemonType struct {
	Slot int32                 `json:"slot"`
	Type *wirePokemonTypeEntry `json:"type"`
}

type wirePokemonResponse struct {
	Id    *int32             `json:"id"`
	Name  *string            `json:"name"`
	Types *[]wirePokemonType `json:"types"`
}
