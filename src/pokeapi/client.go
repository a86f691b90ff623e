package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BielosX/wombat/poke-proxy/src/cache"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
)

const DefaultBaseUrl = "https://pokeapi.co/api/v2/"

type Client struct {
	baseUrl string
	client  *http.Client
	store   cache.Store
	sugar   *zap.SugaredLogger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.client = h }
}

func WithBaseUrl(raw string) Option {
	return func(c *Client) { c.baseUrl = raw }
}

// WithCache enables the response cache. Entries are reused while younger than
// the lifetime passed to GetPokemon.
func WithCache(store cache.Store) Option {
	return func(c *Client) { c.store = store }
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl: DefaultBaseUrl,
		client:  &http.Client{},
		sugar:   sugar,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) pokemonUrl(id int32) string {
	return fmt.Sprintf("%s/pokemon/%d", strings.TrimSuffix(c.baseUrl, "/"), id)
}

type cachedPokemon struct {
	entry   *cache.Entry
	pokemon *PokemonResponse
}

func (c *Client) readCache(ctx context.Context, url string) *cachedPokemon {
	entry, err := c.store.Get(ctx, url)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.sugar.Warnf("Failed to read cache entry %s: %s", url, err)
		}
		return nil
	}
	pokemon, err := decodePokemon(entry.Body)
	if err != nil {
		c.sugar.Warnf("Ignoring corrupt cache entry %s: %s", url, err)
		return nil
	}
	return &cachedPokemon{entry: entry, pokemon: pokemon}
}

func (c *Client) writeCache(ctx context.Context, url string, entry *cache.Entry) {
	if err := c.store.Put(ctx, url, entry); err != nil {
		c.sugar.Warnf("Failed to write cache entry %s: %s", url, err)
	}
}

// GetPokemon fetches a single pokemon. The lifetime is sent upstream as a
// max-age directive and, with a cache configured, decides whether a stored
// response may be reused. A zero lifetime always goes to the upstream.
func (c *Client) GetPokemon(ctx context.Context, id int32, lifetime time.Duration) (*PokemonResponse, error) {
	url := c.pokemonUrl(id)
	useCache := c.store != nil && lifetime > 0
	var cached *cachedPokemon
	if useCache {
		cached = c.readCache(ctx, url)
		if cached != nil && cached.entry.Fresh(time.Now(), lifetime) {
			c.sugar.Debugf("Serving Pokemon %d from cache", id)
			return cached.pokemon, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "max-age="+strconv.FormatInt(int64(lifetime/time.Second), 10))
	if cached != nil && cached.entry.ETag != "" {
		req.Header.Set("If-None-Match", cached.entry.ETag)
	}

	c.sugar.Debugf("GET %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "pokeapi request failed"), "pokemon_id", id)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		cached.entry.FetchedAt = time.Now()
		c.writeCache(ctx, url, cached.entry)
		return cached.pokemon, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fetchFailed(id, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read pokeapi response"), "pokemon_id", id)
	}
	pokemon, err := decodePokemon(body)
	if err != nil {
		return nil, errors.Join(ErrMalformedResponse, zerr.With(err, "pokemon_id", id))
	}
	if useCache {
		c.writeCache(ctx, url, &cache.Entry{
			Body:      body,
			ETag:      resp.Header.Get("ETag"),
			FetchedAt: time.Now(),
		})
	}
	return pokemon, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

func fetchFailed(id int32, resp *http.Response) error {
	return zerr.With(
		zerr.With(zerr.Wrap(ErrFetchFailed, statusText(resp)), "pokemon_id", id),
		"status_code", resp.StatusCode)
}
