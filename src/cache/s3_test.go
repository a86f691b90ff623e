package cache_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/BielosX/wombat/poke-proxy/src/cache"
	"github.com/BielosX/wombat/poke-proxy/src/s3"
	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjectAPI keeps objects in a map keyed by bucket/key.
type fakeObjectAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string][]byte)}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	const key = "https://pokeapi.co/api/v2/pokemon/25"

	t.Run("Miss", func(t *testing.T) {
		store := cache.NewS3Store(s3.NewClientFromAPI(newFakeObjectAPI()), "bucket", "pokemon-cache/")

		_, err := store.Get(ctx, key)

		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("Put then Get", func(t *testing.T) {
		api := newFakeObjectAPI()
		store := cache.NewS3Store(s3.NewClientFromAPI(api), "bucket", "pokemon-cache/")
		entry := &cache.Entry{
			Body:      []byte(`{"id":25,"name":"pikachu","types":[]}`),
			ETag:      `"v1"`,
			FetchedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}

		require.NoError(t, store.Put(ctx, key, entry))
		got, err := store.Get(ctx, key)

		require.NoError(t, err)
		assert.JSONEq(t, string(entry.Body), string(got.Body))
		assert.Equal(t, entry.ETag, got.ETag)
		assert.True(t, entry.FetchedAt.Equal(got.FetchedAt))
		assert.Contains(t, api.objects, "bucket/pokemon-cache/https_pokeapi.co_api_v2_pokemon_25.json")
	})

	t.Run("Backend error", func(t *testing.T) {
		api := newFakeObjectAPI()
		api.getErr = errors.New("access denied")
		store := cache.NewS3Store(s3.NewClientFromAPI(api), "bucket", "")

		_, err := store.Get(ctx, key)

		require.Error(t, err)
		assert.NotErrorIs(t, err, cache.ErrNotFound)
	})
}
