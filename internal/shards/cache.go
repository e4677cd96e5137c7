package shards

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

// Cache keeps the boundary table and every shard fetched so far. Fetched
// bytes are never evicted or modified. A Cache is safe for concurrent use.
type Cache struct {
	mutex sync.Mutex

	source     Source
	boundaries []Fingerprint
	shards     map[int][]byte

	hits   int
	misses int
	bytes  uint64
}

func NewCache(source Source) *Cache {
	return &Cache{
		source: source,
		shards: make(map[int][]byte),
	}
}

func (c *Cache) Source() Source {
	return c.source
}

// SetBoundaries installs an already decoded boundary table.
func (c *Cache) SetBoundaries(boundaries []Fingerprint) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.boundaries = boundaries
}

// Boundaries fetches and decodes the boundary table on first use.
func (c *Cache) Boundaries(ctx context.Context) ([]Fingerprint, Error) {
	c.mutex.Lock()
	if c.boundaries != nil {
		defer c.mutex.Unlock()
		return c.boundaries, NilError
	}
	c.mutex.Unlock()

	log.Debug().Str("source", c.source.String()).Msg("loading shard boundaries")

	b, err := c.source.Fetch(ctx, tablebase.BoundariesFile)
	if !IsNil(err) {
		return nil, err
	}
	boundaries, err := tablebase.DecodeBoundaries(b)
	if !IsNil(err) {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.boundaries == nil {
		c.boundaries = boundaries
		c.bytes += uint64(len(b))
	}

	log.Debug().
		Int("shards", len(c.boundaries)).
		Str("size", humanize.Bytes(uint64(len(b)))).
		Msg("loaded shard boundaries")

	return c.boundaries, NilError
}

func (c *Cache) cached(index int) ([]byte, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	shard, ok := c.shards[index]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return shard, ok
}

// Shard returns the bytes of shard index, fetching them on first use.
func (c *Cache) Shard(ctx context.Context, index int) ([]byte, Error) {
	if index < 0 {
		return nil, Errorf("%w: %v", ErrUnknownShard, index)
	}
	if shard, ok := c.cached(index); ok {
		log.Debug().Int("shard", index).Msg("getting shard from cache")
		return shard, NilError
	}

	path := tablebase.ShardPath(index)
	log.Debug().Int("shard", index).Str("path", path).Msg("loading shard")

	shard, err := c.source.Fetch(ctx, path)
	if !IsNil(err) {
		return nil, err
	}
	if len(shard)%tablebase.RecordWidth != 0 {
		return nil, Errorf("%w: %v has length %v", tablebase.ErrMalformedShard, path, len(shard))
	}

	log.Debug().
		Int("shard", index).
		Int("records", len(shard)/tablebase.RecordWidth).
		Str("xxhash", fmt.Sprintf("%016x", xxhash.Sum64(shard))).
		Msg("loaded shard")

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if existing, ok := c.shards[index]; ok {
		return existing, NilError
	}
	c.shards[index] = shard
	c.bytes += uint64(len(shard))
	return shard, NilError
}

// ShardIndexFor locates the shard holding f.
func (c *Cache) ShardIndexFor(ctx context.Context, f Fingerprint) (int, Error) {
	boundaries, err := c.Boundaries(ctx)
	if !IsNil(err) {
		return 0, err
	}
	return tablebase.LocateShard(f, boundaries)
}

func (c *Cache) ShardFor(ctx context.Context, f Fingerprint) ([]byte, Error) {
	index, err := c.ShardIndexFor(ctx, f)
	if !IsNil(err) {
		return nil, err
	}
	return c.Shard(ctx, index)
}

// Prefetch loads the given shards with up to workers concurrent fetches.
// onDone, if not nil, is called once per distinct shard as it arrives.
func (c *Cache) Prefetch(ctx context.Context, indices []int, workers int, onDone func(index int)) Error {
	boundaries, err := c.Boundaries(ctx)
	if !IsNil(err) {
		return err
	}

	indices = lo.Uniq(indices)
	for _, index := range indices {
		if index < 0 || index >= len(boundaries) {
			return Errorf("%w: %v of %v", ErrUnknownShard, index, len(boundaries))
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lo.Max([]int{workers, 1}))

	var doneMutex sync.Mutex
	for _, index := range indices {
		index := index
		g.Go(func() error {
			_, err := c.Shard(ctx, index)
			if !IsNil(err) {
				return err
			}
			if onDone != nil {
				doneMutex.Lock()
				defer doneMutex.Unlock()
				onDone(index)
			}
			return nil
		})
	}

	return Wrap(g.Wait())
}

type Stats struct {
	Shards int
	Hits   int
	Misses int
	Bytes  uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("shards: %v, hits: %v, misses: %v, size: %v",
		humanize.Comma(int64(s.Shards)), humanize.Comma(int64(s.Hits)), humanize.Comma(int64(s.Misses)), humanize.Bytes(s.Bytes))
}

func (c *Cache) Stats() Stats {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return Stats{
		Shards: len(c.shards),
		Hits:   c.hits,
		Misses: c.misses,
		Bytes:  c.bytes,
	}
}
