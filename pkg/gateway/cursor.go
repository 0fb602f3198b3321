package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

func NewCursor[T Entity](client *Client, schema Schema) *Cursor[T] {
	return &Cursor[T]{
		client: client,
		schema: schema,
	}
}

// Cursor materialises at most one window of a resource's list at a time.
// Every load replaces the window wholesale; there is no incremental
// merging. Loads are tagged with a monotonically increasing sequence
// number and a response that is no longer the latest issued is discarded,
// so a slow page can never overwrite a newer one
type Cursor[T Entity] struct {
	client *Client
	schema Schema

	mutex     sync.Mutex
	items     []T
	offset    int
	hasMore   bool
	latestSeq uint64
}

// Load fetches the window [offset, offset+pageSize). On failure the
// current window is left untouched and no retry is attempted
func (c *Cursor[T]) Load(ctx context.Context, offset int) error {
	if offset < 0 {
		offset = 0
	}
	c.mutex.Lock()
	c.latestSeq++
	seq := c.latestSeq
	c.mutex.Unlock()

	query := url.Values{}
	query.Set("skip", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(c.schema.PageSize))
	var page []T
	err := c.client.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   c.schema.ListPath(),
		Query:  query,
	}, &page)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if seq != c.latestSeq {
		return ErrorSuperseded
	}
	if err != nil {
		return fmt.Errorf("failed to load %s window at offset[%v]: %w", c.schema.Name, offset, err)
	}
	c.items = page
	c.offset = offset
	// a heuristic: a collection whose size is an exact multiple of the
	// page size reports one more page than exists
	c.hasMore = len(page) == c.schema.PageSize
	return nil
}

// Next advances one window; a no-op when the current window reported no
// further items
func (c *Cursor[T]) Next(ctx context.Context) error {
	c.mutex.Lock()
	hasMore := c.hasMore
	offset := c.offset
	c.mutex.Unlock()
	if !hasMore {
		return nil
	}
	return c.Load(ctx, offset+c.schema.PageSize)
}

// Prev steps back one window; a no-op at the start of the list
func (c *Cursor[T]) Prev(ctx context.Context) error {
	c.mutex.Lock()
	offset := c.offset
	c.mutex.Unlock()
	if offset <= 0 {
		return nil
	}
	return c.Load(ctx, max(offset-c.schema.PageSize, 0))
}

// Items returns a copy of the current window
func (c *Cursor[T]) Items() []T {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cursor[T]) Offset() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.offset
}

func (c *Cursor[T]) HasMore() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hasMore
}

func (c *Cursor[T]) PageSize() int {
	return c.schema.PageSize
}

func (c *Cursor[T]) Schema() Schema {
	return c.schema
}

// append adds a freshly created entity to the window, even when that
// grows the window beyond the page size
func (c *Cursor[T]) append(entity T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = append(c.items, entity)
}

// replace swaps the entity with a matching id in place; entities with
// other ids are untouched
func (c *Cursor[T]) replace(entity T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i, item := range c.items {
		if item.EntityId() == entity.EntityId() {
			c.items[i] = entity
			return
		}
	}
}

// remove drops the entity with a matching id from the window
func (c *Cursor[T]) remove(id int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i, item := range c.items {
		if item.EntityId() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
