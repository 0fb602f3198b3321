package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, gatewayUrl string) *Client {
	t.Helper()
	client, err := NewClient(NewClientOpts{
		GatewayUrl: gatewayUrl,
		Id:         "test",
	})
	require.NoError(t, err)
	return client
}

// rolesPage returns sequentially numbered roles, the way a gateway
// backed by an auto-increment id would
func rolesPage(from int, count int) []Role {
	page := []Role{}
	for i := 0; i < count; i++ {
		id := int64(from + i)
		page = append(page, Role{Id: id, Name: fmt.Sprintf("role-%v", id)})
	}
	return page
}

func TestCursorPaging(t *testing.T) {
	totalRoles := 14
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		assert.Equal(t, Roles.ListPath(), r.URL.Path)
		skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
		require.NoError(t, err)
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		require.NoError(t, err)
		assert.Equal(t, Roles.PageSize, limit)
		count := min(limit, totalRoles-skip)
		json.NewEncoder(w).Encode(rolesPage(skip+1, count))
	}))
	defer server.Close()

	cursor := NewCursor[Role](newTestClient(t, server.URL), Roles)
	ctx := context.Background()

	require.NoError(t, cursor.Load(ctx, 0))
	assert.Len(t, cursor.Items(), 10)
	assert.Equal(t, 0, cursor.Offset())
	assert.True(t, cursor.HasMore())

	require.NoError(t, cursor.Next(ctx))
	assert.Len(t, cursor.Items(), 4)
	assert.Equal(t, 10, cursor.Offset())
	assert.Equal(t, int64(11), cursor.Items()[0].Id)
	assert.False(t, cursor.HasMore())

	// a short window reported no further items, so advancing again
	// should not touch the gateway
	requestsSoFar := requestCount.Load()
	require.NoError(t, cursor.Next(ctx))
	assert.Equal(t, requestsSoFar, requestCount.Load())
	assert.Equal(t, 10, cursor.Offset())

	require.NoError(t, cursor.Prev(ctx))
	assert.Equal(t, 0, cursor.Offset())
	assert.Equal(t, int64(1), cursor.Items()[0].Id)

	// already at the start of the list
	requestsSoFar = requestCount.Load()
	require.NoError(t, cursor.Prev(ctx))
	assert.Equal(t, requestsSoFar, requestCount.Load())
}

func TestCursorHasMoreAtExactMultiple(t *testing.T) {
	totalRoles := 10
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		count := max(min(Roles.PageSize, totalRoles-skip), 0)
		json.NewEncoder(w).Encode(rolesPage(skip+1, count))
	}))
	defer server.Close()

	cursor := NewCursor[Role](newTestClient(t, server.URL), Roles)
	ctx := context.Background()

	// a collection whose size is an exact multiple of the page size
	// reports one more page than exists
	require.NoError(t, cursor.Load(ctx, 0))
	assert.True(t, cursor.HasMore())

	// the phantom page resolves as empty
	require.NoError(t, cursor.Next(ctx))
	assert.Empty(t, cursor.Items())
	assert.Equal(t, 10, cursor.Offset())
	assert.False(t, cursor.HasMore())
}

func TestCursorFailedLoadKeepsWindow(t *testing.T) {
	var shouldFail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldFail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "database gone"})
			return
		}
		json.NewEncoder(w).Encode(rolesPage(1, 3))
	}))
	defer server.Close()

	cursor := NewCursor[Role](newTestClient(t, server.URL), Roles)
	ctx := context.Background()

	require.NoError(t, cursor.Load(ctx, 0))
	require.Len(t, cursor.Items(), 3)

	shouldFail.Store(true)
	err := cursor.Load(ctx, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database gone")
	assert.Len(t, cursor.Items(), 3)
	assert.Equal(t, 0, cursor.Offset())
}

func TestCursorDiscardsSupersededLoad(t *testing.T) {
	slowRequestArrived := make(chan struct{})
	releaseSlowRequest := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		if skip == 0 {
			close(slowRequestArrived)
			<-releaseSlowRequest
		}
		json.NewEncoder(w).Encode(rolesPage(skip+1, 5))
	}))
	defer server.Close()

	cursor := NewCursor[Role](newTestClient(t, server.URL), Roles)
	ctx := context.Background()

	slowLoadDone := make(chan error, 1)
	go func() {
		slowLoadDone <- cursor.Load(ctx, 0)
	}()
	<-slowRequestArrived

	// a newer load resolves while the first is still in flight
	require.NoError(t, cursor.Load(ctx, 10))
	close(releaseSlowRequest)

	err := <-slowLoadDone
	require.ErrorIs(t, err, ErrorSuperseded)
	assert.Equal(t, 10, cursor.Offset())
	require.NotEmpty(t, cursor.Items())
	assert.Equal(t, int64(11), cursor.Items()[0].Id)
}
