package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is one request captured by the fake gateway, body
// included, so tests can assert on what actually went over the wire
type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

type fakeGateway struct {
	mutex    sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mutex.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
	})
	f.mutex.Unlock()
	f.handler(w, r)
}

func (f *fakeGateway) Requests() []recordedRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	requests := make([]recordedRequest, len(f.requests))
	copy(requests, f.requests)
	return requests
}

// auditWrites returns the audit records posted to the audit collection,
// in arrival order
func (f *fakeGateway) auditWrites(t *testing.T) []auditRecord {
	t.Helper()
	records := []auditRecord{}
	for _, request := range f.Requests() {
		if request.Method == http.MethodPost && request.Path == AuditLogs.ListPath() {
			var record auditRecord
			require.NoError(t, json.Unmarshal(request.Body, &record))
			records = append(records, record)
		}
	}
	return records
}

func newSeededMutator(t *testing.T, gateway *fakeGateway, opts NewMutatorOpts[Role]) (*Mutator[Role], *Cursor[Role], func()) {
	t.Helper()
	server := httptest.NewServer(gateway)
	client := newTestClient(t, server.URL)
	cursor := NewCursor[Role](client, Roles)
	opts.Client = client
	opts.Cursor = cursor
	if opts.Auditor == nil {
		opts.Auditor = NewAuditor(client)
	}
	return NewMutator(opts), cursor, server.Close
}

func TestMutatorCreateAppendsAndAudits(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]Role{{Id: 1, Name: "admin"}})
		case r.Method == http.MethodPost && r.URL.Path == Roles.ListPath():
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Role{Id: 42, Name: "analyst"})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}
	mutator, cursor, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{ActorId: 7})
	defer closer()
	ctx := context.Background()
	require.NoError(t, cursor.Load(ctx, 0))

	created, err := mutator.Create(ctx, map[string]any{"name": "analyst"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.Id)

	// the gateway's response is appended, not the submitted payload
	items := cursor.Items()
	require.Len(t, items, 2)
	assert.Equal(t, Role{Id: 42, Name: "analyst"}, items[1])

	mutator.auditor.Wait()
	audits := gateway.auditWrites(t)
	require.Len(t, audits, 1)
	assert.Equal(t, auditRecord{
		Action:     "create",
		TargetType: "roles",
		TargetId:   42,
		UserId:     7,
	}, audits[0])
}

func TestMutatorUpdateReplacesOnlyMatchingId(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(rolesPage(1, 3))
		case r.Method == http.MethodPatch && r.URL.Path == Roles.ItemPath(2):
			json.NewEncoder(w).Encode(Role{Id: 2, Name: "renamed"})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}
	mutator, cursor, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{ActorId: 7})
	defer closer()
	ctx := context.Background()
	require.NoError(t, cursor.Load(ctx, 0))

	updated, err := mutator.Update(ctx, 2, map[string]any{"name": "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	items := cursor.Items()
	require.Len(t, items, 3)
	assert.Equal(t, Role{Id: 1, Name: "role-1"}, items[0])
	assert.Equal(t, Role{Id: 2, Name: "renamed"}, items[1])
	assert.Equal(t, Role{Id: 3, Name: "role-3"}, items[2])

	mutator.auditor.Wait()
	audits := gateway.auditWrites(t)
	require.Len(t, audits, 1)
	assert.Equal(t, "update", audits[0].Action)
}

func TestMutatorDeleteIsAuditedAsUpdate(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(rolesPage(1, 3))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}
	mutator, cursor, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{ActorId: 7})
	defer closer()
	ctx := context.Background()
	require.NoError(t, cursor.Load(ctx, 0))

	require.NoError(t, mutator.Delete(ctx, 2))

	items := cursor.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Id)
	assert.Equal(t, int64(3), items[1].Id)

	// deletions are filed under the update action for the sake of the
	// existing audit consumers
	mutator.auditor.Wait()
	audits := gateway.auditWrites(t)
	require.Len(t, audits, 1)
	assert.Equal(t, auditRecord{
		Action:     "update",
		TargetType: "roles",
		TargetId:   2,
		UserId:     7,
	}, audits[0])
}

func TestMutatorCustomVerbsOverrideDeleteAction(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	mutator, _, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{
		Verbs: &AuditVerbs{Create: "create", Update: "update", Delete: "delete"},
	})
	defer closer()

	require.NoError(t, mutator.Delete(context.Background(), 2))

	mutator.auditor.Wait()
	audits := gateway.auditWrites(t)
	require.Len(t, audits, 1)
	assert.Equal(t, "delete", audits[0].Action)
}

func TestMutatorDeclinedConfirmationIssuesNoRequest(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	decline := func(context.Context, string) (bool, error) {
		return false, nil
	}
	mutator, _, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{Confirm: decline})
	defer closer()
	ctx := context.Background()

	_, err := mutator.Create(ctx, map[string]any{"name": "analyst"})
	require.ErrorIs(t, err, ErrorCancelled)
	_, err = mutator.Update(ctx, 1, map[string]any{"name": "analyst"})
	require.ErrorIs(t, err, ErrorCancelled)
	require.ErrorIs(t, mutator.Delete(ctx, 1), ErrorCancelled)

	mutator.auditor.Wait()
	assert.Empty(t, gateway.Requests())
}

func TestMutatorFailedMutationLeavesWindowUntouched(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(rolesPage(1, 3))
		default:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"detail": "roles[admin] already exists"})
		}
	}
	mutator, cursor, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{})
	defer closer()
	ctx := context.Background()
	require.NoError(t, cursor.Load(ctx, 0))

	_, err := mutator.Create(ctx, map[string]any{"name": "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roles[admin] already exists")
	assert.Len(t, cursor.Items(), 3)

	mutator.auditor.Wait()
	assert.Empty(t, gateway.auditWrites(t))
}

func TestMutatorRepeatedDeleteSurfacesFailure(t *testing.T) {
	gateway := &fakeGateway{}
	deleted := false
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(rolesPage(1, 3))
		case http.MethodDelete:
			if deleted {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"detail": "roles[2] could not be found"})
				return
			}
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}
	mutator, cursor, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{})
	defer closer()
	ctx := context.Background()
	require.NoError(t, cursor.Load(ctx, 0))

	require.NoError(t, mutator.Delete(ctx, 2))

	err := mutator.Delete(ctx, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roles[2] could not be found")
	var apiError *ApiError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusNotFound, apiError.StatusCode)
}
