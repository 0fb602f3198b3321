package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server/models"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRoleStore satisfies resourceStore without a database so the
// route wiring and status mapping can be tested in isolation
type memoryRoleStore struct {
	roles  []gateway.Role
	nextId int64
}

func newMemoryRoleStore(names ...string) *memoryRoleStore {
	store := &memoryRoleStore{nextId: 1}
	for _, name := range names {
		store.roles = append(store.roles, gateway.Role{Id: store.nextId, Name: name})
		store.nextId++
	}
	return store
}

func (s *memoryRoleStore) List(skip, limit int) ([]gateway.Role, error) {
	page := []gateway.Role{}
	for i := skip; i < len(s.roles) && len(page) < limit; i++ {
		page = append(page, s.roles[i])
	}
	return page, nil
}

func (s *memoryRoleStore) Get(id int64) (*gateway.Role, error) {
	for _, role := range s.roles {
		if role.Id == id {
			return &role, nil
		}
	}
	return nil, fmt.Errorf("failed to find roles[%v]: %w", id, models.ErrorNotFound)
}

func (s *memoryRoleStore) Create(p models.Payload) (*gateway.Role, error) {
	name, isSet, err := p.GetString("name")
	if err != nil {
		return nil, err
	}
	if !isSet || name == nil || *name == "" {
		return nil, fmt.Errorf("field[name] is required: %w", models.ErrorInvalidInput)
	}
	for _, role := range s.roles {
		if role.Name == *name {
			return nil, fmt.Errorf("roles[%s] already exists: %w", *name, models.ErrorDuplicateEntry)
		}
	}
	role := gateway.Role{Id: s.nextId, Name: *name}
	s.nextId++
	s.roles = append(s.roles, role)
	return &role, nil
}

func (s *memoryRoleStore) Update(id int64, p models.Payload) (*gateway.Role, error) {
	name, isSet, err := p.GetString("name")
	if err != nil {
		return nil, err
	}
	for i, role := range s.roles {
		if role.Id != id {
			continue
		}
		if isSet && name != nil {
			s.roles[i].Name = *name
		}
		return &s.roles[i], nil
	}
	return nil, fmt.Errorf("failed to find roles[%v]: %w", id, models.ErrorNotFound)
}

func (s *memoryRoleStore) Delete(id int64) error {
	for i, role := range s.roles {
		if role.Id == id {
			s.roles = slices.Delete(s.roles, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("failed to find roles[%v]: %w", id, models.ErrorNotFound)
}

func newResourceTestRouter(store *memoryRoleStore) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = getNotFoundHandler()
	registerResourceRoutes(RouteRegistrationOpts{
		Router:      router,
		ServiceLogs: common.GetNoopServiceLog(),
	}, gateway.Roles, store)
	return router
}

func executeRequest(router *mux.Router, method string, target string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	request := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeDetail(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response httpError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response.Detail
}

func TestResourceListHandler(t *testing.T) {
	router := newResourceTestRouter(newMemoryRoleStore("admin", "analyst", "responder"))

	recorder := executeRequest(router, http.MethodGet, "/roles/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	var roles []gateway.Role
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &roles))
	require.Len(t, roles, 3)
	assert.Equal(t, "admin", roles[0].Name)

	recorder = executeRequest(router, http.MethodGet, "/roles/?skip=2&limit=2", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &roles))
	require.Len(t, roles, 1)
	assert.Equal(t, "responder", roles[0].Name)

	recorder = executeRequest(router, http.MethodGet, "/roles/?skip=-1", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "cannot be negative")

	recorder = executeRequest(router, http.MethodGet, "/roles/?limit=many", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestResourceGetHandler(t *testing.T) {
	router := newResourceTestRouter(newMemoryRoleStore("admin"))

	recorder := executeRequest(router, http.MethodGet, "/roles/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var role gateway.Role
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &role))
	assert.Equal(t, gateway.Role{Id: 1, Name: "admin"}, role)

	recorder = executeRequest(router, http.MethodGet, "/roles/99", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "roles[99]")

	recorder = executeRequest(router, http.MethodGet, "/roles/one", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestResourceCreateHandler(t *testing.T) {
	store := newMemoryRoleStore("admin")
	router := newResourceTestRouter(store)

	recorder := executeRequest(router, http.MethodPost, "/roles/", `{"name": "analyst"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var role gateway.Role
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &role))
	assert.Equal(t, gateway.Role{Id: 2, Name: "analyst"}, role)

	recorder = executeRequest(router, http.MethodPost, "/roles/", `{"name": "analyst"}`)
	require.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "already exists")

	recorder = executeRequest(router, http.MethodPost, "/roles/", `{}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "field[name] is required")

	recorder = executeRequest(router, http.MethodPost, "/roles/", `{"name": `)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "failed to parse request body")
}

func TestResourceUpdateHandler(t *testing.T) {
	store := newMemoryRoleStore("admin", "analyst")
	router := newResourceTestRouter(store)

	recorder := executeRequest(router, http.MethodPatch, "/roles/2", `{"name": "responder"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	var role gateway.Role
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &role))
	assert.Equal(t, gateway.Role{Id: 2, Name: "responder"}, role)
	assert.Equal(t, "admin", store.roles[0].Name)

	// an empty patch changes nothing
	recorder = executeRequest(router, http.MethodPatch, "/roles/2", `{}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &role))
	assert.Equal(t, "responder", role.Name)

	recorder = executeRequest(router, http.MethodPatch, "/roles/99", `{"name": "x"}`)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestResourceDeleteHandler(t *testing.T) {
	store := newMemoryRoleStore("admin", "analyst")
	router := newResourceTestRouter(store)

	recorder := executeRequest(router, http.MethodDelete, "/roles/2", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
	require.Len(t, store.roles, 1)

	// a repeated delete is a 404, not a silent no-op
	recorder = executeRequest(router, http.MethodDelete, "/roles/2", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "roles[2]")
}

func TestUnknownEndpointReturnsDetail(t *testing.T) {
	router := newResourceTestRouter(newMemoryRoleStore())

	recorder := executeRequest(router, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "endpoint[/nope] not found", decodeDetail(t, recorder))
}
