package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server/models"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
	"github.com/gorilla/mux"
)

type RouteRegistrationOpts struct {
	Router      *mux.Router
	ServiceLogs chan<- common.ServiceLog
}

// resourceStore is the contract every resource store satisfies; the
// handlers are built once over this interface and stamped out per
// resource
type resourceStore[T gateway.Entity] interface {
	List(skip, limit int) ([]T, error)
	Get(id int64) (*T, error)
	Create(p models.Payload) (*T, error)
	Update(id int64, p models.Payload) (*T, error)
	Delete(id int64) error
}

func registerResourceRoutes[T gateway.Entity](opts RouteRegistrationOpts, schema gateway.Schema, store resourceStore[T]) {
	listPath := schema.ListPath()
	itemPath := strings.TrimSuffix(listPath, "/") + "/{id}"

	opts.Router.HandleFunc(listPath, getListResourceHandler(schema, store)).Methods(http.MethodGet)
	opts.Router.HandleFunc(listPath, getCreateResourceHandler(schema, store)).Methods(http.MethodPost)
	opts.Router.HandleFunc(itemPath, getGetResourceHandler(schema, store)).Methods(http.MethodGet)
	opts.Router.HandleFunc(itemPath, getUpdateResourceHandler(schema, store)).Methods(http.MethodPatch)
	opts.Router.HandleFunc(itemPath, getDeleteResourceHandler(schema, store)).Methods(http.MethodDelete)

	opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "registered resource[%s] at path[%s]", schema.Name, listPath)
}

func getListResourceHandler[T gateway.Entity](schema gateway.Schema, store resourceStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, err := getQueryInt(r, "skip", 0)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		limit, err := getQueryInt(r, "limit", schema.PageSize)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		entities, err := store.List(skip, limit)
		if err != nil {
			sendStoreError(w, r, err)
			return
		}
		sendJson(w, r, http.StatusOK, entities)
	}
}

func getGetResourceHandler[T gateway.Entity](schema gateway.Schema, store resourceStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := getPathId(r)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		entity, err := store.Get(id)
		if err != nil {
			sendStoreError(w, r, err)
			return
		}
		sendJson(w, r, http.StatusOK, entity)
	}
}

func getCreateResourceHandler[T gateway.Entity](schema gateway.Schema, store resourceStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := getRequestPayload(r)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		entity, err := store.Create(payload)
		if err != nil {
			sendStoreError(w, r, err)
			return
		}
		invalidateCachedAggregates(r, schema)
		sendJson(w, r, http.StatusCreated, entity)
	}
}

func getUpdateResourceHandler[T gateway.Entity](schema gateway.Schema, store resourceStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := getPathId(r)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		payload, err := getRequestPayload(r)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		entity, err := store.Update(id, payload)
		if err != nil {
			sendStoreError(w, r, err)
			return
		}
		invalidateCachedAggregates(r, schema)
		sendJson(w, r, http.StatusOK, entity)
	}
}

func getDeleteResourceHandler[T gateway.Entity](schema gateway.Schema, store resourceStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := getPathId(r)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := store.Delete(id); err != nil {
			sendStoreError(w, r, err)
			return
		}
		invalidateCachedAggregates(r, schema)
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPathId(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse id[%s]: %w", vars["id"], ErrorInvalidResourceId)
	}
	return id, nil
}

func getQueryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse query parameter[%s]: %s", key, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("query parameter[%s] cannot be negative", key)
	}
	return value, nil
}

func getRequestPayload(r *http.Request) (models.Payload, error) {
	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %s", err)
	}
	payload := models.Payload{}
	decoder := json.NewDecoder(bytes.NewReader(requestBody))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse request body: %s", err)
	}
	return payload, nil
}
