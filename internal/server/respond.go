package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server/models"
)

// httpError is the only error shape this surface emits; clients key off
// the "detail" field regardless of status code
type httpError struct {
	Detail string `json:"detail"`
}

func sendJson(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	res, err := json.Marshal(data)
	if err != nil {
		sendDetail(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to serialize response: %s", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(res)
}

func sendDetail(w http.ResponseWriter, r *http.Request, statusCode int, detail string) {
	log := common.GetRequestLogger(r)
	log(common.LogLevelError, detail)
	res, _ := json.Marshal(httpError{Detail: detail})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(res)
}

// sendStoreError maps the model sentinels onto the status codes the
// resource surface promises
func sendStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrorNotFound):
		sendDetail(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrorInvalidInput):
		sendDetail(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrorDuplicateEntry):
		sendDetail(w, r, http.StatusConflict, err.Error())
	default:
		sendDetail(w, r, http.StatusInternalServerError, err.Error())
	}
}

func getNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, _ := json.Marshal(httpError{Detail: fmt.Sprintf("endpoint[%s] not found", r.URL.Path)})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write(res)
	}
}
