package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CommonHttpEndpointsOpts struct {
	Router          *mux.Router
	ServiceLogs     chan<- ServiceLog
	LivenessChecks  []func() error
	ReadinessChecks []func() error
}

func RegisterCommonHttpEndpoints(opts CommonHttpEndpointsOpts) {
	opts.Router.HandleFunc("/healthz", getProbeHandler(opts.LivenessChecks)).Methods(http.MethodGet)
	opts.Router.HandleFunc("/readyz", getProbeHandler(opts.ReadinessChecks)).Methods(http.MethodGet)
	opts.Router.Handle("/metrics", promhttp.Handler())
}

type probeOutput struct {
	Status string  `json:"status"`
	Detail *string `json:"detail,omitempty"`
}

func getProbeHandler(checks []func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issues := []error{}
		for _, check := range checks {
			if err := check(); err != nil {
				issues = append(issues, err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if len(issues) > 0 {
			detail := errors.Join(issues...).Error()
			res, _ := json.Marshal(probeOutput{Status: "unavailable", Detail: &detail})
			w.WriteHeader(http.StatusInternalServerError)
			w.Write(res)
			return
		}
		res, _ := json.Marshal(probeOutput{Status: "ok"})
		w.WriteHeader(http.StatusOK)
		w.Write(res)
	}
}
