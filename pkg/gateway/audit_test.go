package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditorRecordDoesNotBlockTheCaller(t *testing.T) {
	writeArrived := make(chan struct{})
	releaseWrite := make(chan struct{})
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		close(writeArrived)
		<-releaseWrite
		w.WriteHeader(http.StatusCreated)
	}
	server := httptest.NewServer(gateway)
	defer server.Close()
	auditor := NewAuditor(newTestClient(t, server.URL))

	// returns while the write is still in flight
	auditor.Record("create", "assets", 3, 7)
	<-writeArrived
	close(releaseWrite)
	auditor.Wait()

	requests := gateway.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, AuditLogs.ListPath(), requests[0].Path)
	var record auditRecord
	require.NoError(t, json.Unmarshal(requests[0].Body, &record))
	assert.Equal(t, auditRecord{
		Action:     "create",
		TargetType: "assets",
		TargetId:   3,
		UserId:     7,
	}, record)
}

func TestAuditorSwallowsWriteFailures(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	server := httptest.NewServer(gateway)
	defer server.Close()
	auditor := NewAuditor(newTestClient(t, server.URL))

	auditor.Record("update", "rules", 1, 7)
	auditor.Record("update", "rules", 2, 7)
	auditor.Wait()

	// both writes were attempted even though neither landed
	assert.Len(t, gateway.Requests(), 2)
}
