package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftPayload(t *testing.T) {
	fields := []FieldSpec{
		{Name: "name", Kind: FieldString, Required: true},
		{Name: "weight", Kind: FieldFloat},
		{Name: "asset_id", Kind: FieldInteger},
		{Name: "enabled", Kind: FieldBoolean},
		{Name: "conditions", Kind: FieldJson},
	}
	tests := []struct {
		name            string
		values          map[string]string
		expectedPayload map[string]any
		expectedError   string
	}{
		{
			name:   "coerces each kind",
			values: map[string]string{"name": "probe", "weight": "0.5", "asset_id": "3", "enabled": "true", "conditions": `[{"field":"message"}]`},
			expectedPayload: map[string]any{
				"name":       "probe",
				"weight":     0.5,
				"asset_id":   int64(3),
				"enabled":    true,
				"conditions": json.RawMessage(`[{"field":"message"}]`),
			},
		},
		{
			name:   "empty optional numerics become explicit nulls",
			values: map[string]string{"name": "probe"},
			expectedPayload: map[string]any{
				"name":     "probe",
				"weight":   nil,
				"asset_id": nil,
			},
		},
		{
			name:   "boolean accepts the form vocabulary",
			values: map[string]string{"name": "probe", "enabled": "YES"},
			expectedPayload: map[string]any{
				"name":     "probe",
				"weight":   nil,
				"asset_id": nil,
				"enabled":  true,
			},
		},
		{
			name:   "boolean no",
			values: map[string]string{"name": "probe", "enabled": "no"},
			expectedPayload: map[string]any{
				"name":     "probe",
				"weight":   nil,
				"asset_id": nil,
				"enabled":  false,
			},
		},
		{
			name:          "empty required field",
			values:        map[string]string{"asset_id": "3"},
			expectedError: "field[name] is required",
		},
		{
			name:          "malformed integer",
			values:        map[string]string{"name": "probe", "asset_id": "three"},
			expectedError: "field[asset_id] should be an integer",
		},
		{
			name:          "malformed boolean",
			values:        map[string]string{"name": "probe", "enabled": "yeah"},
			expectedError: "field[enabled] should be a boolean",
		},
		{
			name:          "malformed json",
			values:        map[string]string{"name": "probe", "conditions": "[{"},
			expectedError: "field[conditions] is not valid json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := newDraft(fields, nil)
			for name, value := range tt.values {
				require.NoError(t, draft.Set(name, value))
			}
			payload, err := draft.Payload()
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}

func TestDraftSetUnknownField(t *testing.T) {
	draft := newDraft([]FieldSpec{{Name: "name", Kind: FieldString}}, nil)
	require.Error(t, draft.Set("nmae", "typo"))
	assert.Equal(t, "", draft.Get("name"))
}

func TestEditorLifecycle(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Role{Id: 5, Name: "responder"})
	}
	mutator, _, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{})
	defer closer()
	editor := NewEditor(FieldSpecsFor(Roles), mutator)

	assert.Equal(t, EditorClosed, editor.State())
	_, err := editor.Submit(context.Background())
	require.ErrorIs(t, err, ErrorNoDraft)

	draft := editor.Open()
	assert.Equal(t, EditorEditingNew, editor.State())
	assert.Nil(t, draft.Id())

	editor.Cancel()
	assert.Equal(t, EditorClosed, editor.State())
	assert.Empty(t, gateway.Requests())

	draft = editor.Open()
	require.NoError(t, draft.Set("name", "responder"))
	created, err := editor.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.Id)
	assert.Equal(t, EditorClosed, editor.State())

	requests := gateway.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, Roles.ListPath(), requests[0].Path)
}

func TestEditorOpenExistingSeedsDraft(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Rule{Id: 9, Name: "brute force v2", Severity: SeverityHigh, Enabled: true})
	}
	server := httptest.NewServer(gateway)
	defer server.Close()
	client := newTestClient(t, server.URL)
	mutator := NewMutator(NewMutatorOpts[Rule]{
		Client: client,
		Cursor: NewCursor[Rule](client, Rules),
	})
	editor := NewEditor(FieldSpecsFor(Rules), mutator)

	rule := Rule{
		Id:          9,
		Name:        "brute force",
		Description: "",
		Severity:    SeverityHigh,
		Enabled:     true,
		Conditions: []RuleCondition{
			{Id: 1, Field: "event_type", Operator: OperatorEq, Value: "auth.failure"},
		},
	}
	draft, err := editor.OpenExisting(rule)
	require.NoError(t, err)
	assert.Equal(t, EditorEditingExisting, editor.State())
	require.NotNil(t, draft.Id())
	assert.Equal(t, int64(9), *draft.Id())
	assert.Equal(t, "brute force", draft.Get("name"))
	assert.Equal(t, "high", draft.Get("severity"))
	assert.Equal(t, "true", draft.Get("enabled"))
	assert.JSONEq(t, `[{"id":1,"field":"event_type","operator":"eq","value":"auth.failure"}]`, draft.Get("conditions"))

	// edits stay on the draft until submitted
	require.NoError(t, draft.Set("name", "brute force v2"))
	assert.Equal(t, "brute force", rule.Name)

	_, err = editor.Submit(context.Background())
	require.NoError(t, err)
	requests := gateway.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPatch, requests[0].Method)
	assert.Equal(t, Rules.ItemPath(9), requests[0].Path)
}

func TestEditorResubmitsFullConditionsList(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Rule{Id: 9})
	}
	server := httptest.NewServer(gateway)
	defer server.Close()
	client := newTestClient(t, server.URL)
	mutator := NewMutator(NewMutatorOpts[Rule]{
		Client: client,
		Cursor: NewCursor[Rule](client, Rules),
	})
	editor := NewEditor(FieldSpecsFor(Rules), mutator)

	rule := Rule{
		Id:       9,
		Name:     "brute force",
		Severity: SeverityHigh,
		Enabled:  true,
		Conditions: []RuleCondition{
			{Id: 1, Field: "event_type", Operator: OperatorEq, Value: "auth.failure"},
		},
	}
	draft, err := editor.OpenExisting(rule)
	require.NoError(t, err)

	// the whole membership is resubmitted: the kept clause carries its
	// id, the new clause has none
	require.NoError(t, draft.Set("conditions", `[
		{"id": 1, "field": "event_type", "operator": "eq", "value": "auth.failure"},
		{"field": "severity", "operator": "gte", "value": "high"}
	]`))
	_, err = editor.Submit(context.Background())
	require.NoError(t, err)

	requests := gateway.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPatch, requests[0].Method)
	var payload struct {
		Conditions []RuleCondition `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal(requests[0].Body, &payload))
	require.Len(t, payload.Conditions, 2)
	assert.Equal(t, int64(1), payload.Conditions[0].Id)
	assert.Zero(t, payload.Conditions[1].Id)
	assert.Equal(t, "severity", payload.Conditions[1].Field)
}

func TestEditorInvalidDraftBlocksBeforeAnyRequest(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	mutator, _, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{})
	defer closer()
	editor := NewEditor([]FieldSpec{
		{Name: "name", Kind: FieldString, Required: true},
		{Name: "conditions", Kind: FieldJson},
	}, mutator)

	draft := editor.Open()
	require.NoError(t, draft.Set("name", "probe"))
	require.NoError(t, draft.Set("conditions", "{not json"))

	_, err := editor.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field[conditions] is not valid json")
	assert.Empty(t, gateway.Requests())

	// the draft survives the failure so the value can be corrected
	assert.Equal(t, EditorEditingNew, editor.State())
	require.NoError(t, draft.Set("conditions", "[]"))
	_, err = editor.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EditorClosed, editor.State())
}

func TestEditorDeclinedConfirmationKeepsDraft(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	decline := func(context.Context, string) (bool, error) {
		return false, nil
	}
	mutator, _, closer := newSeededMutator(t, gateway, NewMutatorOpts[Role]{Confirm: decline})
	defer closer()
	editor := NewEditor(FieldSpecsFor(Roles), mutator)

	draft := editor.Open()
	require.NoError(t, draft.Set("name", "responder"))
	_, err := editor.Submit(context.Background())
	require.ErrorIs(t, err, ErrorCancelled)
	assert.Equal(t, EditorEditingNew, editor.State())
	assert.Equal(t, "responder", editor.Draft().Get("name"))
}
