package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// ConfirmFunc gates a mutation behind an asynchronous yes/no decision
// from the user; returning false aborts the mutation before any request
// is issued
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// ConfirmAlways is for non-interactive callers that gate elsewhere
func ConfirmAlways(context.Context, string) (bool, error) {
	return true, nil
}

type NewMutatorOpts[T Entity] struct {
	Client *Client
	Cursor *Cursor[T]

	// Auditor receives one record per successful mutation; optional
	Auditor *Auditor

	// Confirm gates every mutation; defaults to ConfirmAlways
	Confirm ConfirmFunc

	// ActorId is recorded as the acting user on audit records
	ActorId int64

	// Verbs overrides the audit action names; defaults to
	// DefaultAuditVerbs()
	Verbs *AuditVerbs
}

func NewMutator[T Entity](opts NewMutatorOpts[T]) *Mutator[T] {
	confirm := opts.Confirm
	if confirm == nil {
		confirm = ConfirmAlways
	}
	verbs := DefaultAuditVerbs()
	if opts.Verbs != nil {
		verbs = *opts.Verbs
	}
	return &Mutator[T]{
		client:  opts.Client,
		cursor:  opts.Cursor,
		auditor: opts.Auditor,
		confirm: confirm,
		actorId: opts.ActorId,
		verbs:   verbs,
	}
}

// Mutator performs create/update/delete round-trips for one resource and
// reconciles the cursor's window pessimistically: the window is only
// touched after the gateway reports success
type Mutator[T Entity] struct {
	client  *Client
	cursor  *Cursor[T]
	auditor *Auditor
	confirm ConfirmFunc
	actorId int64
	verbs   AuditVerbs
}

func (m *Mutator[T]) schema() Schema {
	return m.cursor.Schema()
}

// Create posts the payload and appends the returned entity to the
// current window
func (m *Mutator[T]) Create(ctx context.Context, payload map[string]any) (*T, error) {
	if err := m.gate(ctx, fmt.Sprintf("Create this %s record?", m.schema().Name)); err != nil {
		return nil, err
	}
	var created T
	if err := m.client.do(ctx, requestOpts{
		Method: http.MethodPost,
		Path:   m.schema().ListPath(),
		Body:   payload,
	}, &created); err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", m.schema().Name, err)
	}
	m.cursor.append(created)
	m.audit(m.verbs.Create, created.EntityId())
	return &created, nil
}

// Update patches the entity and replaces it in place in the window;
// entities with other ids are untouched
func (m *Mutator[T]) Update(ctx context.Context, id int64, payload map[string]any) (*T, error) {
	if err := m.gate(ctx, fmt.Sprintf("Save changes to %s record %v?", m.schema().Name, id)); err != nil {
		return nil, err
	}
	var updated T
	if err := m.client.do(ctx, requestOpts{
		Method: http.MethodPatch,
		Path:   m.schema().ItemPath(id),
		Body:   payload,
	}, &updated); err != nil {
		return nil, fmt.Errorf("failed to update %s record %v: %w", m.schema().Name, id, err)
	}
	m.cursor.replace(updated)
	m.audit(m.verbs.Update, updated.EntityId())
	return &updated, nil
}

// Delete removes the entity from the gateway and then from the window;
// deleting an id the gateway no longer knows surfaces the failure rather
// than no-opping
func (m *Mutator[T]) Delete(ctx context.Context, id int64) error {
	if err := m.gate(ctx, fmt.Sprintf("Delete %s record %v?", m.schema().Name, id)); err != nil {
		return err
	}
	if err := m.client.do(ctx, requestOpts{
		Method: http.MethodDelete,
		Path:   m.schema().ItemPath(id),
	}, nil); err != nil {
		return fmt.Errorf("failed to delete %s record %v: %w", m.schema().Name, id, err)
	}
	m.cursor.remove(id)
	m.audit(m.verbs.Delete, id)
	return nil
}

func (m *Mutator[T]) gate(ctx context.Context, prompt string) error {
	confirmed, err := m.confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to receive a confirmation: %w", err)
	}
	if !confirmed {
		return ErrorCancelled
	}
	return nil
}

func (m *Mutator[T]) audit(action string, targetId int64) {
	if m.auditor == nil {
		return
	}
	m.auditor.Record(action, m.schema().Name, targetId, m.actorId)
}
