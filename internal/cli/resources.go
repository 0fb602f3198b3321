package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

// ResourceBinding is the type-erased handle the command tree holds on
// one resource's cursor, mutator, and editor
type ResourceBinding interface {
	Schema() gateway.Schema
	Headers() []string
	Fields() []gateway.FieldSpec

	LoadPage(ctx context.Context, offset int) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Rows() [][]any
	Ids() []int64
	Items() any
	Offset() int
	HasMore() bool

	CurrentValues(id int64) (map[string]string, error)

	Create(ctx context.Context, values map[string]string) error
	Update(ctx context.Context, id int64, values map[string]string) error
	Delete(ctx context.Context, id int64) error

	// Flush blocks until queued audit writes have been attempted;
	// mutating commands defer it so short-lived processes don't exit
	// with a record still in flight
	Flush()
}

type NewResourceBindingsOpts struct {
	Client  *gateway.Client
	Auditor *gateway.Auditor
	Confirm gateway.ConfirmFunc
	ActorId int64
}

// NewResourceBindings wires a binding for every known resource, keyed
// by the resource name used on the command line
func NewResourceBindings(opts NewResourceBindingsOpts) map[string]ResourceBinding {
	return map[string]ResourceBinding{
		gateway.Users.Name: newBinding(opts, gateway.Users,
			[]string{"id", "username", "email", "active", "roles", "created at"},
			func(u gateway.User) []any {
				return []any{u.Id, u.Username, u.Email, u.IsActive, formatInt64s(u.RoleIds), formatTime(u.CreatedAt)}
			}),
		gateway.Roles.Name: newBinding(opts, gateway.Roles,
			[]string{"id", "name"},
			func(r gateway.Role) []any {
				return []any{r.Id, r.Name}
			}),
		gateway.Assets.Name: newBinding(opts, gateway.Assets,
			[]string{"id", "name", "type", "ip address", "hostname", "environment"},
			func(a gateway.Asset) []any {
				return []any{a.Id, a.Name, a.AssetType, formatStringPtr(a.IpAddress), formatStringPtr(a.Hostname), a.Environment}
			}),
		gateway.Events.Name: newBinding(opts, gateway.Events,
			[]string{"id", "timestamp", "type", "severity", "message", "asset"},
			func(e gateway.Event) []any {
				return []any{e.Id, formatTime(e.Timestamp), e.EventType, string(e.Severity), e.Message, e.AssetId}
			}),
		gateway.RawLogs.Name: newBinding(opts, gateway.RawLogs,
			[]string{"id", "event", "payload", "ingested at"},
			func(r gateway.RawLog) []any {
				return []any{r.Id, r.EventId, string(r.RawPayload), formatTime(r.IngestedAt)}
			}),
		gateway.Rules.Name: newBinding(opts, gateway.Rules,
			[]string{"id", "name", "severity", "enabled", "conditions"},
			func(r gateway.Rule) []any {
				return []any{r.Id, r.Name, string(r.Severity), r.Enabled, formatConditions(r.Conditions)}
			}),
		gateway.Alerts.Name: newBinding(opts, gateway.Alerts,
			[]string{"id", "created at", "severity", "status", "rule", "event"},
			func(a gateway.Alert) []any {
				return []any{a.Id, formatTime(a.CreatedAt), string(a.Severity), string(a.Status), formatInt64Ptr(a.RuleId), formatInt64Ptr(a.EventId)}
			}),
		gateway.Incidents.Name: newBinding(opts, gateway.Incidents,
			[]string{"id", "title", "status", "severity", "alerts", "created at"},
			func(i gateway.Incident) []any {
				return []any{i.Id, i.Title, i.Status, string(i.Severity), formatInt64s(i.AlertIds), formatTime(i.CreatedAt)}
			}),
		gateway.AuditLogs.Name: newBinding(opts, gateway.AuditLogs,
			[]string{"id", "action", "target type", "target", "user", "timestamp"},
			func(a gateway.AuditLog) []any {
				return []any{a.Id, a.Action, a.TargetType, formatInt64Ptr(a.TargetId), formatInt64Ptr(a.UserId), formatTime(a.Timestamp)}
			}),
	}
}

// ConfirmWithPrompt satisfies gateway.ConfirmFunc with a modal prompt;
// a declined prompt is reported as a decision rather than an error
func ConfirmWithPrompt(ctx context.Context, prompt string) (bool, error) {
	err := ShowConfirmation(ShowConfirmationOpts{
		Title:        "Please confirm",
		Message:      prompt,
		ConfirmLabel: "Yes",
		CancelLabel:  "No",
	})
	if errors.Is(err, ErrorUserCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type binding[T gateway.Entity] struct {
	schema  gateway.Schema
	headers []string
	row     func(T) []any
	cursor  *gateway.Cursor[T]
	mutator *gateway.Mutator[T]
	editor  *gateway.Editor[T]
	auditor *gateway.Auditor
}

func newBinding[T gateway.Entity](
	opts NewResourceBindingsOpts,
	schema gateway.Schema,
	headers []string,
	row func(T) []any,
) *binding[T] {
	cursor := gateway.NewCursor[T](opts.Client, schema)
	mutator := gateway.NewMutator(gateway.NewMutatorOpts[T]{
		Client:  opts.Client,
		Cursor:  cursor,
		Auditor: opts.Auditor,
		Confirm: opts.Confirm,
		ActorId: opts.ActorId,
	})
	return &binding[T]{
		schema:  schema,
		headers: headers,
		row:     row,
		cursor:  cursor,
		mutator: mutator,
		editor:  gateway.NewEditor(gateway.FieldSpecsFor(schema), mutator),
		auditor: opts.Auditor,
	}
}

func (b *binding[T]) Schema() gateway.Schema { return b.schema }

func (b *binding[T]) Headers() []string { return b.headers }

func (b *binding[T]) Fields() []gateway.FieldSpec { return gateway.FieldSpecsFor(b.schema) }

func (b *binding[T]) LoadPage(ctx context.Context, offset int) error {
	return b.cursor.Load(ctx, offset)
}

func (b *binding[T]) NextPage(ctx context.Context) error {
	return b.cursor.Next(ctx)
}

func (b *binding[T]) PrevPage(ctx context.Context) error {
	return b.cursor.Prev(ctx)
}

func (b *binding[T]) Rows() [][]any {
	rows := [][]any{}
	for _, item := range b.cursor.Items() {
		rows = append(rows, b.row(item))
	}
	return rows
}

func (b *binding[T]) Ids() []int64 {
	ids := []int64{}
	for _, item := range b.cursor.Items() {
		ids = append(ids, item.EntityId())
	}
	return ids
}

func (b *binding[T]) Items() any { return b.cursor.Items() }

func (b *binding[T]) Offset() int { return b.cursor.Offset() }

func (b *binding[T]) HasMore() bool { return b.cursor.HasMore() }

// CurrentValues returns the target entity's fields rendered as form
// input values; the entity must be on the loaded page
func (b *binding[T]) CurrentValues(id int64) (map[string]string, error) {
	var target *T
	for _, item := range b.cursor.Items() {
		if item.EntityId() == id {
			target = &item
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("failed to find %s[%v] in the current page, load the page containing it first", b.schema.Name, id)
	}
	draft, err := b.editor.OpenExisting(*target)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	for _, field := range draft.Fields() {
		values[field.Name] = draft.Get(field.Name)
	}
	b.editor.Cancel()
	return values, nil
}

func (b *binding[T]) Create(ctx context.Context, values map[string]string) error {
	draft := b.editor.Open()
	if err := applyDraftValues(draft, values); err != nil {
		b.editor.Cancel()
		return err
	}
	if _, err := b.editor.Submit(ctx); err != nil {
		b.editor.Cancel()
		return err
	}
	return nil
}

func (b *binding[T]) Update(ctx context.Context, id int64, values map[string]string) error {
	var target *T
	for _, item := range b.cursor.Items() {
		if item.EntityId() == id {
			target = &item
			break
		}
	}
	if target == nil {
		return fmt.Errorf("failed to find %s[%v] in the current page, load the page containing it first", b.schema.Name, id)
	}
	draft, err := b.editor.OpenExisting(*target)
	if err != nil {
		return err
	}
	if err := applyDraftValues(draft, values); err != nil {
		b.editor.Cancel()
		return err
	}
	if _, err := b.editor.Submit(ctx); err != nil {
		b.editor.Cancel()
		return err
	}
	return nil
}

func (b *binding[T]) Delete(ctx context.Context, id int64) error {
	return b.mutator.Delete(ctx, id)
}

func (b *binding[T]) Flush() {
	if b.auditor != nil {
		b.auditor.Wait()
	}
}

func applyDraftValues(draft *gateway.Draft, values map[string]string) error {
	for name, value := range values {
		if err := draft.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func formatStringPtr(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func formatInt64Ptr(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func formatInt64s(values []int64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := []string{}
	for _, value := range values {
		parts = append(parts, strconv.FormatInt(value, 10))
	}
	return strings.Join(parts, ", ")
}

func formatConditions(conditions []gateway.RuleCondition) string {
	if len(conditions) == 0 {
		return "-"
	}
	parts := []string{}
	for _, condition := range conditions {
		parts = append(parts, fmt.Sprintf("%s %s %s", condition.Field, condition.Operator, condition.Value))
	}
	return strings.Join(parts, "; ")
}
