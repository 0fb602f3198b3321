package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const auditWriteTimeout = 5 * time.Second

// AuditVerbs names the action recorded for each mutation kind
type AuditVerbs struct {
	Create string
	Update string
	Delete string
}

// DefaultAuditVerbs records deletions under the "update" action; the
// audit consumers this gateway replaces filed deletes that way and
// existing reports key off it. Pass custom verbs to a mutator to record
// deletes as "delete" instead
func DefaultAuditVerbs() AuditVerbs {
	return AuditVerbs{
		Create: "create",
		Update: "update",
		Delete: "update",
	}
}

func NewAuditor(client *Client) *Auditor {
	return &Auditor{client: client}
}

// Auditor writes audit records as a best-effort side channel: writes are
// not awaited by callers and failures are swallowed, so the audit trail
// can silently miss entries when the gateway rejects a write
type Auditor struct {
	client *Client
	wg     sync.WaitGroup
}

type auditRecord struct {
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetId   int64  `json:"target_id"`
	UserId     int64  `json:"user_id"`
}

// Record queues one audit write and returns immediately
func (a *Auditor) Record(action string, targetType string, targetId int64, userId int64) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		a.record(ctx, action, targetType, targetId, userId)
	}()
}

func (a *Auditor) record(ctx context.Context, action string, targetType string, targetId int64, userId int64) {
	// best-effort: the triggering mutation already succeeded
	_ = a.client.do(ctx, requestOpts{
		Method: http.MethodPost,
		Path:   AuditLogs.ListPath(),
		Body: auditRecord{
			Action:     action,
			TargetType: targetType,
			TargetId:   targetId,
			UserId:     userId,
		},
	}, nil)
}

// Wait blocks until every queued audit write has been attempted; call it
// before process exit so short-lived commands don't drop their records
func (a *Auditor) Wait() {
	a.wg.Wait()
}
