package gateway

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entity is implemented by every persisted resource type; the identity
// is the server-assigned integer id and is absent (zero) on drafts
type Entity interface {
	EntityId() int64
}

type User struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	RoleIds   []int64   `json:"role_ids"`
}

func (u User) EntityId() int64 { return u.Id }

type Role struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

func (r Role) EntityId() int64 { return r.Id }

type Asset struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name"`
	AssetType   string  `json:"asset_type"`
	IpAddress   *string `json:"ip_address"`
	Hostname    *string `json:"hostname"`
	Environment string  `json:"environment"`
}

func (a Asset) EntityId() int64 { return a.Id }

type Event struct {
	Id        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	AssetId   int64     `json:"asset_id"`
}

func (e Event) EntityId() int64 { return e.Id }

type RawLog struct {
	Id         int64           `json:"id"`
	EventId    int64           `json:"event_id"`
	RawPayload json.RawMessage `json:"raw_payload"`
	IngestedAt time.Time       `json:"ingested_at"`
}

func (r RawLog) EntityId() int64 { return r.Id }

// Operator is a rule condition's comparison operator; evaluation of
// conditions against events happens outside this codebase
type Operator string

const (
	OperatorEq         Operator = "eq"
	OperatorNeq        Operator = "neq"
	OperatorLt         Operator = "lt"
	OperatorLte        Operator = "lte"
	OperatorGt         Operator = "gt"
	OperatorGte        Operator = "gte"
	OperatorContains   Operator = "contains"
	OperatorStartsWith Operator = "startswith"
	OperatorEndsWith   Operator = "endswith"
	OperatorCountGte   Operator = "count_gte"
)

var Operators = []Operator{
	OperatorEq,
	OperatorNeq,
	OperatorLt,
	OperatorLte,
	OperatorGt,
	OperatorGte,
	OperatorContains,
	OperatorStartsWith,
	OperatorEndsWith,
	OperatorCountGte,
}

func (o Operator) Validate() error {
	for _, known := range Operators {
		if o == known {
			return nil
		}
	}
	return fmt.Errorf("failed to recognise operator '%s'", o)
}

// RuleCondition is one field/operator/value clause of a rule; it is
// owned by its parent rule and is created and destroyed with the rule
// edit that carries it
type RuleCondition struct {
	Id       int64    `json:"id,omitempty"`
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

type Rule struct {
	Id          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Severity    Severity        `json:"severity"`
	Enabled     bool            `json:"enabled"`
	Conditions  []RuleCondition `json:"conditions"`
}

func (r Rule) EntityId() int64 { return r.Id }

type AlertStatus string

const (
	AlertStatusOpen         AlertStatus = "open"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusClosed       AlertStatus = "closed"
)

// Alert may exist without a rule or an event; both references are
// nullable
type Alert struct {
	Id        int64       `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Severity  Severity    `json:"severity"`
	Status    AlertStatus `json:"status"`
	RuleId    *int64      `json:"rule_id"`
	EventId   *int64      `json:"event_id"`
}

func (a Alert) EntityId() int64 { return a.Id }

// Incident owns a set of alert references; the full membership list is
// resubmitted on every save, attaching by inclusion and detaching by
// omission
type Incident struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
	AlertIds    []int64   `json:"alert_ids"`
}

func (i Incident) EntityId() int64 { return i.Id }

// AuditLog is an append-only record of a mutation; records are written
// as a side effect of every other resource's mutations
type AuditLog struct {
	Id         int64     `json:"id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetId   *int64    `json:"target_id"`
	UserId     *int64    `json:"user_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func (a AuditLog) EntityId() int64 { return a.Id }
