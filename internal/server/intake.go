package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/queue"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server/models"
)

const (
	EventIntakeStream  = "watchtower"
	EventIntakeSubject = "events"

	eventIntakeConsumerId = "watchtower-event-intake"
	eventIntakeNakBackoff = 5 * time.Second
)

// EventSubmission is the envelope published by `watchtower submit event`
// and consumed by the intake subscriber
type EventSubmission struct {
	EventType  string          `json:"event_type"`
	Severity   string          `json:"severity"`
	Message    string          `json:"message"`
	AssetId    *int64          `json:"asset_id"`
	RawPayload json.RawMessage `json:"raw_payload"`
}

func (s EventSubmission) Validate() error {
	errs := []error{}
	if s.EventType == "" {
		errs = append(errs, fmt.Errorf("failed to receive an event type"))
	}
	if s.Severity == "" {
		errs = append(errs, fmt.Errorf("failed to receive a severity"))
	}
	if s.Message == "" {
		errs = append(errs, fmt.Errorf("failed to receive a message"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

type StartEventIntakeOpts struct {
	Context            context.Context
	DatabaseConnection *sql.DB
	QueueConnection    queue.Instance
	ServiceLogs        chan<- common.ServiceLog
}

// StartEventIntake consumes submitted events off the queue and stores
// each one together with its raw log; it blocks until the subscription
// ends
func StartEventIntake(opts StartEventIntakeOpts) error {
	events := models.EventStore{Db: opts.DatabaseConnection}
	rawLogs := models.RawLogStore{Db: opts.DatabaseConnection}

	handler := func(ctx context.Context, message queue.Message) error {
		var submission EventSubmission
		if err := json.Unmarshal(message.Data, &submission); err != nil {
			opts.ServiceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to parse event submission: %s", err)
			return nil
		}
		if err := submission.Validate(); err != nil {
			opts.ServiceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to validate event submission: %s", err)
			return nil
		}
		eventPayload := models.Payload{
			"event_type": submission.EventType,
			"severity":   submission.Severity,
			"message":    submission.Message,
		}
		if submission.AssetId != nil {
			eventPayload["asset_id"] = *submission.AssetId
		}
		event, err := events.Create(eventPayload)
		if err != nil {
			return fmt.Errorf("failed to store submitted event: %w", err)
		}
		if len(submission.RawPayload) > 0 {
			if _, err := rawLogs.Create(models.Payload{
				"event_id":    event.Id,
				"raw_payload": json.RawMessage(submission.RawPayload),
			}); err != nil {
				return fmt.Errorf("failed to store raw log for event[%v]: %w", event.Id, err)
			}
		}
		opts.ServiceLogs <- common.ServiceLogf(common.LogLevelInfo, "stored submitted event[%v] with type[%s]", event.Id, event.EventType)
		return nil
	}

	return opts.QueueConnection.Subscribe(queue.SubscribeOpts{
		ConsumerId: eventIntakeConsumerId,
		Context:    opts.Context,
		Handler:    handler,
		Queue: queue.QueueOpts{
			Stream:  EventIntakeStream,
			Subject: EventIntakeSubject,
		},
		NakBackoff: eventIntakeNakBackoff,
	})
}
