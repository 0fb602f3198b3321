package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type EventStore struct {
	Db *sql.DB
}

func (s EventStore) List(skip, limit int) ([]gateway.Event, error) {
	events := []gateway.Event{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, timestamp, event_type, severity, message, asset_id
				FROM events
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.EventStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var event gateway.Event
			var assetId sql.NullInt64
			if err := rows.Scan(&event.Id, &event.Timestamp, &event.EventType, &event.Severity, &event.Message, &assetId); err != nil {
				return err
			}
			event.AssetId = assetId.Int64
			events = append(events, event)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s EventStore) Get(id int64) (*gateway.Event, error) {
	var event gateway.Event
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, timestamp, event_type, severity, message, asset_id
				FROM events
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.EventStore.Get",
		ProcessRow: func(row *sql.Row) error {
			var assetId sql.NullInt64
			if err := row.Scan(&event.Id, &event.Timestamp, &event.EventType, &event.Severity, &event.Message, &assetId); err != nil {
				return err
			}
			event.AssetId = assetId.Int64
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s EventStore) Create(p Payload) (*gateway.Event, error) {
	eventType, err := requireString(p, "event_type")
	if err != nil {
		return nil, err
	}
	message, err := requireString(p, "message")
	if err != nil {
		return nil, err
	}
	severity, isSet, err := p.GetSeverity("severity")
	if err != nil {
		return nil, err
	}
	if !isSet || severity == nil {
		return nil, fmt.Errorf("field[severity] is required: %w", ErrorInvalidInput)
	}
	assetId, _, err := p.GetInt64("asset_id")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO events (event_type, severity, message, asset_id)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{eventType, string(*severity), message, assetId},
		FnSource: "models.EventStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s EventStore) Update(id int64, p Payload) (*gateway.Event, error) {
	setClauses := []string{}
	args := []any{}
	for _, required := range []string{"event_type", "message"} {
		value, isSet, err := p.GetString(required)
		if err != nil {
			return nil, err
		}
		if !isSet {
			continue
		}
		if value == nil || *value == "" {
			return nil, fmt.Errorf("field[%s] is required: %w", required, ErrorInvalidInput)
		}
		setClauses = append(setClauses, required+" = ?")
		args = append(args, *value)
	}
	if severity, isSet, err := p.GetSeverity("severity"); err != nil {
		return nil, err
	} else if isSet {
		if severity == nil {
			return nil, fmt.Errorf("field[severity] is required: %w", ErrorInvalidInput)
		}
		setClauses = append(setClauses, "severity = ?")
		args = append(args, string(*severity))
	}
	if assetId, isSet, err := p.GetInt64("asset_id"); err != nil {
		return nil, err
	} else if isSet {
		setClauses = append(setClauses, "asset_id = ?")
		args = append(args, assetId)
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if len(setClauses) > 0 {
		args = append(args, id)
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     fmt.Sprintf("UPDATE events SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.EventStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s EventStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM events WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.EventStore.Delete",
	})
}
