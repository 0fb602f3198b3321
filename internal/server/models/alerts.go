package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type AlertStore struct {
	Db *sql.DB
}

func (s AlertStore) List(skip, limit int) ([]gateway.Alert, error) {
	alerts := []gateway.Alert{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, created_at, severity, status, rule_id, event_id
				FROM alerts
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.AlertStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var alert gateway.Alert
			if err := rows.Scan(&alert.Id, &alert.CreatedAt, &alert.Severity, &alert.Status, &alert.RuleId, &alert.EventId); err != nil {
				return err
			}
			alerts = append(alerts, alert)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (s AlertStore) Get(id int64) (*gateway.Alert, error) {
	var alert gateway.Alert
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, created_at, severity, status, rule_id, event_id
				FROM alerts
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.AlertStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&alert.Id, &alert.CreatedAt, &alert.Severity, &alert.Status, &alert.RuleId, &alert.EventId)
		},
	})
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s AlertStore) Create(p Payload) (*gateway.Alert, error) {
	severity, isSet, err := p.GetSeverity("severity")
	if err != nil {
		return nil, err
	}
	if !isSet || severity == nil {
		return nil, fmt.Errorf("field[severity] is required: %w", ErrorInvalidInput)
	}
	status := string(gateway.AlertStatusOpen)
	if value, isSet, err := p.GetString("status"); err != nil {
		return nil, err
	} else if isSet && value != nil {
		if err := validateAlertStatus(*value); err != nil {
			return nil, err
		}
		status = *value
	}
	ruleId, _, err := p.GetInt64("rule_id")
	if err != nil {
		return nil, err
	}
	eventId, _, err := p.GetInt64("event_id")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO alerts (severity, status, rule_id, event_id)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{string(*severity), status, ruleId, eventId},
		FnSource: "models.AlertStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s AlertStore) Update(id int64, p Payload) (*gateway.Alert, error) {
	setClauses := []string{}
	args := []any{}
	if severity, isSet, err := p.GetSeverity("severity"); err != nil {
		return nil, err
	} else if isSet {
		if severity == nil {
			return nil, fmt.Errorf("field[severity] is required: %w", ErrorInvalidInput)
		}
		setClauses = append(setClauses, "severity = ?")
		args = append(args, string(*severity))
	}
	if status, isSet, err := p.GetString("status"); err != nil {
		return nil, err
	} else if isSet {
		if status == nil {
			return nil, fmt.Errorf("field[status] is required: %w", ErrorInvalidInput)
		}
		if err := validateAlertStatus(*status); err != nil {
			return nil, err
		}
		setClauses = append(setClauses, "status = ?")
		args = append(args, *status)
	}
	for _, nullable := range []string{"rule_id", "event_id"} {
		value, isSet, err := p.GetInt64(nullable)
		if err != nil {
			return nil, err
		}
		if !isSet {
			continue
		}
		setClauses = append(setClauses, nullable+" = ?")
		args = append(args, value)
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if len(setClauses) > 0 {
		args = append(args, id)
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     fmt.Sprintf("UPDATE alerts SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.AlertStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s AlertStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM alerts WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.AlertStore.Delete",
	})
}

func validateAlertStatus(status string) error {
	switch gateway.AlertStatus(status) {
	case gateway.AlertStatusOpen, gateway.AlertStatusAcknowledged, gateway.AlertStatusClosed:
		return nil
	}
	return fmt.Errorf("field[status] should be one of open/acknowledged/closed: %w", ErrorInvalidInput)
}
