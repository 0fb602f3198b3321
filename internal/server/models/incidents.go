package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type IncidentStore struct {
	Db *sql.DB
}

func (s IncidentStore) List(skip, limit int) ([]gateway.Incident, error) {
	incidents := []gateway.Incident{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT i.id, i.title, i.description, i.status, i.severity, i.created_at,
			       COALESCE(GROUP_CONCAT(ia.alert_id ORDER BY ia.alert_id), '')
				FROM incidents i
				LEFT JOIN incident_alerts ia ON ia.incident_id = i.id
				GROUP BY i.id
				ORDER BY i.id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.IncidentStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var incident gateway.Incident
			var alertIds string
			if err := rows.Scan(&incident.Id, &incident.Title, &incident.Description, &incident.Status, &incident.Severity, &incident.CreatedAt, &alertIds); err != nil {
				return err
			}
			parsed, err := parseIdList(alertIds)
			if err != nil {
				return err
			}
			incident.AlertIds = parsed
			incidents = append(incidents, incident)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

func (s IncidentStore) Get(id int64) (*gateway.Incident, error) {
	var incident gateway.Incident
	var alertIds string
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT i.id, i.title, i.description, i.status, i.severity, i.created_at,
			       COALESCE(GROUP_CONCAT(ia.alert_id ORDER BY ia.alert_id), '')
				FROM incidents i
				LEFT JOIN incident_alerts ia ON ia.incident_id = i.id
				WHERE i.id = ?
				GROUP BY i.id`,
		Args:     []any{id},
		FnSource: "models.IncidentStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&incident.Id, &incident.Title, &incident.Description, &incident.Status, &incident.Severity, &incident.CreatedAt, &alertIds)
		},
	})
	if err != nil {
		return nil, err
	}
	parsed, err := parseIdList(alertIds)
	if err != nil {
		return nil, err
	}
	incident.AlertIds = parsed
	return &incident, nil
}

func (s IncidentStore) Create(p Payload) (*gateway.Incident, error) {
	title, err := requireString(p, "title")
	if err != nil {
		return nil, err
	}
	description, _, err := p.GetClearableString("description")
	if err != nil {
		return nil, err
	}
	status, err := requireString(p, "status")
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
	alertIds, _, err := p.GetInt64Slice("alert_ids")
	if err != nil {
		return nil, err
	}

	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO incidents (title, description, status, severity)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{title, description, status, string(*severity)},
		FnSource: "models.IncidentStore.Create",
	})
	if err != nil {
		return nil, err
	}
	if len(alertIds) > 0 {
		if err := s.replaceAlerts(insertedId, alertIds); err != nil {
			return nil, err
		}
	}
	return s.Get(insertedId)
}

func (s IncidentStore) Update(id int64, p Payload) (*gateway.Incident, error) {
	setClauses := []string{}
	args := []any{}
	for _, required := range []string{"title", "status"} {
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
	if description, isSet, err := p.GetClearableString("description"); err != nil {
		return nil, err
	} else if isSet {
		setClauses = append(setClauses, "description = ?")
		args = append(args, description)
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
	alertIds, alertsSet, err := p.GetInt64Slice("alert_ids")
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if len(setClauses) > 0 {
		args = append(args, id)
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     fmt.Sprintf("UPDATE incidents SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.IncidentStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	if alertsSet {
		if err := s.replaceAlerts(id, alertIds); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s IncidentStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM incidents WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.IncidentStore.Delete",
	})
}

// replaceAlerts replaces the incident's full alert membership; alerts
// omitted from the submitted list are detached
func (s IncidentStore) replaceAlerts(incidentId int64, alertIds []int64) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("models.IncidentStore.replaceAlerts: failed to start a transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM incident_alerts WHERE incident_id = ?", incidentId); err != nil {
		return fmt.Errorf("models.IncidentStore.replaceAlerts: failed to clear existing links: %w", err)
	}
	for _, alertId := range alertIds {
		if _, err := tx.Exec("INSERT INTO incident_alerts (incident_id, alert_id) VALUES (?, ?)", incidentId, alertId); err != nil {
			return fmt.Errorf("models.IncidentStore.replaceAlerts: failed to attach alert[%v]: %w", alertId, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("models.IncidentStore.replaceAlerts: failed to commit: %w", err)
	}
	return nil
}
