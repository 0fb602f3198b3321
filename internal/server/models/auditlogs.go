package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

// AuditLogStore serves the /auditlogs/ resource. Records are normally
// written as a side effect of other resources' mutations, but the store
// carries the full operation set so the resource stays on the uniform
// route surface.
type AuditLogStore struct {
	Db *sql.DB
}

func (s AuditLogStore) List(skip, limit int) ([]gateway.AuditLog, error) {
	auditLogs := []gateway.AuditLog{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, action, target_type, target_id, user_id, timestamp
				FROM audit_logs
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.AuditLogStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var auditLog gateway.AuditLog
			if err := rows.Scan(&auditLog.Id, &auditLog.Action, &auditLog.TargetType, &auditLog.TargetId, &auditLog.UserId, &auditLog.Timestamp); err != nil {
				return err
			}
			auditLogs = append(auditLogs, auditLog)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return auditLogs, nil
}

func (s AuditLogStore) Get(id int64) (*gateway.AuditLog, error) {
	var auditLog gateway.AuditLog
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, action, target_type, target_id, user_id, timestamp
				FROM audit_logs
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.AuditLogStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&auditLog.Id, &auditLog.Action, &auditLog.TargetType, &auditLog.TargetId, &auditLog.UserId, &auditLog.Timestamp)
		},
	})
	if err != nil {
		return nil, err
	}
	return &auditLog, nil
}

func (s AuditLogStore) Create(p Payload) (*gateway.AuditLog, error) {
	action, err := requireString(p, "action")
	if err != nil {
		return nil, err
	}
	targetType, err := requireString(p, "target_type")
	if err != nil {
		return nil, err
	}
	targetId, _, err := p.GetInt64("target_id")
	if err != nil {
		return nil, err
	}
	userId, _, err := p.GetInt64("user_id")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO audit_logs (action, target_type, target_id, user_id)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{action, targetType, targetId, userId},
		FnSource: "models.AuditLogStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s AuditLogStore) Update(id int64, p Payload) (*gateway.AuditLog, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	assignments := []string{}
	args := []any{}
	if action, isSet, err := p.GetString("action"); err != nil {
		return nil, err
	} else if isSet {
		if action == nil || *action == "" {
			return nil, fmt.Errorf("field[action] is required: %w", ErrorInvalidInput)
		}
		assignments = append(assignments, "action = ?")
		args = append(args, *action)
	}
	if targetType, isSet, err := p.GetString("target_type"); err != nil {
		return nil, err
	} else if isSet {
		if targetType == nil || *targetType == "" {
			return nil, fmt.Errorf("field[target_type] is required: %w", ErrorInvalidInput)
		}
		assignments = append(assignments, "target_type = ?")
		args = append(args, *targetType)
	}
	if targetId, isSet, err := p.GetInt64("target_id"); err != nil {
		return nil, err
	} else if isSet {
		assignments = append(assignments, "target_id = ?")
		args = append(args, targetId)
	}
	if userId, isSet, err := p.GetInt64("user_id"); err != nil {
		return nil, err
	} else if isSet {
		assignments = append(assignments, "user_id = ?")
		args = append(args, userId)
	}
	if len(assignments) > 0 {
		stmt := fmt.Sprintf("UPDATE audit_logs SET %s WHERE id = ?", strings.Join(assignments, ", "))
		args = append(args, id)
		if err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     stmt,
			Args:     args,
			FnSource: "models.AuditLogStore.Update",
		}); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s AuditLogStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM audit_logs WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.AuditLogStore.Delete",
	})
}
