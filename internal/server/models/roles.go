package models

import (
	"database/sql"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type RoleStore struct {
	Db *sql.DB
}

func (s RoleStore) List(skip, limit int) ([]gateway.Role, error) {
	roles := []gateway.Role{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "SELECT id, name FROM roles ORDER BY id LIMIT ? OFFSET ?",
		Args:     []any{limit, skip},
		FnSource: "models.RoleStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var role gateway.Role
			if err := rows.Scan(&role.Id, &role.Name); err != nil {
				return err
			}
			roles = append(roles, role)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (s RoleStore) Get(id int64) (*gateway.Role, error) {
	var role gateway.Role
	err := executeMysqlSelect(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "SELECT id, name FROM roles WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.RoleStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&role.Id, &role.Name)
		},
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s RoleStore) Create(p Payload) (*gateway.Role, error) {
	name, err := requireString(p, "name")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "INSERT INTO roles (name) VALUES (?)",
		Args:     []any{name},
		FnSource: "models.RoleStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s RoleStore) Update(id int64, p Payload) (*gateway.Role, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if name, isSet, err := p.GetString("name"); err != nil {
		return nil, err
	} else if isSet {
		if name == nil || *name == "" {
			return nil, fmt.Errorf("field[name] is required: %w", ErrorInvalidInput)
		}
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     "UPDATE roles SET name = ? WHERE id = ?",
			Args:     []any{*name, id},
			FnSource: "models.RoleStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s RoleStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM roles WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.RoleStore.Delete",
	})
}
