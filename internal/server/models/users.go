package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"golang.org/x/crypto/bcrypt"
)

type UserStore struct {
	Db *sql.DB
}

func (s UserStore) List(skip, limit int) ([]gateway.User, error) {
	users := []gateway.User{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT u.id, u.username, u.email, u.is_active, u.created_at,
			       COALESCE(GROUP_CONCAT(ur.role_id ORDER BY ur.role_id), '')
				FROM users u
				LEFT JOIN user_roles ur ON ur.user_id = u.id
				GROUP BY u.id
				ORDER BY u.id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.UserStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var user gateway.User
			var roleIds string
			if err := rows.Scan(&user.Id, &user.Username, &user.Email, &user.IsActive, &user.CreatedAt, &roleIds); err != nil {
				return err
			}
			parsed, err := parseIdList(roleIds)
			if err != nil {
				return err
			}
			user.RoleIds = parsed
			users = append(users, user)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s UserStore) Get(id int64) (*gateway.User, error) {
	var user gateway.User
	var roleIds string
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT u.id, u.username, u.email, u.is_active, u.created_at,
			       COALESCE(GROUP_CONCAT(ur.role_id ORDER BY ur.role_id), '')
				FROM users u
				LEFT JOIN user_roles ur ON ur.user_id = u.id
				WHERE u.id = ?
				GROUP BY u.id`,
		Args:     []any{id},
		FnSource: "models.UserStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&user.Id, &user.Username, &user.Email, &user.IsActive, &user.CreatedAt, &roleIds)
		},
	})
	if err != nil {
		return nil, err
	}
	parsed, err := parseIdList(roleIds)
	if err != nil {
		return nil, err
	}
	user.RoleIds = parsed
	return &user, nil
}

func (s UserStore) Create(p Payload) (*gateway.User, error) {
	username, err := requireString(p, "username")
	if err != nil {
		return nil, err
	}
	email, err := requireString(p, "email")
	if err != nil {
		return nil, err
	}
	isActive := true
	if value, isSet, err := p.GetBool("is_active"); err != nil {
		return nil, err
	} else if isSet && value != nil {
		isActive = *value
	}
	passwordHash := sql.NullString{}
	if password, isSet, err := p.GetString("password"); err != nil {
		return nil, err
	} else if isSet && password != nil && *password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash the password: %w", err)
		}
		passwordHash = sql.NullString{String: string(hash), Valid: true}
	}
	roleIds, _, err := p.GetInt64Slice("role_ids")
	if err != nil {
		return nil, err
	}

	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO users (username, email, password_hash, is_active)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{username, email, passwordHash, isActive},
		FnSource: "models.UserStore.Create",
	})
	if err != nil {
		return nil, err
	}
	if len(roleIds) > 0 {
		if err := s.replaceRoles(insertedId, roleIds); err != nil {
			return nil, err
		}
	}
	return s.Get(insertedId)
}

func (s UserStore) Update(id int64, p Payload) (*gateway.User, error) {
	setClauses := []string{}
	args := []any{}
	if username, isSet, err := p.GetString("username"); err != nil {
		return nil, err
	} else if isSet {
		if username == nil || *username == "" {
			return nil, fmt.Errorf("field[username] is required: %w", ErrorInvalidInput)
		}
		setClauses = append(setClauses, "username = ?")
		args = append(args, *username)
	}
	if email, isSet, err := p.GetString("email"); err != nil {
		return nil, err
	} else if isSet {
		if email == nil || *email == "" {
			return nil, fmt.Errorf("field[email] is required: %w", ErrorInvalidInput)
		}
		setClauses = append(setClauses, "email = ?")
		args = append(args, *email)
	}
	if isActive, isSet, err := p.GetBool("is_active"); err != nil {
		return nil, err
	} else if isSet && isActive != nil {
		setClauses = append(setClauses, "is_active = ?")
		args = append(args, *isActive)
	}
	if password, isSet, err := p.GetString("password"); err != nil {
		return nil, err
	} else if isSet && password != nil && *password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash the password: %w", err)
		}
		setClauses = append(setClauses, "password_hash = ?")
		args = append(args, string(hash))
	}
	roleIds, rolesSet, err := p.GetInt64Slice("role_ids")
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
			Stmt:     fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.UserStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	if rolesSet {
		if err := s.replaceRoles(id, roleIds); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s UserStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM users WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.UserStore.Delete",
	})
}

// replaceRoles replaces the full role membership; attachment is by
// inclusion and detachment by omission
func (s UserStore) replaceRoles(userId int64, roleIds []int64) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("models.UserStore.replaceRoles: failed to start a transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM user_roles WHERE user_id = ?", userId); err != nil {
		return fmt.Errorf("models.UserStore.replaceRoles: failed to clear existing roles: %w", err)
	}
	for _, roleId := range roleIds {
		if _, err := tx.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", userId, roleId); err != nil {
			return fmt.Errorf("models.UserStore.replaceRoles: failed to attach role[%v]: %w", roleId, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("models.UserStore.replaceRoles: failed to commit: %w", err)
	}
	return nil
}
