package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type RuleStore struct {
	Db *sql.DB
}

func (s RuleStore) List(skip, limit int) ([]gateway.Rule, error) {
	rules := []gateway.Rule{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, name, description, severity, enabled
				FROM rules
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.RuleStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var rule gateway.Rule
			if err := rows.Scan(&rule.Id, &rule.Name, &rule.Description, &rule.Severity, &rule.Enabled); err != nil {
				return err
			}
			rules = append(rules, rule)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	for i := range rules {
		conditions, err := s.listConditions(rules[i].Id)
		if err != nil {
			return nil, err
		}
		rules[i].Conditions = conditions
	}
	return rules, nil
}

func (s RuleStore) Get(id int64) (*gateway.Rule, error) {
	var rule gateway.Rule
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, name, description, severity, enabled
				FROM rules
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.RuleStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&rule.Id, &rule.Name, &rule.Description, &rule.Severity, &rule.Enabled)
		},
	})
	if err != nil {
		return nil, err
	}
	conditions, err := s.listConditions(id)
	if err != nil {
		return nil, err
	}
	rule.Conditions = conditions
	return &rule, nil
}

func (s RuleStore) Create(p Payload) (*gateway.Rule, error) {
	name, err := requireString(p, "name")
	if err != nil {
		return nil, err
	}
	description, _, err := p.GetClearableString("description")
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
	enabled := true
	if value, isSet, err := p.GetBool("enabled"); err != nil {
		return nil, err
	} else if isSet && value != nil {
		enabled = *value
	}
	conditions, _, err := getConditions(p)
	if err != nil {
		return nil, err
	}

	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO rules (name, description, severity, enabled)
				VALUES (?, ?, ?, ?)`,
		Args:     []any{name, description, string(*severity), enabled},
		FnSource: "models.RuleStore.Create",
	})
	if err != nil {
		return nil, err
	}
	if len(conditions) > 0 {
		if err := s.replaceConditions(insertedId, conditions); err != nil {
			return nil, err
		}
	}
	return s.Get(insertedId)
}

func (s RuleStore) Update(id int64, p Payload) (*gateway.Rule, error) {
	setClauses := []string{}
	args := []any{}
	if name, isSet, err := p.GetString("name"); err != nil {
		return nil, err
	} else if isSet {
		if name == nil || *name == "" {
			return nil, fmt.Errorf("field[name] is required: %w", ErrorInvalidInput)
		}
		setClauses = append(setClauses, "name = ?")
		args = append(args, *name)
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
	if enabled, isSet, err := p.GetBool("enabled"); err != nil {
		return nil, err
	} else if isSet && enabled != nil {
		setClauses = append(setClauses, "enabled = ?")
		args = append(args, *enabled)
	}
	conditions, conditionsSet, err := getConditions(p)
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
			Stmt:     fmt.Sprintf("UPDATE rules SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.RuleStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	if conditionsSet {
		if err := s.replaceConditions(id, conditions); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s RuleStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM rules WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.RuleStore.Delete",
	})
}

func (s RuleStore) listConditions(ruleId int64) ([]gateway.RuleCondition, error) {
	conditions := []gateway.RuleCondition{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, field, operator, value
				FROM rule_conditions
				WHERE rule_id = ?
				ORDER BY id`,
		Args:     []any{ruleId},
		FnSource: "models.RuleStore.listConditions",
		ProcessRows: func(rows *sql.Rows) error {
			var condition gateway.RuleCondition
			if err := rows.Scan(&condition.Id, &condition.Field, &condition.Operator, &condition.Value); err != nil {
				return err
			}
			conditions = append(conditions, condition)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return conditions, nil
}

// replaceConditions replaces the rule's full condition set; conditions
// not present in the submitted list are destroyed
func (s RuleStore) replaceConditions(ruleId int64, conditions []gateway.RuleCondition) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("models.RuleStore.replaceConditions: failed to start a transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM rule_conditions WHERE rule_id = ?", ruleId); err != nil {
		return fmt.Errorf("models.RuleStore.replaceConditions: failed to clear existing conditions: %w", err)
	}
	for _, condition := range conditions {
		if _, err := tx.Exec(
			"INSERT INTO rule_conditions (rule_id, field, operator, value) VALUES (?, ?, ?, ?)",
			ruleId, condition.Field, string(condition.Operator), condition.Value,
		); err != nil {
			return fmt.Errorf("models.RuleStore.replaceConditions: failed to attach condition[%s]: %w", condition.Field, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("models.RuleStore.replaceConditions: failed to commit: %w", err)
	}
	return nil
}

func getConditions(p Payload) ([]gateway.RuleCondition, bool, error) {
	raw, isSet, err := p.GetRaw("conditions")
	if err != nil {
		return nil, isSet, err
	}
	if !isSet {
		return nil, false, nil
	}
	if raw == nil {
		return []gateway.RuleCondition{}, true, nil
	}
	conditions := []gateway.RuleCondition{}
	if err := json.Unmarshal(raw, &conditions); err != nil {
		return nil, true, fmt.Errorf("field[conditions] should be a list of conditions: %w", ErrorInvalidInput)
	}
	for _, condition := range conditions {
		if condition.Field == "" {
			return nil, true, fmt.Errorf("field[conditions] contains a condition without a field: %w", ErrorInvalidInput)
		}
		if err := condition.Operator.Validate(); err != nil {
			return nil, true, fmt.Errorf("field[conditions]: %w: %w", err, ErrorInvalidInput)
		}
	}
	return conditions, true, nil
}
