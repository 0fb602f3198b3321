package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type RawLogStore struct {
	Db *sql.DB
}

func (s RawLogStore) List(skip, limit int) ([]gateway.RawLog, error) {
	rawLogs := []gateway.RawLog{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, event_id, raw_payload, ingested_at
				FROM raw_logs
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.RawLogStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			rawLog, err := scanRawLog(rows.Scan)
			if err != nil {
				return err
			}
			rawLogs = append(rawLogs, *rawLog)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return rawLogs, nil
}

func (s RawLogStore) Get(id int64) (*gateway.RawLog, error) {
	var rawLog *gateway.RawLog
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, event_id, raw_payload, ingested_at
				FROM raw_logs
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.RawLogStore.Get",
		ProcessRow: func(row *sql.Row) error {
			scanned, err := scanRawLog(row.Scan)
			if err != nil {
				return err
			}
			rawLog = scanned
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return rawLog, nil
}

func (s RawLogStore) Create(p Payload) (*gateway.RawLog, error) {
	rawPayload, isSet, err := p.GetRaw("raw_payload")
	if err != nil {
		return nil, err
	}
	if !isSet || len(rawPayload) == 0 {
		return nil, fmt.Errorf("field[raw_payload] is required: %w", ErrorInvalidInput)
	}
	eventId, _, err := p.GetInt64("event_id")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO raw_logs (event_id, raw_payload)
				VALUES (?, ?)`,
		Args:     []any{eventId, []byte(rawPayload)},
		FnSource: "models.RawLogStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s RawLogStore) Update(id int64, p Payload) (*gateway.RawLog, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if rawPayload, isSet, err := p.GetRaw("raw_payload"); err != nil {
		return nil, err
	} else if isSet {
		if len(rawPayload) == 0 {
			return nil, fmt.Errorf("field[raw_payload] is required: %w", ErrorInvalidInput)
		}
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     "UPDATE raw_logs SET raw_payload = ? WHERE id = ?",
			Args:     []any{[]byte(rawPayload), id},
			FnSource: "models.RawLogStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	if eventId, isSet, err := p.GetInt64("event_id"); err != nil {
		return nil, err
	} else if isSet {
		err := executeMysqlUpdate(mysqlQueryInput{
			Db:       s.Db,
			Stmt:     "UPDATE raw_logs SET event_id = ? WHERE id = ?",
			Args:     []any{eventId, id},
			FnSource: "models.RawLogStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s RawLogStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM raw_logs WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.RawLogStore.Delete",
	})
}

func scanRawLog(scan func(...any) error) (*gateway.RawLog, error) {
	var rawLog gateway.RawLog
	var eventId sql.NullInt64
	var rawPayload []byte
	if err := scan(&rawLog.Id, &eventId, &rawPayload, &rawLog.IngestedAt); err != nil {
		return nil, err
	}
	rawLog.EventId = eventId.Int64
	rawLog.RawPayload = json.RawMessage(rawPayload)
	return &rawLog, nil
}
