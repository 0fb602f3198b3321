package models

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type AssetStore struct {
	Db *sql.DB
}

func (s AssetStore) List(skip, limit int) ([]gateway.Asset, error) {
	assets := []gateway.Asset{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, name, asset_type, ip_address, hostname, environment
				FROM assets
				ORDER BY id
				LIMIT ? OFFSET ?`,
		Args:     []any{limit, skip},
		FnSource: "models.AssetStore.List",
		ProcessRows: func(rows *sql.Rows) error {
			var asset gateway.Asset
			if err := rows.Scan(&asset.Id, &asset.Name, &asset.AssetType, &asset.IpAddress, &asset.Hostname, &asset.Environment); err != nil {
				return err
			}
			assets = append(assets, asset)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (s AssetStore) Get(id int64) (*gateway.Asset, error) {
	var asset gateway.Asset
	err := executeMysqlSelect(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT id, name, asset_type, ip_address, hostname, environment
				FROM assets
				WHERE id = ?`,
		Args:     []any{id},
		FnSource: "models.AssetStore.Get",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&asset.Id, &asset.Name, &asset.AssetType, &asset.IpAddress, &asset.Hostname, &asset.Environment)
		},
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s AssetStore) Create(p Payload) (*gateway.Asset, error) {
	name, err := requireString(p, "name")
	if err != nil {
		return nil, err
	}
	assetType, err := requireString(p, "asset_type")
	if err != nil {
		return nil, err
	}
	environment, err := requireString(p, "environment")
	if err != nil {
		return nil, err
	}
	ipAddress, _, err := p.GetString("ip_address")
	if err != nil {
		return nil, err
	}
	hostname, _, err := p.GetString("hostname")
	if err != nil {
		return nil, err
	}
	insertedId, err := executeMysqlInsert(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			INSERT INTO assets (name, asset_type, ip_address, hostname, environment)
				VALUES (?, ?, ?, ?, ?)`,
		Args:     []any{name, assetType, ipAddress, hostname, environment},
		FnSource: "models.AssetStore.Create",
	})
	if err != nil {
		return nil, err
	}
	return s.Get(insertedId)
}

func (s AssetStore) Update(id int64, p Payload) (*gateway.Asset, error) {
	setClauses := []string{}
	args := []any{}
	for _, required := range []string{"name", "asset_type", "environment"} {
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
	for _, nullable := range []string{"ip_address", "hostname"} {
		value, isSet, err := p.GetString(nullable)
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
			Stmt:     fmt.Sprintf("UPDATE assets SET %s WHERE id = ?", strings.Join(setClauses, ", ")),
			Args:     args,
			FnSource: "models.AssetStore.Update",
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s AssetStore) Delete(id int64) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "DELETE FROM assets WHERE id = ?",
		Args:     []any{id},
		FnSource: "models.AssetStore.Delete",
	})
}
