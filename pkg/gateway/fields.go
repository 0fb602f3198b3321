package gateway

// FieldSpecsFor returns the editable fields for a resource; timestamps
// and identities are server-managed and intentionally absent
func FieldSpecsFor(schema Schema) []FieldSpec {
	switch schema.Name {
	case Users.Name:
		return []FieldSpec{
			{Name: "username", Label: "Username", Kind: FieldString, Required: true},
			{Name: "email", Label: "Email", Kind: FieldString, Required: true},
			{Name: "password", Label: "Password", Kind: FieldSecret},
			{Name: "is_active", Label: "Active", Kind: FieldBoolean, Default: "true"},
			{Name: "role_ids", Label: "Role Ids", Kind: FieldJson, Default: "[]"},
		}
	case Roles.Name:
		return []FieldSpec{
			{Name: "name", Label: "Name", Kind: FieldString, Required: true},
		}
	case Assets.Name:
		return []FieldSpec{
			{Name: "name", Label: "Name", Kind: FieldString, Required: true},
			{Name: "asset_type", Label: "Type", Kind: FieldString, Required: true},
			{Name: "ip_address", Label: "Ip Address", Kind: FieldString},
			{Name: "hostname", Label: "Hostname", Kind: FieldString},
			{Name: "environment", Label: "Environment", Kind: FieldString, Required: true},
		}
	case Events.Name:
		return []FieldSpec{
			{Name: "event_type", Label: "Event Type", Kind: FieldString, Required: true},
			{Name: "severity", Label: "Severity", Kind: FieldString, Required: true, Default: string(SeverityLow)},
			{Name: "message", Label: "Message", Kind: FieldString, Required: true},
			{Name: "asset_id", Label: "Asset Id", Kind: FieldInteger},
		}
	case RawLogs.Name:
		return []FieldSpec{
			{Name: "event_id", Label: "Event Id", Kind: FieldInteger},
			{Name: "raw_payload", Label: "Raw Payload", Kind: FieldJson, Required: true},
		}
	case Rules.Name:
		return []FieldSpec{
			{Name: "name", Label: "Name", Kind: FieldString, Required: true},
			{Name: "description", Label: "Description", Kind: FieldString},
			{Name: "severity", Label: "Severity", Kind: FieldString, Required: true, Default: string(SeverityLow)},
			{Name: "enabled", Label: "Enabled", Kind: FieldBoolean, Default: "true"},
			{Name: "conditions", Label: "Conditions", Kind: FieldJson, Default: "[]"},
		}
	case Alerts.Name:
		return []FieldSpec{
			{Name: "severity", Label: "Severity", Kind: FieldString, Required: true, Default: string(SeverityLow)},
			{Name: "status", Label: "Status", Kind: FieldString, Required: true, Default: string(AlertStatusOpen)},
			{Name: "rule_id", Label: "Rule Id", Kind: FieldInteger},
			{Name: "event_id", Label: "Event Id", Kind: FieldInteger},
		}
	case Incidents.Name:
		return []FieldSpec{
			{Name: "title", Label: "Title", Kind: FieldString, Required: true},
			{Name: "description", Label: "Description", Kind: FieldString},
			{Name: "status", Label: "Status", Kind: FieldString, Required: true, Default: "open"},
			{Name: "severity", Label: "Severity", Kind: FieldString, Required: true, Default: string(SeverityLow)},
			{Name: "alert_ids", Label: "Alert Ids", Kind: FieldJson, Default: "[]"},
		}
	case AuditLogs.Name:
		return []FieldSpec{
			{Name: "action", Label: "Action", Kind: FieldString, Required: true},
			{Name: "target_type", Label: "Target Type", Kind: FieldString, Required: true},
			{Name: "target_id", Label: "Target Id", Kind: FieldInteger},
			{Name: "user_id", Label: "User Id", Kind: FieldInteger},
		}
	}
	return nil
}
