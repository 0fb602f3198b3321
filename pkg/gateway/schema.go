package gateway

import "fmt"

const (
	// DefaultPageSize is the window size used by the interactive pages
	DefaultPageSize = 10

	// ReadHeavyPageSize is the window size used by the read-heavy raw log
	// and rule views
	ReadHeavyPageSize = 50
)

// Schema describes one resource exposed by the gateway's uniform CRUD
// surface. It carries no behaviour; the generic cursor and mutator are
// parametrised with it so that per-resource logic is pure configuration
type Schema struct {
	// Name is the resource's name, recorded as the target type on audit
	// records for mutations of this resource
	Name string

	// BasePath is the collection path on the gateway, with a trailing
	// slash, eg. "/assets/"
	BasePath string

	// PageSize is the fixed window size used when listing this resource
	PageSize int
}

// ListPath returns the path used for listing and creation
func (s Schema) ListPath() string {
	return s.BasePath
}

// ItemPath returns the path of a single persisted entity
func (s Schema) ItemPath(id int64) string {
	return fmt.Sprintf("%s%d", s.BasePath, id)
}

var (
	Users     = Schema{Name: "users", BasePath: "/users/", PageSize: DefaultPageSize}
	Roles     = Schema{Name: "roles", BasePath: "/roles/", PageSize: DefaultPageSize}
	Assets    = Schema{Name: "assets", BasePath: "/assets/", PageSize: DefaultPageSize}
	Events    = Schema{Name: "events", BasePath: "/events/", PageSize: DefaultPageSize}
	RawLogs   = Schema{Name: "rawlogs", BasePath: "/rawlogs/", PageSize: ReadHeavyPageSize}
	Rules     = Schema{Name: "rules", BasePath: "/rules/", PageSize: ReadHeavyPageSize}
	Alerts    = Schema{Name: "alerts", BasePath: "/alerts/", PageSize: DefaultPageSize}
	Incidents = Schema{Name: "incidents", BasePath: "/incidents/", PageSize: DefaultPageSize}
	AuditLogs = Schema{Name: "auditlogs", BasePath: "/auditlogs/", PageSize: DefaultPageSize}
)

// Schemas returns every resource schema known to the gateway in display
// order
func Schemas() []Schema {
	return []Schema{
		Users,
		Roles,
		Assets,
		Events,
		RawLogs,
		Rules,
		Alerts,
		Incidents,
		AuditLogs,
	}
}

func SchemaByName(name string) (Schema, error) {
	for _, schema := range Schemas() {
		if schema.Name == name {
			return schema, nil
		}
	}
	return Schema{}, fmt.Errorf("failed to find a resource named '%s'", name)
}
