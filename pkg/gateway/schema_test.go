package gateway

import (
	"testing"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPaths(t *testing.T) {
	assert.Equal(t, "/assets/", Assets.ListPath())
	assert.Equal(t, "/assets/42", Assets.ItemPath(42))
}

func TestSchemaPageSizes(t *testing.T) {
	for _, schema := range Schemas() {
		switch schema.Name {
		case RawLogs.Name, Rules.Name:
			assert.Equal(t, ReadHeavyPageSize, schema.PageSize, schema.Name)
		default:
			assert.Equal(t, DefaultPageSize, schema.PageSize, schema.Name)
		}
	}
}

func TestSchemaByName(t *testing.T) {
	schema, err := SchemaByName("incidents")
	require.NoError(t, err)
	assert.Equal(t, Incidents, schema)

	_, err = SchemaByName("incident")
	require.Error(t, err)
}

func TestEverySchemaHasFieldSpecs(t *testing.T) {
	for _, schema := range Schemas() {
		assert.NotEmpty(t, FieldSpecsFor(schema), schema.Name)
	}
}

// entities maps each schema to its wire type so that the field specs
// can be checked against what the type actually serialises
var entities = map[string]any{
	Users.Name:     User{},
	Roles.Name:     Role{},
	Assets.Name:    Asset{},
	Events.Name:    Event{},
	RawLogs.Name:   RawLog{},
	Rules.Name:     Rule{},
	Alerts.Name:    Alert{},
	Incidents.Name: Incident{},
	AuditLogs.Name: AuditLog{},
}

func TestFieldSpecsMatchSerializedNames(t *testing.T) {
	for _, schema := range Schemas() {
		t.Run(schema.Name, func(t *testing.T) {
			entity, ok := entities[schema.Name]
			require.True(t, ok)
			names := []string{}
			for _, field := range FieldSpecsFor(schema) {
				// secrets are write-only and never serialised back
				if field.Kind == FieldSecret {
					continue
				}
				names = append(names, field.Name)
			}
			testutils.ValidateSerializedNames(t, entity, names)
		})
	}
}
