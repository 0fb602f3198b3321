package testutils

import (
	"reflect"
	"strings"
	"testing"
)

// JsonTags returns the serialized field names of a struct (or pointer
// to struct), resolving json tags and skipping ignored fields
func JsonTags(v any) map[string]string {
	tags := map[string]string{}

	typ := reflect.TypeOf(v)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return tags
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		switch jsonTag {
		case "-":
			continue
		case "":
			tags[field.Name] = field.Type.Kind().String()
		default:
			tags[jsonTag] = field.Type.Kind().String()
		}
	}

	return tags
}

// ValidateSerializedNames asserts that every provided name is a
// serialized field of the entity, so form fields and payload keys
// cannot drift from the wire format
func ValidateSerializedNames(t *testing.T, entity any, names []string) {
	tags := JsonTags(entity)
	entityName := reflect.TypeOf(entity).Name()
	for _, name := range names {
		if _, ok := tags[name]; !ok {
			t.Errorf("field[%s] is not serialized by %s", name, entityName)
		}
	}
}
