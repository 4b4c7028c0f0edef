package store

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// GetTypeSchema returns a JSON Schema representation of the stored value's type.
func (s *Store) GetTypeSchema(key string) (map[string]interface{}, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.RLock()
	c, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return TypeToSchema(c.typ()), nil
}

// TypeToSchema converts a reflect.Type to a JSON schema.
//
// Struct types are expanded inline without $ref so the result can be matched
// field by field. If the reflector output cannot be decoded, a schema for an
// empty object is returned.
func TypeToSchema(t reflect.Type) map[string]interface{} {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.ReflectFromType(t)

	data, err := json.Marshal(schema)
	if err != nil {
		return emptyObjectSchema()
	}

	var schemaMap map[string]interface{}
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return emptyObjectSchema()
	}

	if _, exists := schemaMap["type"]; !exists {
		schemaMap["type"] = "object"
	}
	if schemaMap["type"] == "object" {
		if _, exists := schemaMap["properties"]; !exists {
			schemaMap["properties"] = map[string]interface{}{}
		}
	}
	return schemaMap
}

func emptyObjectSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
