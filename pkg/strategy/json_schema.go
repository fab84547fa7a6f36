package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// DefinitionSchema returns the JSON schema for a strategy definition file.
// The surrounding application's condition-builder UI validates trees against
// this schema before handing them to the engine.
func DefinitionSchema() (string, error) {
	return ToJSONSchema(Definition{})
}
