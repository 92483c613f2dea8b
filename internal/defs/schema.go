// internal/defs/schema.go
package defs

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema builds the JSON schema of the catalog document so designers can
// validate hand-edited files.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(Catalog{}))
	schema.Title = "Tower Defense Catalog"
	schema.Description = "Tower, enemy, power-up and map definitions consumed by the simulation."
	return schema
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog schema: %w", err)
	}
	return append(data, '\n'), nil
}
