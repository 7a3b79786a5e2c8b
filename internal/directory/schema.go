package directory

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// usersSchema describes the minimum shape the directory source must return.
// Extra fields are allowed; the enrichment step ignores them.
const usersSchema = `{
  "type": "object",
  "required": ["users"],
  "properties": {
    "users": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "firstName", "lastName", "email"],
        "properties": {
          "id": {"type": "integer"},
          "firstName": {"type": "string"},
          "lastName": {"type": "string"},
          "email": {"type": "string"},
          "phone": {"type": "string"},
          "image": {"type": "string"},
          "age": {"type": "integer"},
          "address": {
            "type": "object",
            "properties": {
              "address": {"type": "string"},
              "city": {"type": "string"},
              "state": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var usersSchemaLoader = gojsonschema.NewStringLoader(usersSchema)

// validateUsersPayload checks a raw response body against the users schema.
func validateUsersPayload(body []byte) error {
	result, err := gojsonschema.Validate(usersSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		first := ""
		if errs := result.Errors(); len(errs) > 0 {
			first = errs[0].String()
		}
		return fmt.Errorf("payload does not match users schema: %s", first)
	}
	return nil
}
