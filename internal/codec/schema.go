package codec

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const payloadSchemaV2 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "created", "categories", "entries"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "created": {"type": "string", "format": "date-time"},
    "categories": {
      "type": "array",
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "username", "password", "url", "category", "notes", "created", "modified"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "title": {"type": "string"},
          "username": {"type": "string"},
          "password": {"type": "string"},
          "url": {"type": "string"},
          "category": {"type": "string", "minLength": 1},
          "notes": {"type": "string"},
          "created": {"type": "string", "format": "date-time"},
          "modified": {"type": "string", "format": "date-time"}
        }
      }
    }
  }
}`

// The 1.x payload was written from loosely typed dictionaries: only the entry
// list is mandatory and every field that is present must be a string.
const payloadSchemaV1 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["entries"],
  "properties": {
    "version": {"type": "string"},
    "created": {"type": "string"},
    "categories": {"type": "array", "items": {"type": "string"}},
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string"},
          "username": {"type": "string"},
          "password": {"type": "string"},
          "url": {"type": "string"},
          "category": {"type": "string"},
          "notes": {"type": "string"},
          "created": {"type": "string"},
          "modified": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaV2 = mustSchema(payloadSchemaV2)
	schemaV1 = mustSchema(payloadSchemaV1)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(errors.Wrap(err, "codec: compile payload schema"))
	}
	return s
}

// validate checks b against s and joins every violation into one error.
func validate(s *gojsonschema.Schema, b []byte) error {
	res, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return errors.Wrap(err, "payload is not valid JSON")
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Errorf("payload schema: %s", strings.Join(msgs, "; "))
}
