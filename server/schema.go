package server

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const inputSchemaJSON = `{
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["move", "key", "pointer_down", "pointer_move", "pointer_up", "grow", "shrink"]},
    "command": {"type": "string"},
    "key": {"type": "string"},
    "seq": {"type": "integer", "minimum": 0},
    "pointer_id": {"type": "integer"},
    "x": {"type": "number"},
    "y": {"type": "number"},
    "width": {"type": "integer", "minimum": 1},
    "height": {"type": "integer", "minimum": 1}
  },
  "allOf": [
    {"if": {"properties": {"type": {"const": "move"}}}, "then": {"required": ["command"]}},
    {"if": {"properties": {"type": {"const": "key"}}}, "then": {"required": ["key"]}},
    {"if": {"properties": {"type": {"enum": ["pointer_down", "pointer_move"]}}},
     "then": {"required": ["pointer_id", "x", "y", "width", "height"]}},
    {"if": {"properties": {"type": {"const": "pointer_up"}}}, "then": {"required": ["pointer_id"]}}
  ]
}`

var inputSchema = jsonschema.MustCompileString("input.schema.json", inputSchemaJSON)

// ValidateInput 校验入站 JSON 文本是否符合输入消息格式
func ValidateInput(payload []byte) error {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return err
	}
	return inputSchema.Validate(v)
}
