package tools

import (
	"github.com/cloudwego/eino/schema"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
)

// ToolInfos converts tool definitions to the Eino schema the chat model
// consumes for function calling.
func ToolInfos(defs []*entity.ToolDefinition) []*schema.ToolInfo {
	out := make([]*schema.ToolInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, toolInfo(def))
	}
	return out
}

func toolInfo(def *entity.ToolDefinition) *schema.ToolInfo {
	params := make(map[string]*schema.ParameterInfo, len(def.Parameters))
	for _, p := range def.Parameters {
		params[p.Name] = &schema.ParameterInfo{
			Desc:     p.Description,
			Type:     toSchemaDataType(p.Type),
			Required: p.Required,
			Enum:     p.Enum,
		}
	}

	return &schema.ToolInfo{
		Name:        def.Name,
		Desc:        def.Description,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
}

// toSchemaDataType converts a string type name to the corresponding Eino
// schema.DataType.
func toSchemaDataType(t string) schema.DataType {
	switch t {
	case "string":
		return schema.String
	case "number":
		return schema.Number
	case "integer":
		return schema.Integer
	case "boolean":
		return schema.Boolean
	case "object":
		return schema.Object
	case "array":
		return schema.Array
	default:
		return schema.String
	}
}
