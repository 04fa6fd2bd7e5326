package service

import (
	"github.com/cloudwego/eino/schema"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
)

// ToSchemaMessages converts domain messages to Eino schema messages.
func ToSchemaMessages(msgs []*entity.Message) []*schema.Message {
	result := make([]*schema.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, ToSchemaMessage(msg))
	}
	return result
}

// ToSchemaMessage converts one domain message to an Eino schema message.
func ToSchemaMessage(msg *entity.Message) *schema.Message {
	sm := &schema.Message{
		Role:       toSchemaRole(msg.Role),
		Content:    msg.Content,
		Name:       msg.Name,
		ToolCallID: msg.ToolCallID,
	}

	if len(msg.ToolCalls) > 0 {
		sm.ToolCalls = make([]schema.ToolCall, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			sm.ToolCalls = append(sm.ToolCalls, schema.ToolCall{
				ID: tc.ID,
				Function: schema.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
	}
	return sm
}

func toSchemaRole(role entity.Role) schema.RoleType {
	switch role {
	case entity.RoleUser:
		return schema.User
	case entity.RoleAssistant:
		return schema.Assistant
	case entity.RoleSystem:
		return schema.System
	case entity.RoleTool:
		return schema.Tool
	default:
		return schema.User
	}
}
