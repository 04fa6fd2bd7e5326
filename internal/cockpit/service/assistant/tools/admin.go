package tools

import (
	"context"
	"fmt"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
)

// adminTools returns the case-management tools restricted to the full tier.
func (p *provider) adminTools() []entity.ToolDefinition {
	return []entity.ToolDefinition{
		{
			Name:        "update_request_status",
			Description: "Move a trapping request to a different case status.",
			Parameters: []entity.ParameterDef{
				{Name: "request", Type: "string", Description: "Request summary fragment or id.", Required: true},
				{Name: "status", Type: "string", Description: "The new case status.", Required: true, Enum: directory.RequestStatuses},
			},
			Handler: p.updateRequestStatus,
		},
		{
			Name:        "reassign_request",
			Description: "Hand a trapping request to a different trapper or volunteer.",
			Parameters: []entity.ParameterDef{
				{Name: "request", Type: "string", Description: "Request summary fragment or id.", Required: true},
				{Name: "assignee", Type: "string", Description: "Who should take the request.", Required: true},
			},
			Handler: p.reassignRequest,
		},
	}
}

func (p *provider) updateRequestStatus(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	ref := args.Str("request")
	status := args.Str("status")
	if ref == "" || status == "" {
		return entity.Fail("request and status are required"), nil
	}
	if !directory.ValidRequestStatus(status) {
		return entity.Fail(fmt.Sprintf("invalid status %q", status)), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityRequest, ref)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.NotFound(fmt.Sprintf("No request matched %q.", ref)), nil
	}

	if err := p.dir.UpdateRequestStatus(ctx, cand.ID, status); err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"request_id": cand.ID,
		"status":     status,
		"message":    fmt.Sprintf("Request %q moved to %s.", cand.Label, status),
	}), nil
}

func (p *provider) reassignRequest(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	ref := args.Str("request")
	assignee := args.Str("assignee")
	if ref == "" || assignee == "" {
		return entity.Fail("request and assignee are required"), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityRequest, ref)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.NotFound(fmt.Sprintf("No request matched %q.", ref)), nil
	}

	person, err := p.dir.Resolve(ctx, directory.EntityPerson, assignee)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return entity.NotFound(fmt.Sprintf("No person matched %q.", assignee)), nil
	}

	if err := p.dir.ReassignRequest(ctx, cand.ID, person.ID); err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"request_id":  cand.ID,
		"assignee_id": person.ID,
		"message":     fmt.Sprintf("Request %q handed to %s.", cand.Label, person.Label),
	}), nil
}
