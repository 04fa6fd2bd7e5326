package tools

import (
	"context"
	"fmt"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
)

// readTools returns the lookup tools available from read_only upward.
func (p *provider) readTools() []entity.ToolDefinition {
	return []entity.ToolDefinition{
		{
			Name: "search_places",
			Description: "Search colony sites and addresses by name, street or area. " +
				"Area accepts colloquial region names like 'west county' or 'the springs' and broadens the search accordingly.",
			Parameters: []entity.ParameterDef{
				{Name: "query", Type: "string", Description: "Name or street fragment to match."},
				{Name: "area", Type: "string", Description: "Colloquial area or city name to search within."},
			},
			Handler: p.searchPlaces,
		},
		{
			Name:        "get_place_details",
			Description: "Look up one place by name or address and return its details, open requests and known cats.",
			Parameters: []entity.ParameterDef{
				{Name: "place", Type: "string", Description: "Place name or address.", Required: true},
			},
			Handler: p.getPlaceDetails,
		},
		{
			Name:        "search_requests",
			Description: "Search trapping requests by summary text, status or area.",
			Parameters: []entity.ParameterDef{
				{Name: "query", Type: "string", Description: "Text to match against request summaries."},
				{Name: "status", Type: "string", Description: "Restrict to one case status.", Enum: directory.RequestStatuses},
				{Name: "area", Type: "string", Description: "Colloquial area or city name."},
			},
			Handler: p.searchRequests,
		},
		{
			Name:        "get_request_details",
			Description: "Look up one trapping request by summary text or id, with its place.",
			Parameters: []entity.ParameterDef{
				{Name: "request", Type: "string", Description: "Request summary fragment or id.", Required: true},
			},
			Handler: p.getRequestDetails,
		},
		{
			Name:        "search_people",
			Description: "Search requesters, volunteers and staff by name or phone number.",
			Parameters: []entity.ParameterDef{
				{Name: "query", Type: "string", Description: "Name fragment or phone number.", Required: true},
			},
			Handler: p.searchPeople,
		},
		{
			Name:        "get_person_details",
			Description: "Look up one person by name or phone and return their contact details.",
			Parameters: []entity.ParameterDef{
				{Name: "person", Type: "string", Description: "Person name or phone number.", Required: true},
			},
			Handler: p.getPersonDetails,
		},
		{
			Name:        "search_cats",
			Description: "Search cats by name or microchip number.",
			Parameters: []entity.ParameterDef{
				{Name: "query", Type: "string", Description: "Cat name or microchip fragment.", Required: true},
			},
			Handler: p.searchCats,
		},
		{
			Name:        "get_upcoming_appointments",
			Description: "List clinic appointments scheduled in the coming days.",
			Parameters: []entity.ParameterDef{
				{Name: "days", Type: "integer", Description: "How many days ahead to look (default 7)."},
			},
			Handler: p.upcomingAppointments,
		},
		{
			Name:        "list_reminders",
			Description: "List pending reminders, optionally for one assignee.",
			Parameters: []entity.ParameterDef{
				{Name: "assignee", Type: "string", Description: "Assignee name to filter by."},
			},
			Handler: p.listReminders,
		},
	}
}

func (p *provider) searchPlaces(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	query := args.Str("query")
	area := args.Str("area")
	if query == "" && area == "" {
		return entity.Fail("either query or area is required"), nil
	}

	var areas []string
	if area != "" {
		areas = p.regions.Expand(area)
	}

	places, err := p.dir.SearchPlaces(ctx, query, areas)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return entity.NotFound("No places matched that search."), nil
	}
	return entity.OK(map[string]interface{}{
		"found":  true,
		"count":  len(places),
		"places": places,
	}), nil
}

func (p *provider) getPlaceDetails(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	ref := args.Str("place")
	if ref == "" {
		return entity.Fail("place is required"), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityPlace, ref)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.NotFound(fmt.Sprintf("No place matched %q.", ref)), nil
	}

	place, err := p.dir.GetPlace(ctx, cand.ID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return entity.NotFound(fmt.Sprintf("No place matched %q.", ref)), nil
	}

	requests, err := p.dir.RequestsForPlace(ctx, place.ID)
	if err != nil {
		return nil, err
	}
	cats, err := p.dir.CatsForPlace(ctx, place.ID)
	if err != nil {
		return nil, err
	}

	return entity.OK(map[string]interface{}{
		"found":    true,
		"place":    place,
		"requests": requests,
		"cats":     cats,
	}), nil
}

func (p *provider) searchRequests(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	filter := directory.RequestFilter{
		Query:  args.Str("query"),
		Status: args.Str("status"),
	}
	if filter.Status != "" && !directory.ValidRequestStatus(filter.Status) {
		return entity.Fail(fmt.Sprintf("invalid status %q", filter.Status)), nil
	}
	if area := args.Str("area"); area != "" {
		filter.Areas = p.regions.Expand(area)
	}

	requests, err := p.dir.SearchRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return entity.NotFound("No requests matched that search."), nil
	}
	return entity.OK(map[string]interface{}{
		"found":    true,
		"count":    len(requests),
		"requests": requests,
	}), nil
}

func (p *provider) getRequestDetails(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	ref := args.Str("request")
	if ref == "" {
		return entity.Fail("request is required"), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityRequest, ref)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.NotFound(fmt.Sprintf("No request matched %q.", ref)), nil
	}

	req, err := p.dir.GetRequest(ctx, cand.ID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return entity.NotFound(fmt.Sprintf("No request matched %q.", ref)), nil
	}

	data := map[string]interface{}{
		"found":   true,
		"request": req,
	}
	if req.PlaceID != "" {
		if place, err := p.dir.GetPlace(ctx, req.PlaceID); err == nil && place != nil {
			data["place"] = place
		}
	}
	return entity.OK(data), nil
}

func (p *provider) searchPeople(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	query := args.Str("query")
	if query == "" {
		return entity.Fail("query is required"), nil
	}

	people, err := p.dir.SearchPeople(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return entity.NotFound("No people matched that search."), nil
	}
	return entity.OK(map[string]interface{}{
		"found":  true,
		"count":  len(people),
		"people": people,
	}), nil
}

func (p *provider) getPersonDetails(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	ref := args.Str("person")
	if ref == "" {
		return entity.Fail("person is required"), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityPerson, ref)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.NotFound(fmt.Sprintf("No person matched %q.", ref)), nil
	}

	person, err := p.dir.GetPerson(ctx, cand.ID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return entity.NotFound(fmt.Sprintf("No person matched %q.", ref)), nil
	}
	return entity.OK(map[string]interface{}{
		"found":  true,
		"person": person,
	}), nil
}

func (p *provider) searchCats(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	query := args.Str("query")
	if query == "" {
		return entity.Fail("query is required"), nil
	}

	cats, err := p.dir.SearchCats(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return entity.NotFound("No cats matched that search."), nil
	}
	return entity.OK(map[string]interface{}{
		"found": true,
		"count": len(cats),
		"cats":  cats,
	}), nil
}

func (p *provider) upcomingAppointments(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	days := args.Int("days")
	appts, err := p.dir.UpcomingAppointments(ctx, days)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return entity.NotFound("No appointments in that window."), nil
	}
	return entity.OK(map[string]interface{}{
		"found":        true,
		"count":        len(appts),
		"appointments": appts,
	}), nil
}

func (p *provider) listReminders(ctx context.Context, args entity.ToolArgs, _ *entity.ToolContext) (*entity.ToolResult, error) {
	assigneeID := ""
	if ref := args.Str("assignee"); ref != "" {
		cand, err := p.dir.Resolve(ctx, directory.EntityPerson, ref)
		if err != nil {
			return nil, err
		}
		if cand == nil {
			return entity.NotFound(fmt.Sprintf("No person matched %q.", ref)), nil
		}
		assigneeID = cand.ID
	}

	reminders, err := p.dir.ListReminders(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return entity.NotFound("No pending reminders."), nil
	}
	return entity.OK(map[string]interface{}{
		"found":     true,
		"count":     len(reminders),
		"reminders": reminders,
	}), nil
}
