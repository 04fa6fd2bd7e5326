package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
	"github.com/colonyops/cockpit/pkg/utils/json"
)

// writeTools returns the mutation tools available from read_write upward.
func (p *provider) writeTools() []entity.ToolDefinition {
	return []entity.ToolDefinition{
		{
			Name: "create_reminder",
			Description: "Create a follow-up reminder. Accepts colloquial due phrases like " +
				"'tomorrow', 'in 3 days' or 'next friday'; dates without a time land at 9am.",
			Parameters: []entity.ParameterDef{
				{Name: "title", Type: "string", Description: "What the reminder is about.", Required: true},
				{Name: "due", Type: "string", Description: "When it is due, in plain language."},
				{Name: "person", Type: "string", Description: "Person the reminder concerns."},
				{Name: "place", Type: "string", Description: "Place the reminder concerns."},
				{Name: "assignee", Type: "string", Description: "Who should act on the reminder."},
				{Name: "notes", Type: "string", Description: "Extra context for whoever picks it up."},
			},
			Handler: p.createReminder,
		},
		{
			Name:        "send_message",
			Description: "Send an internal message to a staff member or volunteer.",
			Parameters: []entity.ParameterDef{
				{Name: "recipient", Type: "string", Description: "Recipient name or phone number.", Required: true},
				{Name: "body", Type: "string", Description: "The message text.", Required: true},
			},
			Handler: p.sendMessage,
		},
		{
			Name: "save_lookup",
			Description: "Save the result of the previous lookup in this turn under a label " +
				"so staff can pull it up later.",
			Parameters: []entity.ParameterDef{
				{Name: "label", Type: "string", Description: "Short label to save the lookup under.", Required: true},
			},
			Handler: p.saveLookup,
		},
		{
			Name:        "log_observation",
			Description: "Record a field observation about a place, such as cat counts or site conditions.",
			Parameters: []entity.ParameterDef{
				{Name: "place", Type: "string", Description: "Place the observation is about."},
				{Name: "note", Type: "string", Description: "The observation itself.", Required: true},
			},
			Handler: p.logObservation,
		},
		{
			Name: "log_discrepancy",
			Description: "Quietly flag a record whose data looks wrong or out of date. " +
				"Use when the user points out incorrect information.",
			Parameters: []entity.ParameterDef{
				{Name: "entity_type", Type: "string", Description: "Kind of record.", Enum: []string{"place", "person", "request", "cat"}},
				{Name: "entity", Type: "string", Description: "Which record the discrepancy is about."},
				{Name: "note", Type: "string", Description: "What looks wrong.", Required: true},
			},
			Handler: p.logDiscrepancy,
		},
		{
			Name: "log_unanswerable_question",
			Description: "Quietly record a question the assistant could not answer from available data, " +
				"so coverage gaps get reviewed.",
			Parameters: []entity.ParameterDef{
				{Name: "question", Type: "string", Description: "The question that could not be answered.", Required: true},
			},
			Handler: p.logUnanswerable,
		},
		{
			Name:        "create_draft_request",
			Description: "Open a draft trapping request for a place. Drafts start in 'new' status pending review.",
			Parameters: []entity.ParameterDef{
				{Name: "place", Type: "string", Description: "Place the request is for. Defaults to the place just looked up."},
				{Name: "summary", Type: "string", Description: "One-line description of the situation.", Required: true},
				{Name: "priority", Type: "string", Description: "Urgency of the case.", Enum: []string{"low", "normal", "high", "urgent"}},
			},
			Handler: p.createDraftRequest,
		},
	}
}

func (p *provider) createReminder(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	title := args.Str("title")
	if title == "" {
		return entity.Fail("title is required"), nil
	}

	r := &directory.Reminder{
		Title:     title,
		DueAt:     ParseDueTime(args.Str("due"), time.Now()),
		Notes:     args.Str("notes"),
		CreatedBy: tc.Caller.Name,
	}

	if ref := args.Str("assignee"); ref != "" {
		cand, err := p.dir.Resolve(ctx, directory.EntityPerson, ref)
		if err != nil {
			return nil, err
		}
		if cand == nil {
			return entity.NotFound(fmt.Sprintf("No person matched %q to assign the reminder to.", ref)), nil
		}
		r.AssigneeID = cand.ID
	}
	if ref := args.Str("person"); ref != "" {
		if cand, err := p.dir.Resolve(ctx, directory.EntityPerson, ref); err == nil && cand != nil {
			r.PersonID = cand.ID
		}
	}
	if ref := args.Str("place"); ref != "" {
		if cand, err := p.dir.Resolve(ctx, directory.EntityPlace, ref); err == nil && cand != nil {
			r.PlaceID = cand.ID
		}
	}

	// Fall back to whatever this turn just looked at.
	linkedPlace, linkedPerson := linkedIDs(tc)
	if r.PlaceID == "" {
		r.PlaceID = linkedPlace
	}
	if r.PersonID == "" {
		r.PersonID = linkedPerson
	}

	created, err := p.dir.CreateReminder(ctx, r)
	if err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"reminder": created,
		"message":  fmt.Sprintf("Reminder %q set for %s.", created.Title, created.DueAt.Format("Mon Jan 2 3:04pm")),
	}), nil
}

func (p *provider) sendMessage(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	recipient := args.Str("recipient")
	body := args.Str("body")
	if recipient == "" || body == "" {
		return entity.Fail("recipient and body are required"), nil
	}

	cand, err := p.dir.Resolve(ctx, directory.EntityPerson, recipient)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return entity.Fail(fmt.Sprintf("could not resolve recipient %q", recipient)), nil
	}

	id, err := p.dir.SendStaffMessage(ctx, cand.ID, tc.Caller.Name, body)
	if err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"message_id": id,
		"message":    fmt.Sprintf("Message sent to %s.", cand.Label),
	}), nil
}

func (p *provider) saveLookup(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	label := args.Str("label")
	if label == "" {
		return entity.Fail("label is required"), nil
	}

	last := tc.LastResult()
	if last == nil {
		return entity.Fail("nothing to save, run a lookup first"), nil
	}

	payload, err := json.MarshalString(last.Data)
	if err != nil {
		return nil, err
	}
	id, err := p.dir.SaveLookup(ctx, label, payload, tc.Caller.Name)
	if err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"saved_lookup_id": id,
		"message":         fmt.Sprintf("Saved the last lookup as %q.", label),
	}), nil
}

func (p *provider) logObservation(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	note := args.Str("note")
	if note == "" {
		return entity.Fail("note is required"), nil
	}

	e := &directory.JournalEntry{
		Kind:      directory.JournalObservation,
		Note:      note,
		CreatedBy: tc.Caller.Name,
	}
	if ref := args.Str("place"); ref != "" {
		if cand, err := p.dir.Resolve(ctx, directory.EntityPlace, ref); err == nil && cand != nil {
			e.PlaceID = cand.ID
		}
	}
	if e.PlaceID == "" {
		e.PlaceID, _ = linkedIDs(tc)
	}

	id, err := p.dir.AddJournalEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"journal_id": id,
		"message":    "Observation logged.",
	}), nil
}

// logDiscrepancy is a silent tool: it always reports success so the model
// moves on instead of dwelling on the bookkeeping.
func (p *provider) logDiscrepancy(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	e := &directory.JournalEntry{
		Kind:       directory.JournalDiscrepancy,
		EntityType: args.Str("entity_type"),
		Note:       args.Str("note"),
		CreatedBy:  tc.Caller.Name,
	}
	if ref := args.Str("entity"); ref != "" && e.EntityType != "" {
		if cand, err := p.dir.Resolve(ctx, directory.EntityType(e.EntityType), ref); err == nil && cand != nil {
			e.EntityID = cand.ID
		}
	}
	p.dir.AddJournalEntry(ctx, e)
	return entity.OK(map[string]interface{}{"message": "Noted."}), nil
}

// logUnanswerable is a silent tool; see logDiscrepancy.
func (p *provider) logUnanswerable(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	p.dir.AddJournalEntry(ctx, &directory.JournalEntry{
		Kind:      directory.JournalUnanswerable,
		Note:      args.Str("question"),
		CreatedBy: tc.Caller.Name,
	})
	return entity.OK(map[string]interface{}{"message": "Noted."}), nil
}

func (p *provider) createDraftRequest(ctx context.Context, args entity.ToolArgs, tc *entity.ToolContext) (*entity.ToolResult, error) {
	summary := args.Str("summary")
	if summary == "" {
		return entity.Fail("summary is required"), nil
	}

	placeID := ""
	if ref := args.Str("place"); ref != "" {
		cand, err := p.dir.Resolve(ctx, directory.EntityPlace, ref)
		if err != nil {
			return nil, err
		}
		if cand == nil {
			return entity.NotFound(fmt.Sprintf("No place matched %q.", ref)), nil
		}
		placeID = cand.ID
	} else {
		placeID, _ = linkedIDs(tc)
	}
	if placeID == "" {
		return entity.Fail("place is required"), nil
	}

	req, err := p.dir.CreateDraftRequest(ctx, placeID, summary, args.Str("priority"))
	if err != nil {
		return nil, err
	}
	return entity.OK(map[string]interface{}{
		"request": req,
		"message": "Draft request opened, pending review.",
	}), nil
}

// linkedIDs digs the most recently surfaced place and person out of the
// turn's earlier results so write tools can link records without asking
// the model for ids it never saw.
func linkedIDs(tc *entity.ToolContext) (placeID, personID string) {
	for i := len(tc.RecentResults) - 1; i >= 0; i-- {
		data, ok := tc.RecentResults[i].Data.(map[string]interface{})
		if !ok {
			continue
		}
		if placeID == "" {
			if place, ok := data["place"].(*directory.Place); ok {
				placeID = place.ID
			}
		}
		if personID == "" {
			if person, ok := data["person"].(*directory.Person); ok {
				personID = person.ID
			}
		}
		if placeID != "" && personID != "" {
			break
		}
	}
	return placeID, personID
}
