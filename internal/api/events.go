package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/events-assistant/internal/commands"
	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/validator"
)

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := a.commands.ListEvents(r.Context())
	if err != nil {
		a.commandErrorResponse(w, r, fmt.Errorf("list events: %w", err))
		return
	}

	resp := mapSlice(events, mapToEventResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	event, err := a.commands.GetEvent(r.Context(), id)
	if err != nil {
		a.commandErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		return
	}

	resp := mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Start       string `json:"start"`
		End         string `json:"end"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := &model.EventCreate{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	v.Check(info.Name != "", "name", "name must be provided")
	v.Check(req.Start != "", "start", "start must be provided")
	v.Check(req.End != "", "end", "end must be provided")

	if req.Start != "" {
		info.Start, err = commands.ParseTime("start", req.Start)
		v.Check(err == nil, "start", "start must be a UTC time like 2025-01-31 18:00")
	}
	if req.End != "" {
		info.End, err = commands.ParseTime("end", req.End)
		v.Check(err == nil, "end", "end must be a UTC time like 2025-01-31 21:00")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.commands.CreateEvent(r.Context(), identity, info)
	if err != nil {
		a.commandErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	resp := mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	id, err := eventIDFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.commands.DeleteEvent(r.Context(), identity, id); err != nil {
		a.commandErrorResponse(w, r, fmt.Errorf("delete event: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) cancelEventHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	id, err := eventIDFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	event, err := a.commands.CancelEvent(r.Context(), identity, id)
	if err != nil {
		a.commandErrorResponse(w, r, fmt.Errorf("cancel event: %w", err))
		return
	}

	resp := mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

type signupResp struct {
	Event   *eventResp `json:"event"`
	Warning string     `json:"warning,omitempty"`
}

func (a *Api) signupHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	id, err := eventIDFrom(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Position string `json:"position"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	position := strings.TrimSpace(req.Position)

	v := validator.New()
	v.Check(position != "", "position", "position must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	resp := &signupResp{}
	event, err := a.commands.Signup(r.Context(), identity, id, position)
	switch {
	case err == nil:
	case event != nil && errors.Is(err, model.ErrDelivery):
		a.logger.Errorw("signup roster delivery", "request_id", requestIDFrom(r), "event_id", id, "err", err)
		resp.Warning = "signed up, but the roster message could not be updated"
	default:
		a.commandErrorResponse(w, r, fmt.Errorf("signup: %w", err))
		return
	}

	resp.Event = mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
