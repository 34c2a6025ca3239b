package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
	authsvc "github.com/jobast/bokkal/internal/services/auth"
	eventssvc "github.com/jobast/bokkal/internal/services/events"
	modsvc "github.com/jobast/bokkal/internal/services/moderation"
	"github.com/jobast/bokkal/internal/transport/http/dto"
	httperrors "github.com/jobast/bokkal/internal/transport/http/errors"
)

type EventsHandler struct {
	events     *eventssvc.Service
	moderation *modsvc.Service
}

func NewEventsHandler(events *eventssvc.Service, moderation *modsvc.Service) *EventsHandler {
	return &EventsHandler{
		events:     events,
		moderation: moderation,
	}
}

// List is the public listing. It only ever serves approved events; a status
// query parameter is ignored so unmoderated submissions stay invisible here.
// Pending and rejected events are reachable through the admin listing only.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	filter := pgrepo.EventFilter{Status: enums.EventStatusApproved}
	if category := enums.EventCategory(r.URL.Query().Get("category")); category.Valid() {
		filter.Category = category
	}
	if city := enums.City(r.URL.Query().Get("city")); city.Valid() {
		filter.City = city
	}
	if owner := r.URL.Query().Get("owner"); owner != "" {
		filter.OwnerUserID = owner
	}

	events, err := h.events.List(r.Context(), filter)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list events")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.EventListResponse{Events: eventsToDTO(events)})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	event, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgrepo.ErrEventNotFound) {
			writeNotFound(w, "EVENT_NOT_FOUND", "event not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load event")
		return
	}

	httperrors.Write(w, http.StatusOK, eventToDTO(event))
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	submission, ok := submissionFromRequest(w, req)
	if !ok {
		return
	}

	event, err := h.moderation.Submit(r.Context(), identity.UserID, submission)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, eventToDTO(event))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.events == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	var req dto.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	patch, ok := patchFromRequest(w, req)
	if !ok {
		return
	}

	if err := h.events.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), patch); err != nil {
		handleEventsError(w, err)
		return
	}

	event, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load event")
		return
	}

	httperrors.Write(w, http.StatusOK, eventToDTO(event))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	if err := h.moderation.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.DeletedResponse{OK: true})
}

func submissionFromRequest(w http.ResponseWriter, req dto.EventCreateRequest) (modsvc.Submission, bool) {
	category := enums.EventCategory(req.Category)
	city := enums.City(req.LocationCity)

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "start_date must be RFC 3339")
		return modsvc.Submission{}, false
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "end_date must be RFC 3339")
			return modsvc.Submission{}, false
		}
		endDate = &parsed
	}

	return modsvc.Submission{
		Title:           req.Title,
		Description:     req.Description,
		Category:        category,
		Subcategory:     req.Subcategory,
		Tags:            req.Tags,
		LocationName:    req.LocationName,
		LocationCity:    city,
		LocationLat:     req.LocationLat,
		LocationLon:     req.LocationLng,
		StartDate:       startDate,
		EndDate:         endDate,
		Price:           req.Price,
		TargetAudience:  req.TargetAudience,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		ContactWhatsApp: req.ContactWhatsApp,
		ImageURL:        req.ImageURL,
	}, true
}

func patchFromRequest(w http.ResponseWriter, req dto.EventUpdateRequest) (pgrepo.EventPatch, bool) {
	patch := pgrepo.EventPatch{
		Title:           req.Title,
		Description:     req.Description,
		Subcategory:     req.Subcategory,
		Tags:            req.Tags,
		LocationName:    req.LocationName,
		LocationLat:     req.LocationLat,
		LocationLon:     req.LocationLng,
		Price:           req.Price,
		TargetAudience:  req.TargetAudience,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		ContactWhatsApp: req.ContactWhatsApp,
		ImageURL:        req.ImageURL,
	}

	if req.Category != nil {
		category := enums.EventCategory(*req.Category)
		if !category.Valid() {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown category")
			return pgrepo.EventPatch{}, false
		}
		patch.Category = &category
	}
	if req.LocationCity != nil {
		city := enums.City(*req.LocationCity)
		if !city.Valid() {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown city")
			return pgrepo.EventPatch{}, false
		}
		patch.LocationCity = &city
	}
	if req.StartDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "start_date must be RFC 3339")
			return pgrepo.EventPatch{}, false
		}
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "end_date must be RFC 3339")
			return pgrepo.EventPatch{}, false
		}
		patch.EndDate = &parsed
	}

	return patch, true
}

func handleModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, modsvc.ErrUnauthenticated):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
	case errors.Is(err, modsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "operation not allowed")
	case errors.Is(err, pgrepo.ErrEventNotFound):
		writeNotFound(w, "EVENT_NOT_FOUND", "event not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func handleEventsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventssvc.ErrUnauthenticated):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
	case errors.Is(err, eventssvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "operation not allowed")
	case errors.Is(err, pgrepo.ErrEventNotFound):
		writeNotFound(w, "EVENT_NOT_FOUND", "event not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func eventsToDTO(events []model.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, eventToDTO(event))
	}
	return out
}

func eventToDTO(event model.Event) dto.EventResponse {
	response := dto.EventResponse{
		ID:              event.ID,
		OwnerUserID:     event.OwnerUserID,
		Title:           event.Title,
		Description:     event.Description,
		Category:        string(event.Category),
		Subcategory:     event.Subcategory,
		Tags:            event.Tags,
		LocationName:    event.LocationName,
		LocationCity:    string(event.LocationCity),
		LocationLat:     event.LocationLat,
		LocationLng:     event.LocationLon,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		Price:           event.Price,
		TargetAudience:  event.TargetAudience,
		ContactPhone:    event.ContactPhone,
		ContactEmail:    event.ContactEmail,
		ContactWhatsApp: event.ContactWhatsApp,
		ImageURL:        event.ImageURL,
		Status:          string(event.Status),
		RejectionReason: event.RejectionReason,
		ReviewedAt:      event.ReviewedAt,
		ReviewedBy:      event.ReviewedBy,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
	if event.Owner != nil {
		response.Owner = &dto.EventOwnerResponse{
			ID:         event.Owner.ID,
			FullName:   event.Owner.FullName,
			IsVerified: event.Owner.IsVerified,
			IsAdmin:    event.Owner.IsAdmin,
		}
	}
	return response
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
