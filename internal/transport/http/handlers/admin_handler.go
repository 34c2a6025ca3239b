package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jobast/bokkal/internal/domain/enums"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
	authsvc "github.com/jobast/bokkal/internal/services/auth"
	eventssvc "github.com/jobast/bokkal/internal/services/events"
	modsvc "github.com/jobast/bokkal/internal/services/moderation"
	userssvc "github.com/jobast/bokkal/internal/services/users"
	"github.com/jobast/bokkal/internal/transport/http/dto"
	httperrors "github.com/jobast/bokkal/internal/transport/http/errors"
)

type AdminHandler struct {
	moderation *modsvc.Service
	events     *eventssvc.Service
	users      *userssvc.Service
}

func NewAdminHandler(moderation *modsvc.Service, events *eventssvc.Service, users *userssvc.Service) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		events:     events,
		users:      users,
	}
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	if err := h.moderation.Approve(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerationResponse{
		OK:     true,
		Status: string(enums.EventStatusApproved),
	})
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	// The body is optional: rejecting without a reason is allowed.
	var req dto.RejectRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	if err := h.moderation.Reject(r.Context(), identity.UserID, chi.URLParam(r, "id"), req.Reason); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerationResponse{
		OK:     true,
		Status: string(enums.EventStatusRejected),
	})
}

func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.events == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	filter := pgrepo.AdminEventFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	if status := enums.EventStatus(r.URL.Query().Get("status")); status.Valid() {
		filter.Status = status
	}
	if category := enums.EventCategory(r.URL.Query().Get("category")); category.Valid() {
		filter.Category = category
	}
	if city := enums.City(r.URL.Query().Get("city")); city.Valid() {
		filter.City = city
	}

	events, total, err := h.events.AdminList(r.Context(), identity.UserID, filter)
	if err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdminEventListResponse{
		Events:   eventsToDTO(events),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.events == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	stats, err := h.events.Stats(r.Context(), identity.UserID)
	if err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdminStatsResponse{
		TotalEvents:   stats.TotalEvents,
		PendingEvents: stats.PendingEvents,
		TotalUsers:    stats.TotalUsers,
		VerifiedUsers: stats.VerifiedUsers,
	})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	filter := pgrepo.UserFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	if value, ok := queryBool(r, "is_admin"); ok {
		filter.IsAdmin = &value
	}
	if value, ok := queryBool(r, "is_verified"); ok {
		filter.IsVerified = &value
	}

	users, total, err := h.users.List(r.Context(), identity.UserID, filter)
	if err != nil {
		handleUsersError(w, err)
		return
	}

	response := dto.AdminUserListResponse{
		Users:    make([]dto.AdminUserResponse, 0, len(users)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, user := range users {
		response.Users = append(response.Users, dto.AdminUserResponse{
			ID:          user.ID,
			FullName:    user.FullName,
			Phone:       user.Phone,
			AvatarURL:   user.AvatarURL,
			IsVerified:  user.IsVerified,
			IsAdmin:     user.IsAdmin,
			EventsCount: user.EventsCount,
			CreatedAt:   user.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, response)
}

func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	h.setUserFlag(w, r, func(r *http.Request, actorID, targetID string, value bool) error {
		return h.users.SetAdmin(r.Context(), actorID, targetID, value)
	})
}

func (h *AdminHandler) SetVerified(w http.ResponseWriter, r *http.Request) {
	h.setUserFlag(w, r, func(r *http.Request, actorID, targetID string, value bool) error {
		return h.users.SetVerified(r.Context(), actorID, targetID, value)
	})
}

func (h *AdminHandler) setUserFlag(w http.ResponseWriter, r *http.Request, apply func(*http.Request, string, string, bool) error) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.UserFlagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := apply(r, identity.UserID, chi.URLParam(r, "id"), req.Value); err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserFlagResponse{OK: true})
}

func handleUsersError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrSelfDemotion):
		writeForbidden(w, "SELF_DEMOTION", "admins cannot revoke their own admin flag")
	case errors.Is(err, userssvc.ErrUnauthenticated):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
	case errors.Is(err, userssvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "operation not allowed")
	case errors.Is(err, pgrepo.ErrUserNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func queryBool(r *http.Request, key string) (bool, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
