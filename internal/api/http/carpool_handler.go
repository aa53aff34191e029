package http

import (
	"net/http"
	"strconv"
	"strings"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/service"

	"github.com/gorilla/mux"
)

type CarpoolHandler struct {
	carpoolSvc service.CarpoolService
	joinSvc    service.JoinService
}

func NewCarpoolHandler(carpoolSvc service.CarpoolService, joinSvc service.JoinService) *CarpoolHandler {
	return &CarpoolHandler{
		carpoolSvc: carpoolSvc,
		joinSvc:    joinSvc,
	}
}

func (h *CarpoolHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	views, err := h.carpoolSvc.ListCarpools(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if views == nil {
		views = []domain.CarpoolView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *CarpoolHandler) MyTrips(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	trips, err := h.carpoolSvc.MyTrips(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if trips == nil {
		trips = []domain.TripView{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (h *CarpoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := h.carpoolSvc.GetCarpool(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CarpoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var input service.CarpoolInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	carpool, err := h.carpoolSvc.CreateCarpool(r.Context(), userID, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, carpool)
}

func (h *CarpoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.CarpoolInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	carpool, err := h.carpoolSvc.UpdateCarpool(r.Context(), id, userID, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carpool)
}

func (h *CarpoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.carpoolSvc.DeleteCarpool(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type joinRequestBody struct {
	Message string `json:"message"`
}

func (h *CarpoolHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body joinRequestBody
	if r.ContentLength > 0 {
		if err := decodeBody(r, &body); err != nil {
			writeError(w, err)
			return
		}
	}
	req, err := h.joinSvc.RequestToJoin(r.Context(), id, userID, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *CarpoolHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.joinSvc.OwnerRequestQueue(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if views == nil {
		views = []domain.JoinRequestView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *CarpoolHandler) MyRequestStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.joinSvc.PassengerStatus(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

type decisionBody struct {
	Status string `json:"status"`
}

func (h *CarpoolHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body decisionBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := h.joinSvc.DecideRequest(r.Context(), requestID, userID, domain.JoinRequestStatus(body.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *CarpoolHandler) RemovePassenger(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	carpoolID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	passengerID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.joinSvc.RemovePassenger(r.Context(), carpoolID, userID, passengerID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func filterFromQuery(r *http.Request) domain.CarpoolFilter {
	q := r.URL.Query()
	filter := domain.CarpoolFilter{
		Search:        q.Get("search"),
		DateFrom:      q.Get("date_from"),
		DateTo:        q.Get("date_to"),
		AvailableOnly: q.Get("available_only") == "true",
		SortBy:        q.Get("sort_by"),
		SortDesc:      strings.EqualFold(q.Get("sort_order"), "desc"),
	}
	if t := q.Get("type"); t != "" && t != "all" {
		filter.Type = domain.CarpoolType(t)
	}
	if tags := q.Get("tags"); tags != "" {
		for _, raw := range strings.Split(tags, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32); err == nil {
				filter.TagIDs = append(filter.TagIDs, int32(id))
			}
		}
	}
	return filter
}
