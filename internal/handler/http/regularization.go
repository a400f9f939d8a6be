package http

import (
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
)

type RegularizationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type regularizationHandlerImpl struct {
	regularizationService regularization.RegularizationService
}

func NewRegularizationHandler(regularizationService regularization.RegularizationService) RegularizationHandler {
	return &regularizationHandlerImpl{regularizationService: regularizationService}
}

func (h *regularizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req regularization.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.regularizationService.Create(r.Context(), principal(r).ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Regularization request submitted", result)
}

func (h *regularizationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	query := regularization.ListQuery{Status: r.URL.Query().Get("status")}
	result, err := h.regularizationService.ListMine(r.Context(), principal(r).ID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *regularizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := regularization.ListQuery{Status: r.URL.Query().Get("status")}
	result, err := h.regularizationService.List(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *regularizationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req regularization.DecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.regularizationService.Decide(r.Context(), principal(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Decision recorded", result)
}
