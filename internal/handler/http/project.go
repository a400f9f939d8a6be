package http

import (
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
)

type ProjectHandler interface {
	ListProjects(w http.ResponseWriter, r *http.Request)
	CreateProject(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)

	ListTasks(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	MoveTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
	ListMyTasks(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &projectHandlerImpl{projectService: projectService}
}

func (h *projectHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := project.ListProjectsQuery{Status: r.URL.Query().Get("status")}
	result, err := h.projectService.ListProjects(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.projectService.CreateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created", result)
}

func (h *projectHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.projectService.GetProject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req project.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.projectService.UpdateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project updated", result)
}

func (h *projectHandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	query := project.ListTasksQuery{Status: r.URL.Query().Get("status")}
	result, err := h.projectService.ListProjectTasks(r.Context(), projectID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req project.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ProjectID = projectID

	result, err := h.projectService.CreateTask(r.Context(), principal(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task created", result)
}

func (h *projectHandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req project.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.projectService.UpdateTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task updated", result)
}

func (h *projectHandlerImpl) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req project.TaskStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.projectService.MoveTask(r.Context(), principal(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.projectService.DeleteTask(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *projectHandlerImpl) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	query := project.ListTasksQuery{Status: r.URL.Query().Get("status")}
	result, err := h.projectService.ListMyTasks(r.Context(), principal(r).ID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
