package handler

import (
	"context"
	"strconv"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	jobuc "job-board/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobUsecase interface {
	PostJob(ctx context.Context, company string, in jobuc.PostJobInput) (job.Job, error)
	UpdateJob(ctx context.Context, company string, id uuid.UUID, in jobuc.UpdateJobInput) (job.Job, error)
	ToggleActive(ctx context.Context, company string, id uuid.UUID) (job.Job, error)
	RemoveJob(ctx context.Context, company string, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	JobsByCompany(ctx context.Context, company string) ([]job.Job, error)
	SearchJobs(ctx context.Context, params jobuc.SearchParams) ([]job.Job, error)
}

type JobsHandler struct {
	uc   JobUsecase
	auth fiber.Handler
}

type postJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type updateJobRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
}

func NewJobsHandler(uc JobUsecase, auth fiber.Handler) *JobsHandler {
	return &JobsHandler{uc: uc, auth: auth}
}

// RegisterRoutes mounts /jobs on r and the company listing on companies.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, companies fiber.Router) {
	if r == nil {
		return
	}

	company := middleware.RequireRole(string(user.RoleCompany))

	r.Get("/", h.auth, h.HandleSearchJobs)
	r.Get("/:id", h.auth, h.HandleGetJob)
	r.Post("/", h.auth, company, h.HandlePostJob)
	r.Patch("/:id", h.auth, company, h.HandleUpdateJob)
	r.Post("/:id/toggle", h.auth, company, h.HandleToggleJob)
	r.Delete("/:id", h.auth, company, h.HandleRemoveJob)

	if companies != nil {
		companies.Get("/me/jobs", h.auth, company, h.HandleCompanyJobs)
	}
}

func (h *JobsHandler) HandleSearchJobs(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	params := jobuc.SearchParams{Query: c.Query("q")}
	if raw := c.Query("saved"); raw != "" {
		saved, err := strconv.ParseBool(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		if saved {
			params.SavedBy = username
		}
	}

	jobs, err := h.uc.SearchJobs(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobListResponse(jobs))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.FindByID(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandlePostJob(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	var req postJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.uc.PostJob(c.Context(), username, jobuc.PostJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "job posted", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.uc.UpdateJob(c.Context(), username, id, jobuc.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job updated", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleToggleJob(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.ToggleActive(c.Context(), username, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job updated", dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleRemoveJob(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.RemoveJob(c.Context(), username, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job removed", nil)
}

func (h *JobsHandler) HandleCompanyJobs(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.uc.JobsByCompany(c.Context(), username)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobListResponse(jobs))
}
