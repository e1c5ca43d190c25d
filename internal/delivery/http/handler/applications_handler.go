package handler

import (
	"context"
	"io"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/application"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	appuc "job-board/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	SubmitUpload(ctx context.Context, applicant string, jobID uuid.UUID, filename string, r io.Reader) (application.Application, error)
	Advance(ctx context.Context, company string, applicationID uuid.UUID) (application.Application, error)
	ApplicationsForJob(ctx context.Context, company string, jobID uuid.UUID) ([]application.Application, error)
	ApplicationsByUser(ctx context.Context, applicant string) ([]appuc.Listing, error)
}

type ApplicationsHandler struct {
	uc   ApplicationUsecase
	auth fiber.Handler
}

func NewApplicationsHandler(uc ApplicationUsecase, auth fiber.Handler) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc, auth: auth}
}

// RegisterRoutes mounts the submission and listing routes on jobs, users and
// applications groups.
func (h *ApplicationsHandler) RegisterRoutes(jobs, users, apps fiber.Router) {
	applicant := middleware.RequireRole(string(user.RoleApplicant))
	company := middleware.RequireRole(string(user.RoleCompany))

	if jobs != nil {
		jobs.Post("/:id/applications", h.auth, applicant, h.HandleSubmit)
		jobs.Get("/:id/applications", h.auth, company, h.HandleJobApplications)
	}
	if users != nil {
		users.Get("/me/applications", h.auth, applicant, h.HandleMyApplications)
	}
	if apps != nil {
		apps.Post("/:id/advance", h.auth, company, h.HandleAdvance)
	}
}

func (h *ApplicationsHandler) HandleSubmit(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is required", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is unreadable", nil, err)
	}
	defer f.Close()

	a, err := h.uc.SubmitUpload(c.Context(), username, jobID, fh.Filename, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) HandleJobApplications(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	apps, err := h.uc.ApplicationsForJob(c.Context(), username, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewApplicationListResponse(apps))
}

func (h *ApplicationsHandler) HandleMyApplications(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	listings, err := h.uc.ApplicationsByUser(c.Context(), username)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewListingResponse(listings))
}

func (h *ApplicationsHandler) HandleAdvance(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Advance(c.Context(), username, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "application advanced", dto.NewApplicationResponse(a))
}
