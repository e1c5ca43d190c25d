package handler

import (
	"context"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	useruc "job-board/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, username string) (user.User, error)
	UpdateProfile(ctx context.Context, username string, in useruc.UpdateProfileInput) (user.User, error)
	ToggleSavedJob(ctx context.Context, username string, jobID uuid.UUID) (bool, error)
}

type UserHandler struct {
	uc   UserUsecase
	auth fiber.Handler
}

type updateProfileRequest struct {
	Email       *string `json:"email"`
	ResumePath  *string `json:"resume_path"`
	DisplayName *string `json:"display_name"`
}

func NewUserHandler(uc UserUsecase, auth fiber.Handler) *UserHandler {
	return &UserHandler{uc: uc, auth: auth}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.auth, h.GetMe)
	r.Patch("/me", h.auth, h.UpdateMe)
	r.Post("/me/saved-jobs/:id", h.auth, middleware.RequireRole(string(user.RoleApplicant)), h.ToggleSavedJob)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	prof, err := h.uc.GetProfile(c.Context(), username)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	prof, err := h.uc.UpdateProfile(c.Context(), username, useruc.UpdateProfileInput{
		Email:       req.Email,
		ResumePath:  req.ResumePath,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof))
}

func (h *UserHandler) ToggleSavedJob(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	saved, err := h.uc.ToggleSavedJob(c.Context(), username, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"job_id": jobID, "saved": saved})
}
