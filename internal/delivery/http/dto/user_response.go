package dto

import (
	"time"

	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	ResumePath  *string     `json:"resume_path,omitempty"`
	SavedJobIDs []uuid.UUID `json:"saved_job_ids,omitempty"`
	DisplayName *string     `json:"display_name,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	res := UserProfileResponse{
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.Applicant != nil {
		path := u.Applicant.ResumePath
		res.ResumePath = &path
		res.SavedJobIDs = append([]uuid.UUID{}, u.Applicant.SavedJobIDs...)
	}
	if u.Company != nil {
		name := u.Company.DisplayName
		res.DisplayName = &name
	}
	return res
}
