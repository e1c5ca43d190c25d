package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleCompany   Role = "COMPANY"
)

// ParseRole accepts the role name in any letter case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleApplicant:
		return RoleApplicant, nil
	case RoleCompany:
		return RoleCompany, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	CreatedAt    time.Time

	// Exactly one of Applicant or Company is set, matching Role.
	Applicant *ApplicantProfile
	Company   *CompanyProfile
}

type ApplicantProfile struct {
	ResumePath  string
	SavedJobIDs []uuid.UUID
}

type CompanyProfile struct {
	DisplayName string
}

// New builds a user with the profile payload that belongs to role.
func New(role Role, username, passwordHash, email string) (User, error) {
	u := User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         role,
	}
	switch role {
	case RoleApplicant:
		u.Applicant = &ApplicantProfile{}
	case RoleCompany:
		u.Company = &CompanyProfile{}
	default:
		return User{}, ErrUnknownRole
	}
	return u, nil
}

func (u User) IsApplicant() bool {
	return u.Role == RoleApplicant && u.Applicant != nil
}

func (u User) IsCompany() bool {
	return u.Role == RoleCompany && u.Company != nil
}

// SaveJob adds id to the saved set. It reports false when the user is not an
// applicant or the job is already saved.
func (u *User) SaveJob(id uuid.UUID) bool {
	if !u.IsApplicant() || u.IsJobSaved(id) {
		return false
	}
	u.Applicant.SavedJobIDs = append(u.Applicant.SavedJobIDs, id)
	return true
}

func (u *User) RemoveSavedJob(id uuid.UUID) bool {
	if !u.IsApplicant() {
		return false
	}
	ids := u.Applicant.SavedJobIDs
	for i, saved := range ids {
		if saved == id {
			u.Applicant.SavedJobIDs = append(ids[:i:i], ids[i+1:]...)
			return true
		}
	}
	return false
}

func (u User) IsJobSaved(id uuid.UUID) bool {
	if !u.IsApplicant() {
		return false
	}
	for _, saved := range u.Applicant.SavedJobIDs {
		if saved == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no mutable state with u.
func (u User) Clone() User {
	if u.Applicant != nil {
		p := *u.Applicant
		p.SavedJobIDs = append([]uuid.UUID(nil), u.Applicant.SavedJobIDs...)
		u.Applicant = &p
	}
	if u.Company != nil {
		p := *u.Company
		u.Company = &p
	}
	return u
}

// Sanitized drops the credential before the user leaves the core.
func (u User) Sanitized() User {
	out := u.Clone()
	out.PasswordHash = ""
	return out
}
