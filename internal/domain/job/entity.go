package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Requirements    string
	CompanyUsername string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Builder struct {
	title           string
	description     string
	requirements    string
	companyUsername string
	now             func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

func (b *Builder) Title(s string) *Builder {
	b.title = s
	return b
}

func (b *Builder) Description(s string) *Builder {
	b.description = s
	return b
}

func (b *Builder) Requirements(s string) *Builder {
	b.requirements = s
	return b
}

func (b *Builder) Company(username string) *Builder {
	b.companyUsername = username
	return b
}

// Build assigns a fresh id; a job posted this way starts active.
func (b *Builder) Build() Job {
	now := b.now().UTC()
	return Job{
		ID:              uuid.New(),
		Title:           b.title,
		Description:     b.description,
		Requirements:    b.requirements,
		CompanyUsername: b.companyUsername,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (j Job) OwnedBy(companyUsername string) bool {
	return j.CompanyUsername == companyUsername
}
