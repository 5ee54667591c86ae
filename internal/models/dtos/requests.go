package dtos

import (
	"time"

	"junta-vecinos/backend/internal/constants"
)

// Auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstNames  string  `json:"firstNames" validate:"required,min=2,max=150"`
	LastNames   string  `json:"lastNames" validate:"required,min=2,max=150"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	NationalID  *string `json:"nationalId" validate:"omitempty,max=12"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	HouseNumber *string `json:"houseNumber" validate:"omitempty,max=50"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// Vecinos

type MemberCreateRequest struct {
	FirstNames     string              `json:"firstNames" validate:"required,min=2,max=150"`
	LastNames      string              `json:"lastNames" validate:"required,min=2,max=150"`
	Email          string              `json:"email" validate:"required,email"`
	Password       string              `json:"password" validate:"required,min=8,max=128"`
	NationalID     *string             `json:"nationalId" validate:"omitempty,max=12"`
	Address        *string             `json:"address" validate:"omitempty,max=255"`
	HouseNumber    *string             `json:"houseNumber" validate:"omitempty,max=50"`
	Phone          *string             `json:"phone" validate:"omitempty,max=20"`
	JuntaRole      constants.JuntaRole `json:"juntaRole" validate:"omitempty"`
	BoardTitle     *string             `json:"boardTitle" validate:"omitempty,max=100"`
	BoardTermStart *time.Time          `json:"boardTermStart"`
	BoardTermEnd   *time.Time          `json:"boardTermEnd"`
}

type MemberUpdateRequest struct {
	FirstNames     *string              `json:"firstNames" validate:"omitempty,min=2,max=150"`
	LastNames      *string              `json:"lastNames" validate:"omitempty,min=2,max=150"`
	Email          *string              `json:"email" validate:"omitempty,email"`
	NationalID     *string              `json:"nationalId" validate:"omitempty,max=12"`
	Address        *string              `json:"address" validate:"omitempty,max=255"`
	HouseNumber    *string              `json:"houseNumber" validate:"omitempty,max=50"`
	Phone          *string              `json:"phone" validate:"omitempty,max=20"`
	JuntaRole      *constants.JuntaRole `json:"juntaRole"`
	BoardTitle     *string              `json:"boardTitle" validate:"omitempty,max=100"`
	BoardTermStart *time.Time           `json:"boardTermStart"`
	BoardTermEnd   *time.Time           `json:"boardTermEnd"`
}

// MemberListQuery carries pagination and filters for vecino listings.
type MemberListQuery struct {
	Page      int
	Limit     int
	JuntaRole constants.JuntaRole
	Board     *bool
}

// Asambleas

type AssemblyCreateRequest struct {
	Title    string    `json:"title" validate:"required,min=5,max=255"`
	Agenda   *string   `json:"agenda" validate:"omitempty,max=5000"`
	DateTime time.Time `json:"datetime" validate:"required"`
	Location *string   `json:"location" validate:"omitempty,max=255"`
}

type AssemblyUpdateRequest struct {
	Title    *string                   `json:"title" validate:"omitempty,min=5,max=255"`
	Agenda   *string                   `json:"agenda" validate:"omitempty,max=5000"`
	DateTime *time.Time                `json:"datetime"`
	Location *string                   `json:"location" validate:"omitempty,max=255"`
	Status   *constants.AssemblyStatus `json:"status"`
}

type AssemblyListQuery struct {
	Page     int
	Limit    int
	Status   constants.AssemblyStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// Actas

type MinutesCreateRequest struct {
	Content  string                   `json:"content" validate:"required"`
	Status   *constants.MinutesStatus `json:"status"`
	AuthorID *uint                    `json:"authorId"`
}

type MinutesUpdateRequest struct {
	Content  *string                  `json:"content"`
	Status   *constants.MinutesStatus `json:"status"`
	AuthorID *uint                    `json:"authorId"`
}

// Informes

type ReportCreateRequest struct {
	Title  string `json:"title" validate:"required,max=255"`
	Income *int64 `json:"income" validate:"required"`
	Loss   *int64 `json:"loss" validate:"required"`
}

type ReportUpdateRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=255"`
	Income *int64  `json:"income"`
	Loss   *int64  `json:"loss"`
}
