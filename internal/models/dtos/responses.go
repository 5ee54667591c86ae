package dtos

import (
	"time"

	"junta-vecinos/backend/internal/constants"
	gormModels "junta-vecinos/backend/internal/models/gorm"
)

// MemberResponse is the public projection of a vecino. The password hash
// never leaves the service layer.
type MemberResponse struct {
	ID                  uint                `json:"id"`
	FirstNames          string              `json:"firstNames"`
	LastNames           string              `json:"lastNames"`
	NationalID          *string             `json:"nationalId,omitempty"`
	Email               string              `json:"email"`
	Address             *string             `json:"address,omitempty"`
	HouseNumber         *string             `json:"houseNumber,omitempty"`
	Phone               *string             `json:"phone,omitempty"`
	JuntaRole           constants.JuntaRole `json:"juntaRole"`
	IsActiveBoardMember bool                `json:"isActiveBoardMember"`
	BoardTitle          *string             `json:"boardTitle,omitempty"`
	BoardTermStart      *time.Time          `json:"boardTermStart,omitempty"`
	BoardTermEnd        *time.Time          `json:"boardTermEnd,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// NewMemberResponse strips the credential fields from a Member row.
func NewMemberResponse(m *gormModels.Member) *MemberResponse {
	if m == nil {
		return nil
	}
	return &MemberResponse{
		ID:                  m.ID,
		FirstNames:          m.FirstNames,
		LastNames:           m.LastNames,
		NationalID:          m.NationalID,
		Email:               m.Email,
		Address:             m.Address,
		HouseNumber:         m.HouseNumber,
		Phone:               m.Phone,
		JuntaRole:           m.JuntaRole,
		IsActiveBoardMember: m.IsActiveBoardMember,
		BoardTitle:          m.BoardTitle,
		BoardTermStart:      m.BoardTermStart,
		BoardTermEnd:        m.BoardTermEnd,
		CreatedAt:           m.CreatedAt,
	}
}

type MemberListResponse struct {
	Members []MemberResponse `json:"vecinos"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

type AssemblyResponse struct {
	ID        uint                     `json:"id"`
	Title     string                   `json:"title"`
	Agenda    *string                  `json:"agenda,omitempty"`
	DateTime  time.Time                `json:"datetime"`
	Location  *string                  `json:"location,omitempty"`
	Status    constants.AssemblyStatus `json:"status"`
	Organizer *MemberResponse          `json:"organizer,omitempty"`
	Minutes   *MinutesResponse         `json:"acta,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
}

// NewAssemblyResponse projects an Assembly row with its loaded relations.
func NewAssemblyResponse(a *gormModels.Assembly) *AssemblyResponse {
	if a == nil {
		return nil
	}
	return &AssemblyResponse{
		ID:        a.ID,
		Title:     a.Title,
		Agenda:    a.Agenda,
		DateTime:  a.ScheduledAt,
		Location:  a.Location,
		Status:    a.Status,
		Organizer: NewMemberResponse(a.Organizer),
		Minutes:   NewMinutesResponse(a.Minutes),
		CreatedAt: a.CreatedAt,
	}
}

type AssemblyListResponse struct {
	Assemblies []AssemblyResponse `json:"asambleas"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type MinutesResponse struct {
	ID         uint                    `json:"id"`
	Content    string                  `json:"content"`
	Status     constants.MinutesStatus `json:"status"`
	ApprovedAt *time.Time              `json:"approvedAt,omitempty"`
	AssemblyID uint                    `json:"assemblyId"`
	Author     *MemberResponse         `json:"author,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// NewMinutesResponse projects an acta with its author, hash stripped.
func NewMinutesResponse(m *gormModels.Minutes) *MinutesResponse {
	if m == nil {
		return nil
	}
	return &MinutesResponse{
		ID:         m.ID,
		Content:    m.Content,
		Status:     m.Status,
		ApprovedAt: m.ApprovedAt,
		AssemblyID: m.AssemblyID,
		Author:     NewMemberResponse(m.Author),
		CreatedAt:  m.CreatedAt,
	}
}

type ReportResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Income    int64     `json:"income"`
	Loss      int64     `json:"loss"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReportResponse(r *gormModels.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:        r.ID,
		Title:     r.Title,
		Income:    r.Income,
		Loss:      r.Loss,
		CreatedAt: r.CreatedAt,
	}
}

// ReportSummaryResponse aggregates every informe.
type ReportSummaryResponse struct {
	TotalInformes int64 `json:"totalInformes"`
	TotalIncome   int64 `json:"totalIncome"`
	TotalLoss     int64 `json:"totalLoss"`
	Balance       int64 `json:"balance"`
}

type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	Member      *MemberResponse `json:"vecino"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Health check

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
