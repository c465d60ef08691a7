package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// CreateScriptParams is the write payload for a new interview script. Sections
// must already exist; the script references them in the given order.
type CreateScriptParams struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ScriptType   string   `json:"script_type"`
	Version      string   `json:"version"`
	IsActive     *bool    `json:"is_active"`
	GeneralNotes string   `json:"general_notes"`
	SectionIDs   []string `json:"section_ids"`
}

// UpdateScriptParams carries a partial update; nil fields are left untouched.
type UpdateScriptParams struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ScriptType   *string `json:"script_type"`
	Version      *string `json:"version"`
	IsActive     *bool   `json:"is_active"`
	GeneralNotes *string `json:"general_notes"`
}

// CreateSectionParams is the write payload for a reusable script section.
type CreateSectionParams struct {
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"order"`
	KeyNotes        string `json:"key_notes"`
}

// UpdateSectionParams carries a partial update; nil fields are left untouched.
type UpdateSectionParams struct {
	Title           *string `json:"title"`
	DurationSeconds *int    `json:"duration_seconds"`
	Content         *string `json:"content"`
	OrderIndex      *int    `json:"order"`
	KeyNotes        *string `json:"key_notes"`
}

// ScriptService defines the use cases for interview scripts and their shared
// sections. Scripts are brokerage-wide: every authenticated broker sees the
// same set.
type ScriptService interface {
	Create(ctx context.Context, principal string, p CreateScriptParams) (*model.InterviewScript, error)
	Get(ctx context.Context, principal, id string) (*model.InterviewScript, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.InterviewScript], error)
	Update(ctx context.Context, principal, id string, p UpdateScriptParams) (*model.InterviewScript, error)
	Delete(ctx context.Context, principal, id string) error

	CreateSection(ctx context.Context, p CreateSectionParams) (*model.ScriptSection, error)
	GetSection(ctx context.Context, id string) (*model.ScriptSection, error)
	ListSections(ctx context.Context, lq repository.ListQuery) (*ListResult[model.ScriptSection], error)
	UpdateSection(ctx context.Context, id string, p UpdateSectionParams) (*model.ScriptSection, error)
	DeleteSection(ctx context.Context, id string) error
}

type scriptService struct {
	scripts  repository.ScriptRepository
	sections repository.SectionRepository
	scoper   *scope.Scoper
}

// NewScriptService constructs a new ScriptService.
func NewScriptService(scripts repository.ScriptRepository, sections repository.SectionRepository, scoper *scope.Scoper) ScriptService {
	return &scriptService{scripts: scripts, sections: sections, scoper: scoper}
}

func (s *scriptService) Create(ctx context.Context, principal string, p CreateScriptParams) (*model.InterviewScript, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperr.Validation("title", "is required")
	}
	st := model.ScriptType(p.ScriptType)
	if !st.Valid() {
		return nil, apperr.Validation("script_type", "must be one of initial_call, follow_up, closing")
	}
	version := p.Version
	if version == "" {
		version = "1.0"
	}
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	// Resolve sections up front: a dangling id is caller error, not a 500.
	total := 0
	for _, sectionID := range p.SectionIDs {
		section, err := s.sections.FindByID(ctx, sectionID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validation("section_ids", "unknown section id "+sectionID)
			}
			return nil, err
		}
		total += section.DurationSeconds
	}

	now := time.Now().UTC()
	script := &model.InterviewScript{
		ID:            uuid.New().String(),
		Title:         p.Title,
		Description:   p.Description,
		ScriptType:    st,
		Version:       version,
		IsActive:      active,
		TotalDuration: total,
		GeneralNotes:  p.GeneralNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.scripts.Create(ctx, script, p.SectionIDs)
}

func (s *scriptService) Get(ctx context.Context, principal, id string) (*model.InterviewScript, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindScript)
	if err != nil {
		return nil, err
	}
	return s.scripts.FindByID(ctx, sc, id)
}

func (s *scriptService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.InterviewScript], error) {
	sc, err := s.scoper.For(principal, scope.KindScript)
	if err != nil {
		return nil, err
	}
	res, err := s.scripts.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.InterviewScript]{Items: res.Items, Total: res.Total}, nil
}

func (s *scriptService) Update(ctx context.Context, principal, id string, p UpdateScriptParams) (*model.InterviewScript, error) {
	sc, err := s.scoper.For(principal, scope.KindScript)
	if err != nil {
		return nil, err
	}
	script, err := s.scripts.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		script.Title = *p.Title
	}
	if p.Description != nil {
		script.Description = *p.Description
	}
	if p.ScriptType != nil {
		st := model.ScriptType(*p.ScriptType)
		if !st.Valid() {
			return nil, apperr.Validation("script_type", "must be one of initial_call, follow_up, closing")
		}
		script.ScriptType = st
	}
	if p.Version != nil {
		script.Version = *p.Version
	}
	if p.IsActive != nil {
		script.IsActive = *p.IsActive
	}
	if p.GeneralNotes != nil {
		script.GeneralNotes = *p.GeneralNotes
	}
	script.UpdatedAt = time.Now().UTC()
	return s.scripts.Update(ctx, script)
}

func (s *scriptService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindScript)
	if err != nil {
		return err
	}
	if _, err := s.scripts.FindByID(ctx, sc, id); err != nil {
		return err
	}
	return s.scripts.Delete(ctx, id)
}

func (s *scriptService) CreateSection(ctx context.Context, p CreateSectionParams) (*model.ScriptSection, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperr.Validation("title", "is required")
	}
	if p.DurationSeconds < 0 {
		return nil, apperr.Validation("duration_seconds", "must not be negative")
	}
	section := &model.ScriptSection{
		ID:              uuid.New().String(),
		Title:           p.Title,
		DurationSeconds: p.DurationSeconds,
		Content:         p.Content,
		OrderIndex:      p.OrderIndex,
		KeyNotes:        p.KeyNotes,
	}
	return s.sections.Create(ctx, section)
}

func (s *scriptService) GetSection(ctx context.Context, id string) (*model.ScriptSection, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	return s.sections.FindByID(ctx, id)
}

func (s *scriptService) ListSections(ctx context.Context, lq repository.ListQuery) (*ListResult[model.ScriptSection], error) {
	res, err := s.sections.List(ctx, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ScriptSection]{Items: res.Items, Total: res.Total}, nil
}

func (s *scriptService) UpdateSection(ctx context.Context, id string, p UpdateSectionParams) (*model.ScriptSection, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		section.Title = *p.Title
	}
	if p.DurationSeconds != nil {
		if *p.DurationSeconds < 0 {
			return nil, apperr.Validation("duration_seconds", "must not be negative")
		}
		section.DurationSeconds = *p.DurationSeconds
	}
	if p.Content != nil {
		section.Content = *p.Content
	}
	if p.OrderIndex != nil {
		section.OrderIndex = *p.OrderIndex
	}
	if p.KeyNotes != nil {
		section.KeyNotes = *p.KeyNotes
	}
	return s.sections.Update(ctx, section)
}

func (s *scriptService) DeleteSection(ctx context.Context, id string) error {
	if _, err := s.sections.FindByID(ctx, id); err != nil {
		return err
	}
	return s.sections.Delete(ctx, id)
}
