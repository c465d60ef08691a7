package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// ScriptRepository defines data access for interview scripts. Scripts are
// brokerage-wide shared resources; the scope argument exists for contract
// symmetry and is always All in practice.
type ScriptRepository interface {
	// Create inserts the script row and links the given section ids in order.
	Create(ctx context.Context, s *model.InterviewScript, sectionIDs []string) (*model.InterviewScript, error)
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.InterviewScript, error)
	// List returns scripts with their sections resolved in display order.
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.InterviewScript], error)
	Update(ctx context.Context, s *model.InterviewScript) (*model.InterviewScript, error)
	Delete(ctx context.Context, id string) error
}

// SectionRepository defines data access for reusable script sections.
type SectionRepository interface {
	Create(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error)
	FindByID(ctx context.Context, id string) (*model.ScriptSection, error)
	List(ctx context.Context, lq ListQuery) (*PageResult[model.ScriptSection], error)
	Update(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error)
	Delete(ctx context.Context, id string) error
}
