package mock

import (
	"context"

	"github.com/fwojciec/offerdoc"
)

var _ offerdoc.VariableListService = (*VariableListService)(nil)

// VariableListService is a mock implementation of offerdoc.VariableListService.
type VariableListService struct {
	CreateVariableListFn     func(ctx context.Context, list *offerdoc.VariableList) error
	FindVariableListByIDFn   func(ctx context.Context, id string) (*offerdoc.VariableList, error)
	FindVariableListByNameFn func(ctx context.Context, name string) (*offerdoc.VariableList, error)
	FindVariableListsFn      func(ctx context.Context) ([]*offerdoc.VariableList, error)
	UpdateVariableListFn     func(ctx context.Context, list *offerdoc.VariableList) error
	DeleteVariableListFn     func(ctx context.Context, id string) error
}

func (s *VariableListService) CreateVariableList(ctx context.Context, list *offerdoc.VariableList) error {
	return s.CreateVariableListFn(ctx, list)
}

func (s *VariableListService) FindVariableListByID(ctx context.Context, id string) (*offerdoc.VariableList, error) {
	return s.FindVariableListByIDFn(ctx, id)
}

func (s *VariableListService) FindVariableListByName(ctx context.Context, name string) (*offerdoc.VariableList, error) {
	return s.FindVariableListByNameFn(ctx, name)
}

func (s *VariableListService) FindVariableLists(ctx context.Context) ([]*offerdoc.VariableList, error) {
	return s.FindVariableListsFn(ctx)
}

func (s *VariableListService) UpdateVariableList(ctx context.Context, list *offerdoc.VariableList) error {
	return s.UpdateVariableListFn(ctx, list)
}

func (s *VariableListService) DeleteVariableList(ctx context.Context, id string) error {
	return s.DeleteVariableListFn(ctx, id)
}
