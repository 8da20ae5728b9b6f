package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryReq) (*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, req *dto.UpdateCategoryReq) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryReq) (*dto.CategoryDTO, error) {
	category := &model.Category{Name: req.Name}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExist
		}
		slog.ErrorContext(ctx, "create category failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get category failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "list categories failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	result := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		result = append(result, toCategoryDTO(category))
	}
	return result, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id uint64, req *dto.UpdateCategoryReq) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get category failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = req.Name
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExist
		}
		slog.ErrorContext(ctx, "update category failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id uint64) error {
	rows, err := s.categoryRepo.DeleteCategory(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "delete category failed", slog.Any("error", err))
		return UnExpectedError
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func toCategoryDTO(category *model.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}
