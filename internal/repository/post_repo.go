package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	// FindPage 返回一页帖子与全量总数。startID 是 id 的排他下界，
	// 只约束返回条目，不参与计数。limit <= 0 表示不截断。
	FindPage(ctx context.Context, offset, limit int, startID uint64) ([]*model.Post, int64, error)
	// FindBatchAfter 按 id 升序取一批，供重建索引游标遍历
	FindBatchAfter(ctx context.Context, afterID uint64, limit int) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	// DeletePost 返回受影响行数，0 表示记录不存在
	DeletePost(ctx context.Context, id uint64) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "get post")
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get posts by ids")
	}
	return posts, nil
}

func (s *PostRepoImpl) FindPage(ctx context.Context, offset, limit int, startID uint64) ([]*model.Post, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count posts")
	}

	query := s.db.WithContext(ctx).Preload("User").Order("id ASC")
	if startID > 0 {
		query = query.Where("id > ?", startID)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []*model.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "find posts page")
	}

	return posts, total, nil
}

func (s *PostRepoImpl) FindBatchAfter(ctx context.Context, afterID uint64, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find posts batch")
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Post{}, id)
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "delete post")
	}
	return result.RowsAffected, nil
}
