package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// FileRepo 文件元数据仓储。删除走显式事务：元数据删除先入事务，
// 对象存储删除成功后才提交，保证引用与对象要么都在要么都不在。
type FileRepo interface {
	CreatePublic(ctx context.Context, file *model.PublicFile) error
	GetPublic(ctx context.Context, id uint64) (*model.PublicFile, error)
	CreatePrivate(ctx context.Context, file *model.PrivateFile) error
	GetPrivate(ctx context.Context, id uint64) (*model.PrivateFile, error)
	ListPrivateByOwner(ctx context.Context, ownerID uint64) ([]*model.PrivateFile, error)
	Begin(ctx context.Context) (*gorm.DB, error)
	DeletePublicTx(tx *gorm.DB, id uint64) (int64, error)
	DeletePrivateTx(tx *gorm.DB, id uint64) (int64, error)
}

type FileRepoImpl struct {
	db *gorm.DB
}

func NewFileRepo(db *gorm.DB) FileRepo {
	return &FileRepoImpl{
		db: db,
	}
}

func (s *FileRepoImpl) CreatePublic(ctx context.Context, file *model.PublicFile) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *FileRepoImpl) GetPublic(ctx context.Context, id uint64) (*model.PublicFile, error) {
	var file model.PublicFile
	err := s.db.WithContext(ctx).First(&file, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "get public file")
	}
	return &file, nil
}

func (s *FileRepoImpl) CreatePrivate(ctx context.Context, file *model.PrivateFile) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *FileRepoImpl) GetPrivate(ctx context.Context, id uint64) (*model.PrivateFile, error) {
	var file model.PrivateFile
	err := s.db.WithContext(ctx).Preload("Owner").First(&file, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "get private file")
	}
	return &file, nil
}

func (s *FileRepoImpl) ListPrivateByOwner(ctx context.Context, ownerID uint64) ([]*model.PrivateFile, error) {
	var files []*model.PrivateFile
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&files).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list private files")
	}
	return files, nil
}

func (s *FileRepoImpl) Begin(ctx context.Context) (*gorm.DB, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, pkgerrors.Wrap(tx.Error, "begin tx")
	}
	return tx, nil
}

func (s *FileRepoImpl) DeletePublicTx(tx *gorm.DB, id uint64) (int64, error) {
	result := tx.Delete(&model.PublicFile{}, id)
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "delete public file")
	}
	return result.RowsAffected, nil
}

func (s *FileRepoImpl) DeletePrivateTx(tx *gorm.DB, id uint64) (int64, error) {
	result := tx.Delete(&model.PrivateFile{}, id)
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "delete private file")
	}
	return result.RowsAffected, nil
}
