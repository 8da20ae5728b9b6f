package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type FileService interface {
	UploadPublicFile(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*dto.FileDTO, error)
	// DeletePublicFile 两阶段删除：元数据删除入事务，对象删除成功后才提交
	DeletePublicFile(ctx context.Context, id uint64) error
	UploadPrivateFile(ctx context.Context, ownerID uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.PrivateFileDTO, error)
	// GetPrivateFileStream 校验归属后打开对象读取流
	GetPrivateFileStream(ctx context.Context, ownerID, id uint64) (io.ReadCloser, string, error)
	// ListPrivateFiles 返回带限时签名链接的私有文件列表
	ListPrivateFiles(ctx context.Context, ownerID uint64) ([]*dto.PrivateFileDTO, error)
	DeletePrivateFile(ctx context.Context, ownerID, id uint64) error
}

type FileServiceImpl struct {
	fileRepo       repository.FileRepo
	publicStorage  ObjectStorage
	privateStorage ObjectStorage
}

func NewFileService(fileRepo repository.FileRepo, publicStorage, privateStorage ObjectStorage) FileService {
	return &FileServiceImpl{
		fileRepo:       fileRepo,
		publicStorage:  publicStorage,
		privateStorage: privateStorage,
	}
}

// objectKey 生成全局唯一对象键，保留原始文件名便于排查
func objectKey(filename string) string {
	return uuid.NewString() + "-" + filename
}

func (s *FileServiceImpl) UploadPublicFile(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*dto.FileDTO, error) {
	key := objectKey(filename)

	url, err := s.publicStorage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		slog.ErrorContext(ctx, "upload public object failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	file := &model.PublicFile{Key: key, URL: url}
	if err := s.fileRepo.CreatePublic(ctx, file); err != nil {
		slog.ErrorContext(ctx, "create public file record failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	return toFileDTO(file), nil
}

func (s *FileServiceImpl) DeletePublicFile(ctx context.Context, id uint64) error {
	file, err := s.fileRepo.GetPublic(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get public file failed", slog.Any("error", err))
		return UnExpectedError
	}
	if file == nil {
		return ErrFileNotFound
	}

	tx, err := s.fileRepo.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "begin delete tx failed", slog.Any("error", err))
		return UnExpectedError
	}

	if _, err := s.fileRepo.DeletePublicTx(tx, id); err != nil {
		_ = tx.Rollback()
		slog.ErrorContext(ctx, "delete public file record failed", slog.Any("error", err))
		return UnExpectedError
	}

	return finishTwoPhase(ctx, tx, s.publicStorage, file.Key)
}

func (s *FileServiceImpl) UploadPrivateFile(ctx context.Context, ownerID uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.PrivateFileDTO, error) {
	key := objectKey(filename)

	if _, err := s.privateStorage.Upload(ctx, key, reader, size, contentType); err != nil {
		slog.ErrorContext(ctx, "upload private object failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	file := &model.PrivateFile{Key: key, OwnerID: ownerID}
	if err := s.fileRepo.CreatePrivate(ctx, file); err != nil {
		slog.ErrorContext(ctx, "create private file record failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	return s.toPrivateFileDTO(ctx, file), nil
}

func (s *FileServiceImpl) GetPrivateFileStream(ctx context.Context, ownerID, id uint64) (io.ReadCloser, string, error) {
	file, err := s.fileRepo.GetPrivate(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get private file failed", slog.Any("error", err))
		return nil, "", UnExpectedError
	}
	if file == nil {
		return nil, "", ErrFileNotFound
	}
	if file.OwnerID != ownerID {
		return nil, "", UnauthorizedError
	}

	stream, err := s.privateStorage.OpenStream(ctx, file.Key)
	if err != nil {
		slog.ErrorContext(ctx, "open private object stream failed", slog.Any("error", err))
		return nil, "", UnExpectedError
	}

	return stream, file.Key, nil
}

func (s *FileServiceImpl) ListPrivateFiles(ctx context.Context, ownerID uint64) ([]*dto.PrivateFileDTO, error) {
	files, err := s.fileRepo.ListPrivateByOwner(ctx, ownerID)
	if err != nil {
		slog.ErrorContext(ctx, "list private files failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	result := make([]*dto.PrivateFileDTO, 0, len(files))
	for _, file := range files {
		result = append(result, s.toPrivateFileDTO(ctx, file))
	}
	return result, nil
}

func (s *FileServiceImpl) DeletePrivateFile(ctx context.Context, ownerID, id uint64) error {
	file, err := s.fileRepo.GetPrivate(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get private file failed", slog.Any("error", err))
		return UnExpectedError
	}
	if file == nil {
		return ErrFileNotFound
	}
	if file.OwnerID != ownerID {
		return UnauthorizedError
	}

	tx, err := s.fileRepo.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "begin delete tx failed", slog.Any("error", err))
		return UnExpectedError
	}

	if _, err := s.fileRepo.DeletePrivateTx(tx, id); err != nil {
		_ = tx.Rollback()
		slog.ErrorContext(ctx, "delete private file record failed", slog.Any("error", err))
		return UnExpectedError
	}

	return finishTwoPhase(ctx, tx, s.privateStorage, file.Key)
}

func toFileDTO(file *model.PublicFile) *dto.FileDTO {
	return &dto.FileDTO{
		ID:  file.ID,
		Key: file.Key,
		URL: file.URL,
	}
}

func (s *FileServiceImpl) toPrivateFileDTO(ctx context.Context, file *model.PrivateFile) *dto.PrivateFileDTO {
	url, err := s.privateStorage.PresignURL(ctx, file.Key)
	if err != nil {
		slog.WarnContext(ctx, "presign private file url failed",
			slog.String("key", file.Key), slog.Any("error", err))
		url = ""
	}
	return &dto.PrivateFileDTO{
		ID:  file.ID,
		Key: file.Key,
		URL: url,
	}
}
