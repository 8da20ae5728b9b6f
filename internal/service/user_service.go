package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserDTO, error)
	GetUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetUserByEmail(ctx context.Context, email string) (*dto.UserDTO, error)
	// Logout 将 Token 签名拉入拒绝名单，直到其自然过期
	Logout(ctx context.Context, tokenString string) error
	// SetAvatar 替换头像：先两阶段清掉旧头像，再上传并挂接新头像
	SetAvatar(ctx context.Context, userID uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.FileDTO, error)
	// ClearAvatar 两阶段删除当前头像
	ClearAvatar(ctx context.Context, userID uint64) error
}

type UserServiceImpl struct {
	userRepo      repository.UserRepo
	fileRepo      repository.FileRepo
	publicStorage ObjectStorage
}

func NewUserService(userRepo repository.UserRepo, fileRepo repository.FileRepo, publicStorage ObjectStorage) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		fileRepo:      fileRepo,
		publicStorage: publicStorage,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserDTO, error) {
	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		slog.ErrorContext(ctx, "hash password failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserEmailExist
		}
		slog.ErrorContext(ctx, "create user failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	return toUserDTO(user), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get user failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return toUserDTO(user), nil
}

func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "get user by email failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return UnauthorizedError
	}

	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return UnauthorizedError
	}

	// 没带 exp 的合法签名按最长有效期拉黑
	ttl := security.JWTExpirationTime
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return nil
		}
	}

	if err := redis.SetWithExpiration(ctx, consts.TokenDenyKey+signature, "1", ttl); err != nil {
		slog.ErrorContext(ctx, "deny token failed", slog.Any("error", err))
		return UnExpectedError
	}

	return nil
}

func (s *UserServiceImpl) SetAvatar(ctx context.Context, userID uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.FileDTO, error) {
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "get user failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 头像独占，挂新之前先把旧的连引用带对象一起清掉
	if user.Avatar != nil {
		if err := s.removeAvatar(ctx, userID, user.Avatar); err != nil {
			return nil, err
		}
	}

	key := uuid.NewString() + "-" + filename
	url, err := s.publicStorage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		slog.ErrorContext(ctx, "upload avatar failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	file := &model.PublicFile{Key: key, URL: url}
	if err := s.fileRepo.CreatePublic(ctx, file); err != nil {
		slog.ErrorContext(ctx, "create avatar record failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	if err := s.userRepo.SetAvatar(ctx, userID, file.ID); err != nil {
		slog.ErrorContext(ctx, "attach avatar failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	return toFileDTO(file), nil
}

func (s *UserServiceImpl) ClearAvatar(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "get user failed", slog.Any("error", err))
		return UnExpectedError
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Avatar == nil {
		return ErrFileNotFound
	}

	return s.removeAvatar(ctx, userID, user.Avatar)
}

// removeAvatar 两阶段摘除头像：引用摘除与元数据删除同一事务，
// 对象删除成功后提交
func (s *UserServiceImpl) removeAvatar(ctx context.Context, userID uint64, avatar *model.PublicFile) error {
	tx, err := s.fileRepo.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "begin avatar tx failed", slog.Any("error", err))
		return UnExpectedError
	}

	if err := s.userRepo.ClearAvatarTx(tx, userID); err != nil {
		_ = tx.Rollback()
		slog.ErrorContext(ctx, "clear avatar reference failed", slog.Any("error", err))
		return UnExpectedError
	}

	if _, err := s.fileRepo.DeletePublicTx(tx, avatar.ID); err != nil {
		_ = tx.Rollback()
		slog.ErrorContext(ctx, "delete avatar record failed", slog.Any("error", err))
		return UnExpectedError
	}

	return finishTwoPhase(ctx, tx, s.publicStorage, avatar.Key)
}

func toUserDTO(user *model.User) *dto.UserDTO {
	result := &dto.UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
	if user.Avatar != nil {
		result.Avatar = toFileDTO(user.Avatar)
	}
	return result
}
