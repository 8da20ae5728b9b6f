package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUserEmailExist   = errors.New("邮箱已注册")
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrCategoryExist    = errors.New("分类已存在")
	ErrFileNotFound     = errors.New("文件不存在")
	UnauthorizedError   = errors.New("权限不足")
	// ErrStateInconsistent 两阶段删除回滚失败，元数据与对象可能已不一致
	ErrStateInconsistent = errors.New("存储状态不一致")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserEmailExist:    Conflict,
	ErrPostNotFound:      NotFound,
	ErrCategoryNotFound:  NotFound,
	ErrCategoryExist:     Conflict,
	ErrFileNotFound:      NotFound,
	UnauthorizedError:    Unauthorized,
	ErrStateInconsistent: InternalServerError,
	UnExpectedError:      InternalServerError,
}
