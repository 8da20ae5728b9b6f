package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

func (h *UserHandler) Logout(c *gin.Context) {
	token, _ := c.Get(middleware.CtxTokenKey)
	tokenString, _ := token.(string)

	if err := h.userService.Logout(c.Request.Context(), tokenString); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SetAvatar POST /users/avatar，multipart 字段 file，内容嗅探必须是图片
func (h *UserHandler) SetAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer file.Close()

	contentType, err := util.GetSafeContentType(file)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	avatar, err := h.userService.SetAvatar(c.Request.Context(), middleware.CurrentUserID(c),
		fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, avatar)
}

func (h *UserHandler) ClearAvatar(c *gin.Context) {
	if err := h.userService.ClearAvatar(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
