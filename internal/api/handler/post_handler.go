package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts GET /posts，带 search 参数走全文检索，否则按 id 顺序分页
func (h *PostHandler) ListPosts(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	text := c.Query("search")

	var (
		result *dto.PostPageDTO
		err    error
	)
	if text != "" {
		result, err = h.postService.SearchPosts(c.Request.Context(), text, &page)
	} else {
		result, err = h.postService.ListPosts(c.Request.Context(), &page)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), middleware.CurrentUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
