package handler

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// UploadPrivateFile POST /files，multipart 字段 file
func (h *FileHandler) UploadPrivateFile(c *gin.Context) {
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

	result, err := h.fileService.UploadPrivateFile(c.Request.Context(), middleware.CurrentUserID(c),
		fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (h *FileHandler) ListPrivateFiles(c *gin.Context) {
	files, err := h.fileService.ListPrivateFiles(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, files)
}

// DownloadPrivateFile GET /files/:id，直接回传对象流
func (h *FileHandler) DownloadPrivateFile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stream, key, err := h.fileService.GetPrivateFileStream(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Disposition", `attachment; filename="`+key+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

func (h *FileHandler) DeletePrivateFile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.fileService.DeletePrivateFile(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
