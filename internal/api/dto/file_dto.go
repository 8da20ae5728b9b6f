package dto

// FileDTO 公共文件视图，URL 可直接访问
type FileDTO struct {
	ID  uint64 `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

// PrivateFileDTO 私有文件视图，URL 为限时签名链接
type PrivateFileDTO struct {
	ID  uint64 `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}
