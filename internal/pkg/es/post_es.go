package es

import "Inkwell/internal/model"

// PostDocument 写入 ES 的帖子文档，仅作为可重建的派生副本。
// 除 id 外的字段不作为数据源，命中后一律回源主库取规范值。
type PostDocument struct {
	ID         uint64   `json:"id"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	AuthorID   uint64   `json:"author_id"`
}

// SearchFields 参与全文检索的字段
var SearchFields = []string{"title", "paragraphs"}

// NewPostDocument 从主库记录构建索引文档
func NewPostDocument(post *model.Post) *PostDocument {
	return &PostDocument{
		ID:         post.ID,
		Title:      post.Title,
		Paragraphs: post.Paragraphs,
		AuthorID:   post.UserID,
	}
}

// SearchPage 一页命中结果，IDs 保持相关度排序
type SearchPage struct {
	IDs   []uint64
	Total int64
}
