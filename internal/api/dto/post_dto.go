package dto

import "time"

type CreatePostReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Paragraphs []string `json:"paragraphs" binding:"required,min=1,dive,required"`
}

type UpdatePostReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Paragraphs []string `json:"paragraphs" binding:"required,min=1,dive,required"`
}

type PostDTO struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Paragraphs []string  `json:"paragraphs"`
	Author     *UserDTO  `json:"author,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostPageDTO 一页帖子。Count 是全量总数，不受 startId 影响
type PostPageDTO struct {
	Items []*PostDTO `json:"items"`
	Count int64      `json:"count"`
}
