package dto

type CreateCategoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type UpdateCategoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
