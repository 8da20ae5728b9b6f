package dto

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=7"`
}

type UserDTO struct {
	ID     uint64   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Avatar *FileDTO `json:"avatar,omitempty"`
}
