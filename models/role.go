package models

const (
	RoleAdmin        = "admin"
	RoleStoreManager = "store_manager"
	RoleUser         = "user"
)

type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}
