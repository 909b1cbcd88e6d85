package model

import "time"

// User 身分服務同步過來的使用者資料, 這裡只讀
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"not null;uniqueIndex;type:varchar(255)" json:"email"`
	FirstName   string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100)" json:"last_name"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) Role() ActorRole {
	if u.IsSuperuser {
		return ActorAdmin
	}
	return ActorUser
}
