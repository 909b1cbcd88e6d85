package model

import (
	"time"

	"gorm.io/gorm"
)

// 可軟刪除的資料表共用欄位
type BaseModel struct {
	IsDeleted bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeDelete 軟刪除前同步 is_deleted
func (b *BaseModel) BeforeDelete(tx *gorm.DB) error {
	if !tx.Statement.Unscoped {
		return tx.Update("is_deleted", true).Error
	}
	return nil
}

// BeforeUpdate 恢復刪除時 is_deleted 改回 false
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("DeletedAt") {
		if undelete, ok := tx.Statement.Get("gorm:undelete"); ok && undelete.(bool) {
			return tx.Update("is_deleted", false).Error
		}
	}
	return nil
}
