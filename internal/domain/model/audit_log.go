package model

import "time"

type AuditAction string

const (
	AuditActionCreateItem AuditAction = "CREATE_ITEM"
	AuditActionUpdateItem AuditAction = "UPDATE_ITEM"
)

type AuditResource string

const (
	AuditResourceItem AuditResource = "ITEM"
)

// 管理操作の記録。「誰が」「何を」「どう変えたか」を残す。
type AuditLog struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  string        `gorm:"type:uuid;not null;index" json:"actor_user_id"`
	Action       AuditAction   `gorm:"type:varchar(40);not null" json:"action"`
	ResourceType AuditResource `gorm:"type:varchar(40);not null" json:"resource_type"`
	ResourceID   string        `gorm:"type:uuid;not null;index" json:"resource_id"`
	BeforeJSON   string        `gorm:"type:text" json:"before_json"`
	AfterJSON    string        `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
