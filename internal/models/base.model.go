package models

import (
	"time"
)

// BaseModel carries the integer primary key and audit timestamps shared by
// persisted entities. Timestamps are stamped by the controllers, not by gorm
// hooks: CreatedAt is set exactly once at first persistence and must never
// change afterwards, which rules out autoUpdateTime-style tags.
type BaseModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"type:datetime"                     json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:datetime"                     json:"updatedAt"`
}
