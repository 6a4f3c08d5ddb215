package entity

import "time"

// ApiToken backs the "token" auth mode: bearer tokens issued to integration
// clients, revocable without redeploying.
type ApiToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Label     string    `gorm:"column:label;type:varchar(100)"`
	Revoked   uint16    `gorm:"column:revoked;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApiToken) TableName() string {
	return "api_token"
}
