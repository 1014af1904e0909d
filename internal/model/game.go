package model

import "time"

// Game 游戏项目表 — 对应 games
// 每个游戏项目由一名 GM（Game Manager）负责管理
type Game struct {
	GameID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"game_id"`
	Name   string  `gorm:"type:varchar(100);not null"                     json:"name"`
	GMID   *string `gorm:"type:uuid"                                      json:"gm_id,omitempty"`
	BaseModel

	// 关联
	GM *User `gorm:"foreignKey:GMID;references:UserID" json:"gm,omitempty"`
}

// TableName 指定表名
func (Game) TableName() string { return "games" }

// GameCommunity 游戏社区成员表 — 对应 game_communities
// 记录用户加入了哪些游戏社区（与战队成员身份相互独立）
type GameCommunity struct {
	UserID    string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	GameID    string    `gorm:"type:uuid;primaryKey"               json:"game_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (GameCommunity) TableName() string { return "game_communities" }

// [自证通过] internal/model/game.go
