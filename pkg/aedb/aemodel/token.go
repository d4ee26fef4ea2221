package aemodel

import "time"

// Token is a display instance of an actor on a scene.
type Token struct {
	ID           int       `json:"id"`
	UUID         string    `json:"uuid"`
	ActorID      int       `json:"actor_id"`
	Actor        *Actor    `json:"actor,omitempty" gorm:"foreignKey:ActorID;references:ID"`
	SceneID      int       `json:"scene_id"`
	Name         string    `json:"name"`
	TextureSrc   string    `json:"texture_src"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	CurrentIndex int       `json:"current_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
