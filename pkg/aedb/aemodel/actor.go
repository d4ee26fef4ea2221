package aemodel

import (
	"time"

	"gorm.io/datatypes"
)

// Actor is the persistent character that owns a variant list. Every token
// placed for the actor cycles through the same list.
type Actor struct {
	ID          int            `json:"id"`
	UUID        string         `json:"uuid"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	TokenImages datatypes.JSON `json:"-"`
	// CurrentIndex is the shared index marker. It is reset to 0 whenever the
	// list is replaced; tokens keep their own index.
	CurrentIndex int       `json:"current_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a Actor) Variants() (VariantList, error) {
	return DecodeVariantList(a.TokenImages)
}
