package stor

import (
	"errors"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"gorm.io/gorm"
)

type ActorStor interface {
	CreateActor(actor *aemodel.Actor) (*aemodel.Actor, error)
	GetActorByID(actorID int) (*aemodel.Actor, error)
	// ReplaceTokenImages overwrites the actor's whole variant list and resets
	// the actor's shared index marker to 0 in a single write.
	ReplaceTokenImages(actorID int, list aemodel.VariantList) error
}

type TokenStor interface {
	CreateToken(token *aemodel.Token) (*aemodel.Token, error)
	GetTokenByID(tokenID int) (*aemodel.Token, error)
	ListTokensForActorInScene(actorID, sceneID int) ([]aemodel.Token, error)
	UpdateTokenDisplay(tokenID int, textureSrc string, width, height float64) (*aemodel.Token, error)
}

// CycleIndexStor holds the per-token cycle index. A token that has never been
// cycled reads as index 0.
type CycleIndexStor interface {
	GetCurrentIndex(tokenID int) (int, error)
	SetCurrentIndex(tokenID, index int) error
}

type UserStor interface {
	CreateUser(user *aemodel.User) (*aemodel.User, error)
	GetUserBySlug(slug string) (*aemodel.User, error)
	GetUserByAPIToken(apitoken string) (*aemodel.User, error)
}

type Stors struct {
	ActorStor      ActorStor
	TokenStor      TokenStor
	CycleIndexStor CycleIndexStor
	UserStor       UserStor
}

func NewGormStors(db *gorm.DB) *Stors {
	tokenStor := NewGormTokenStor(db)
	return &Stors{
		ActorStor:      NewGormActorStor(db),
		TokenStor:      tokenStor,
		CycleIndexStor: tokenStor,
		UserStor:       NewGormUserStor(db),
	}
}

func translateNotFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return aeerr.NotFound("no such %s: %v", what, id)
	}

	return err
}
