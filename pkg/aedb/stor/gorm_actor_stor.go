package stor

import (
	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GormActorStor struct {
	db *gorm.DB
}

func NewGormActorStor(db *gorm.DB) *GormActorStor {
	return &GormActorStor{db: db}
}

// CreateActor creates a new actor with an empty variant list.
func (s *GormActorStor) CreateActor(actor *aemodel.Actor) (*aemodel.Actor, error) {
	var err error

	if actor.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if actor.Slug == "" {
		actor.Slug = slug.Make(actor.Name)
	}

	if len(actor.TokenImages) == 0 {
		actor.TokenImages = datatypes.JSON("[]")
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(actor).Error
	})

	if err != nil {
		return nil, err
	}

	return actor, nil
}

func (s *GormActorStor) GetActorByID(actorID int) (*aemodel.Actor, error) {
	var actor aemodel.Actor
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return nil, translateNotFound(err, "actor", actorID)
	}

	return &actor, nil
}

func (s *GormActorStor) ReplaceTokenImages(actorID int, list aemodel.VariantList) error {
	encoded, err := aemodel.EncodeVariantList(list)
	if err != nil {
		return err
	}

	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		var actor aemodel.Actor
		if err := tx.Select("id").First(&actor, actorID).Error; err != nil {
			return translateNotFound(err, "actor", actorID)
		}

		return tx.Model(&actor).Updates(map[string]interface{}{
			"token_images":  datatypes.JSON(encoded),
			"current_index": 0,
		}).Error
	})
}
