package stor

import (
	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

// GormTokenStor stores tokens and, in the current_index column, each token's
// cycle index. It satisfies both TokenStor and CycleIndexStor.
type GormTokenStor struct {
	db *gorm.DB
}

func NewGormTokenStor(db *gorm.DB) *GormTokenStor {
	return &GormTokenStor{db: db}
}

func (s *GormTokenStor) CreateToken(token *aemodel.Token) (*aemodel.Token, error) {
	var err error

	if token.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if token.Width == 0 {
		token.Width = aemodel.SizeMedium.Scale()
	}

	if token.Height == 0 {
		token.Height = aemodel.SizeMedium.Scale()
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(token).Error
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

func (s *GormTokenStor) GetTokenByID(tokenID int) (*aemodel.Token, error) {
	var token aemodel.Token
	if err := s.db.First(&token, tokenID).Error; err != nil {
		return nil, translateNotFound(err, "token", tokenID)
	}

	return &token, nil
}

func (s *GormTokenStor) ListTokensForActorInScene(actorID, sceneID int) ([]aemodel.Token, error) {
	var tokens []aemodel.Token
	err := s.db.Where("actor_id = ? AND scene_id = ?", actorID, sceneID).
		Order("id").
		Find(&tokens).Error
	return tokens, err
}

func (s *GormTokenStor) UpdateTokenDisplay(tokenID int, textureSrc string, width, height float64) (*aemodel.Token, error) {
	var token aemodel.Token

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.First(&token, tokenID).Error; err != nil {
			return translateNotFound(err, "token", tokenID)
		}

		return tx.Model(&token).Updates(map[string]interface{}{
			"texture_src": textureSrc,
			"width":       width,
			"height":      height,
		}).Error
	})

	if err != nil {
		return nil, err
	}

	token.TextureSrc = textureSrc
	token.Width = width
	token.Height = height

	return &token, nil
}

func (s *GormTokenStor) GetCurrentIndex(tokenID int) (int, error) {
	var token aemodel.Token
	if err := s.db.Select("id", "current_index").First(&token, tokenID).Error; err != nil {
		return 0, translateNotFound(err, "token", tokenID)
	}

	return token.CurrentIndex, nil
}

func (s *GormTokenStor) SetCurrentIndex(tokenID, index int) error {
	result := s.db.Model(&aemodel.Token{ID: tokenID}).Update("current_index", index)
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return aeerr.NotFound("no such token: %d", tokenID)
	default:
		return nil
	}
}
