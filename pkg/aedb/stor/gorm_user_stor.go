package stor

import (
	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user. When no API token is set one is generated.
func (s *GormUserStor) CreateUser(user *aemodel.User) (*aemodel.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if user.ApiToken == "" {
		if user.ApiToken, err = uuid.GenerateUUID(); err != nil {
			return nil, err
		}
	}

	if user.Slug == "" {
		user.Slug = slug.Make(user.Name)
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *GormUserStor) GetUserBySlug(slug string) (*aemodel.User, error) {
	var user aemodel.User
	if err := s.db.Where("slug = ?", slug).First(&user).Error; err != nil {
		return nil, translateNotFound(err, "user", slug)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*aemodel.User, error) {
	var user aemodel.User
	if err := s.db.Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, translateNotFound(err, "user with api token", "<redacted>")
	}

	return &user, nil
}
