package stor

import (
	"fmt"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
)

type FakeUserStor struct {
	users []aemodel.User
}

func NewFakeUserStor(users []aemodel.User) *FakeUserStor {
	return &FakeUserStor{users: users}
}

func (s *FakeUserStor) CreateUser(user *aemodel.User) (*aemodel.User, error) {
	if user.ApiToken == "" {
		return nil, fmt.Errorf("fake user stor requires an api token")
	}

	user.ID = len(s.users) + 1
	s.users = append(s.users, *user)
	return user, nil
}

func (s *FakeUserStor) GetUserBySlug(slug string) (*aemodel.User, error) {
	for _, u := range s.users {
		if u.Slug == slug {
			return &u, nil
		}
	}
	return nil, aeerr.NotFound("no such user: %s", slug)
}

func (s *FakeUserStor) GetUserByAPIToken(apitoken string) (*aemodel.User, error) {
	for _, u := range s.users {
		if u.ApiToken == apitoken {
			return &u, nil
		}
	}
	return nil, aeerr.NotFound("no user with that api token")
}
