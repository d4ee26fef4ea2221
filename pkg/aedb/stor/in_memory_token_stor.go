package stor

import (
	"sort"
	"sync"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
)

// InMemoryTokenStor is a TokenStor and CycleIndexStor backed by a map.
type InMemoryTokenStor struct {
	mu     sync.Mutex
	tokens map[int]*aemodel.Token
	nextID int

	// DisplayErr and IndexErr, when set, are returned by UpdateTokenDisplay
	// and SetCurrentIndex respectively.
	DisplayErr error
	IndexErr   error
}

func NewInMemoryTokenStor(tokens []aemodel.Token) *InMemoryTokenStor {
	s := &InMemoryTokenStor{tokens: make(map[int]*aemodel.Token)}
	for i := range tokens {
		token := tokens[i]
		s.tokens[token.ID] = &token
		if token.ID > s.nextID {
			s.nextID = token.ID
		}
	}

	return s
}

func (s *InMemoryTokenStor) CreateToken(token *aemodel.Token) (*aemodel.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	token.ID = s.nextID
	created := *token
	s.tokens[token.ID] = &created

	return token, nil
}

func (s *InMemoryTokenStor) GetTokenByID(tokenID int) (*aemodel.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return nil, aeerr.NotFound("no such token: %d", tokenID)
	}

	t := *token
	return &t, nil
}

func (s *InMemoryTokenStor) ListTokensForActorInScene(actorID, sceneID int) ([]aemodel.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tokens []aemodel.Token
	for _, token := range s.tokens {
		if token.ActorID == actorID && token.SceneID == sceneID {
			tokens = append(tokens, *token)
		}
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID < tokens[j].ID })

	return tokens, nil
}

// RemoveToken deletes a token, as when it is removed from its scene.
func (s *InMemoryTokenStor) RemoveToken(tokenID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenID)
}

func (s *InMemoryTokenStor) UpdateTokenDisplay(tokenID int, textureSrc string, width, height float64) (*aemodel.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DisplayErr != nil {
		return nil, s.DisplayErr
	}

	token, ok := s.tokens[tokenID]
	if !ok {
		return nil, aeerr.NotFound("no such token: %d", tokenID)
	}

	token.TextureSrc = textureSrc
	token.Width = width
	token.Height = height

	t := *token
	return &t, nil
}

func (s *InMemoryTokenStor) GetCurrentIndex(tokenID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return 0, aeerr.NotFound("no such token: %d", tokenID)
	}

	return token.CurrentIndex, nil
}

func (s *InMemoryTokenStor) SetCurrentIndex(tokenID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.IndexErr != nil {
		return s.IndexErr
	}

	token, ok := s.tokens[tokenID]
	if !ok {
		return aeerr.NotFound("no such token: %d", tokenID)
	}

	token.CurrentIndex = index

	return nil
}
