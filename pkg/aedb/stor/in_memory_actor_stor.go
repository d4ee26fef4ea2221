package stor

import (
	"sync"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
)

type InMemoryActorStor struct {
	mu     sync.Mutex
	actors map[int]*aemodel.Actor
	nextID int

	// Set WriteErr to make ReplaceTokenImages fail, e.g. to simulate a
	// permission-denied write.
	WriteErr error
}

func NewInMemoryActorStor(actors []aemodel.Actor) *InMemoryActorStor {
	s := &InMemoryActorStor{actors: make(map[int]*aemodel.Actor)}
	for i := range actors {
		actor := actors[i]
		s.actors[actor.ID] = &actor
		if actor.ID > s.nextID {
			s.nextID = actor.ID
		}
	}

	return s
}

func (s *InMemoryActorStor) CreateActor(actor *aemodel.Actor) (*aemodel.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	actor.ID = s.nextID
	created := *actor
	s.actors[actor.ID] = &created

	return actor, nil
}

func (s *InMemoryActorStor) GetActorByID(actorID int) (*aemodel.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, ok := s.actors[actorID]
	if !ok {
		return nil, aeerr.NotFound("no such actor: %d", actorID)
	}

	a := *actor
	return &a, nil
}

func (s *InMemoryActorStor) ReplaceTokenImages(actorID int, list aemodel.VariantList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}

	actor, ok := s.actors[actorID]
	if !ok {
		return aeerr.NotFound("no such actor: %d", actorID)
	}

	encoded, err := aemodel.EncodeVariantList(list)
	if err != nil {
		return err
	}

	actor.TokenImages = encoded
	actor.CurrentIndex = 0

	return nil
}
