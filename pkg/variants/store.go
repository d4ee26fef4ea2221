package variants

import (
	"strings"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
)

// Row is one line of the variant editor as submitted. Values are taken as
// typed: paths are trimmed and rows without an image path are dropped on save.
type Row struct {
	Path   string `json:"path"`
	Effect string `json:"effect"`
	Size   string `json:"size"`
}

// Store is the configuration store for actor variant lists.
type Store struct {
	actorStor stor.ActorStor
}

func NewStore(actorStor stor.ActorStor) *Store {
	return &Store{actorStor: actorStor}
}

// Load returns the actor's variant list, empty when none was ever saved.
// Lists written in the old bare-string format come back as records.
func (s *Store) Load(actorID int) (aemodel.VariantList, error) {
	actor, err := s.actorStor.GetActorByID(actorID)
	if err != nil {
		return nil, err
	}

	list, err := actor.Variants()
	if err != nil {
		return nil, aeerr.Configuration(err, "actor %d has an unreadable variant list", actorID)
	}

	return list, nil
}

// HasVariants reports whether cycling would do anything for the actor.
func (s *Store) HasVariants(actorID int) bool {
	list, err := s.Load(actorID)
	return err == nil && !list.Empty()
}

// Save replaces the actor's list with rows and resets the actor's shared
// index marker to 0. The returned list is what was written. On error nothing
// should be assumed committed.
func (s *Store) Save(actorID int, rows []Row) (aemodel.VariantList, error) {
	list := Normalize(rows)

	if err := s.actorStor.ReplaceTokenImages(actorID, list); err != nil {
		return nil, aeerr.Persistence(err, "unable to save variants for actor %d", actorID)
	}

	return list, nil
}

// Normalize turns editor rows into records, dropping rows whose image path
// is blank after trimming. No other validation happens here.
func Normalize(rows []Row) aemodel.VariantList {
	list := aemodel.VariantList{}
	for _, row := range rows {
		if strings.TrimSpace(row.Path) == "" {
			continue
		}

		list = append(list, aemodel.NewVariantRecord(row.Path, row.Effect, row.Size))
	}

	return list
}

// RowsFromPaths builds rows carrying only an image path.
func RowsFromPaths(paths ...string) []Row {
	rows := make([]Row, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, Row{Path: p})
	}

	return rows
}
