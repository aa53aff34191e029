package postgres

import (
	"database/sql"

	"campuspool-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarpoolRepository
	repository.JoinRequestRepository
	repository.TagRepository
}

// NewStore wires every repository over the shared connection pool. localTZ is
// the IANA timezone used to decide whether a carpool's departure has passed
// (notification counters, reminder digests).
func NewStore(db *sql.DB, localTZ string) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		CarpoolRepository:     NewCarpoolRepository(db),
		JoinRequestRepository: NewJoinRequestRepository(db, localTZ),
		TagRepository:         NewTagRepository(db),
	}
}
