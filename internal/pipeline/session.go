package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/JustinLoye/network-agents/internal/iyp"
)

// State identifies the retrieval stage a session is in.
type State string

const (
	StateExtractingEntities State = "extracting_entities"
	StateSynthesizingQuery  State = "synthesizing_query"
	StateExecutingQuery     State = "executing_query"
	StatePresenting         State = "presenting"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Session carries the full trace of one question through the retrieval
// stages. On failure it still holds whatever intermediate artifacts were
// produced, so callers can show the offending query or entities.
type Session struct {
	ID        string
	State     State
	StartedAt time.Time

	UserQuery   string
	Entities    []string
	CypherQuery string
	Records     []iyp.Record
	Answer      string

	// Err is set when State is StateFailed.
	Err error
}

func newSession(userQuery string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		State:     StateExtractingEntities,
		StartedAt: time.Now(),
		UserQuery: userQuery,
	}
}

func (s *Session) fail(err error) *Session {
	s.State = StateFailed
	s.Err = err
	return s
}
