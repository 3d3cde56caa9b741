package credstore

import (
	"context"
	"fmt"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/pkg/cryptox"
)

const (
	// SessionKey is the well-known key the single session record lives
	// under in both areas.
	SessionKey = "herfa.session"

	// TopicChanged is published on the event bus after every Save and
	// Clear so other execution contexts can re-resolve their session.
	TopicChanged = "credentials.changed"
)

// Store coordinates the two persistence areas and the change notification.
type Store struct {
	durable Area
	session Area
	bus     evbus.Bus
	now     func() time.Time
}

// New builds a credential store over the given areas. The bus may be shared
// with other subscribers; Store only publishes TopicChanged on it.
func New(durable, session Area, bus evbus.Bus) *Store {
	return &Store{
		durable: durable,
		session: session,
		bus:     bus,
		now:     time.Now,
	}
}

// Save encodes the record and writes it to the durable area if persistent,
// otherwise to the session-scoped area. Both areas are cleared first so the
// caller never observes a record split across areas. Past-dated records are
// refused.
func (s *Store) Save(ctx context.Context, rec domain.SessionRecord, persistent bool) error {
	if rec.Expired(s.now()) {
		return fmt.Errorf("credstore: refusing to persist expired record")
	}

	encoded, err := Encode(rec)
	if err != nil {
		return err
	}

	row := domain.CredentialRow{
		Key:                 SessionKey,
		Encoded:             encoded,
		RefreshFingerprint:  cryptox.FingerprintToken(rec.RefreshToken),
		ExpiresAt:           rec.ExpiresAt,
		PendingSecondFactor: rec.PendingSecondFactor,
	}

	area := s.session
	if persistent {
		area = s.durable
	}

	// Clear both areas before the write: a replacement session must not
	// leave a stale copy behind in the other area.
	if err := s.clearAreas(ctx); err != nil {
		return err
	}
	if err := area.Put(ctx, row); err != nil {
		return err
	}

	s.notify()
	return nil
}

// Load reads the durable area first, then the session-scoped area, and
// decodes. An undecodable record reads as absent (ok=false) and never as an
// error; the dead row is removed from both areas on the spot, so a corrupt
// session cannot occupy an area or resurface on a later read.
func (s *Store) Load(ctx context.Context) (domain.SessionRecord, bool, error) {
	for _, area := range []Area{s.durable, s.session} {
		row, err := area.Get(ctx, SessionKey)
		if err != nil {
			if err == ErrAbsent {
				continue
			}
			return domain.SessionRecord{}, false, err
		}

		rec, err := Decode(row.Encoded)
		if err != nil {
			if cerr := s.clearAreas(ctx); cerr != nil {
				return domain.SessionRecord{}, false, cerr
			}
			return domain.SessionRecord{}, false, nil
		}
		return rec, true, nil
	}
	return domain.SessionRecord{}, false, nil
}

// Holder reports which area currently holds the record, so a rewrite (e.g.
// clearing the pending flag after a second-factor check) can target the
// same area. Returns persistent=true when the durable area holds it.
func (s *Store) Holder(ctx context.Context) (persistent bool, ok bool, err error) {
	if _, err := s.durable.Get(ctx, SessionKey); err == nil {
		return true, true, nil
	} else if err != ErrAbsent {
		return false, false, err
	}

	if _, err := s.session.Get(ctx, SessionKey); err == nil {
		return false, true, nil
	} else if err != ErrAbsent {
		return false, false, err
	}

	return false, false, nil
}

// Clear removes the record from both areas unconditionally and notifies.
// Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.clearAreas(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Store) clearAreas(ctx context.Context) error {
	if err := s.durable.Delete(ctx, SessionKey); err != nil {
		return err
	}
	return s.session.Delete(ctx, SessionKey)
}

func (s *Store) notify() {
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
