package engine

import (
	"campusverify/models"
	"campusverify/store"
)

// SuspendActor bars an actor from submitting and voting. Blocking is
// automatic, suspension is an operator decision.
func (e *Engine) SuspendActor(actorID string) (*models.Actor, error) {
	return e.setActorStatus(actorID, models.ActorStatusSuspended)
}

// ReinstateActor returns a flagged or suspended actor to active status
// and clears enhanced monitoring.
func (e *Engine) ReinstateActor(actorID string) (*models.Actor, error) {
	e.actorLocks.Lock(actorID)
	defer e.actorLocks.Unlock(actorID)

	var out *models.Actor
	err := e.store.Tx(func(st store.Store) error {
		actor, err := st.LoadActor(actorID)
		if err != nil {
			return err
		}
		actor.Status = models.ActorStatusActive
		actor.Monitored = false
		if err := st.SaveActor(actor); err != nil {
			return err
		}
		out = actor
		return nil
	})
	return out, err
}

func (e *Engine) setActorStatus(actorID string, status models.ActorStatus) (*models.Actor, error) {
	e.actorLocks.Lock(actorID)
	defer e.actorLocks.Unlock(actorID)

	var out *models.Actor
	err := e.store.Tx(func(st store.Store) error {
		actor, err := st.LoadActor(actorID)
		if err != nil {
			return err
		}
		actor.Status = status
		if err := st.SaveActor(actor); err != nil {
			return err
		}
		out = actor
		return nil
	})
	return out, err
}
