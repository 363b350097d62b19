// Package roster ubica atletas en los slots de un fantasy team respetando
// capacidad y la regla de un titular por equipo real.
package roster

import (
	"context"
	"fmt"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Store lo implementa internal/infra/storage.Store.
type Store interface {
	GetAthlete(ctx context.Context, id int64) (domain.Athlete, error)
	// SlotOf busca la asignación del atleta en cualquier equipo.
	SlotOf(ctx context.Context, athleteID int64) (domain.Slot, bool, error)
	Roster(ctx context.Context, teamID int64) ([]domain.Slot, error)
	InsertSlot(ctx context.Context, s domain.Slot) error
	DeleteSlot(ctx context.Context, teamID, athleteID int64) (bool, error)
	// ApplyMoves aplica todos los cambios o ninguno.
	ApplyMoves(ctx context.Context, teamID int64, moves []Move) error
}

type Allocator struct {
	store    Store
	subSlots int
}

func NewAllocator(store Store, subSlots int) *Allocator {
	return &Allocator{store: store, subSlots: subSlots}
}

func (a *Allocator) MaxSlots() int { return domain.MaxSlots(a.subSlots) }

func (a *Allocator) SubSlots() int { return a.subSlots }

// SetSubSlots cambia la cantidad de suplentes; no reubica a nadie.
func (a *Allocator) SetSubSlots(n int) error {
	if n < 0 {
		return domain.Validation("sub slots cannot be negative")
	}
	a.subSlots = n
	return nil
}

// Assign ubica al atleta en la primera posición libre elegible y la devuelve.
func (a *Allocator) Assign(ctx context.Context, teamID, athleteID int64) (int, error) {
	ath, err := a.store.GetAthlete(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	if cur, ok, err := a.store.SlotOf(ctx, athleteID); err != nil {
		return 0, err
	} else if ok {
		if cur.FantasyTeamID == teamID {
			return 0, domain.Conflict("%s is already on your roster", ath.Name)
		}
		return 0, domain.Conflict("%s has already been drafted", ath.Name)
	}

	slots, err := a.store.Roster(ctx, teamID)
	if err != nil {
		return 0, err
	}
	pos, err := PlanAssign(slots, ath, a.MaxSlots())
	if err != nil {
		return 0, err
	}
	if err := a.store.InsertSlot(ctx, domain.Slot{FantasyTeamID: teamID, AthleteID: athleteID, Position: pos}); err != nil {
		return 0, fmt.Errorf("assign %s: %w", ath.Name, err)
	}
	return pos, nil
}

// Remove borra la asignación. Que el draft esté completo lo valida el llamador.
func (a *Allocator) Remove(ctx context.Context, teamID, athleteID int64) error {
	ok, err := a.store.DeleteSlot(ctx, teamID, athleteID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("athlete is not on this roster")
	}
	return nil
}

// SetPosition mueve o intercambia y valida el arreglo completo antes de escribir.
// Si la diversidad se rompe no se escribe nada.
func (a *Allocator) SetPosition(ctx context.Context, teamID, athleteID int64, dest int) ([]Move, error) {
	slots, err := a.store.Roster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	proposed, moves, err := PlanSetPosition(slots, athleteID, dest, a.MaxSlots())
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, nil
	}
	if err := ValidateDiversity(proposed); err != nil {
		return nil, err
	}
	if err := a.store.ApplyMoves(ctx, teamID, moves); err != nil {
		return nil, fmt.Errorf("set position: %w", err)
	}
	return moves, nil
}
