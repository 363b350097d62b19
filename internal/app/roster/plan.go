package roster

import (
	"slices"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Move cambia la posición de un atleta dentro de un mismo equipo.
type Move struct {
	AthleteID int64
	From, To  int
}

// scanOrder: titulares 1..5, luego capitán 0, luego suplentes.
func scanOrder(maxSlots int) []int {
	order := make([]int, 0, maxSlots)
	for p := domain.FirstPrimary; p <= domain.LastPrimary && p < maxSlots; p++ {
		order = append(order, p)
	}
	order = append(order, domain.CaptainPosition)
	for p := domain.FirstSub; p < maxSlots; p++ {
		order = append(order, p)
	}
	return order
}

// PlanAssign elige la primera posición libre y elegible para el atleta.
// Si su equipo real ya está en otro titular, se saltan todos los titulares.
func PlanAssign(slots []domain.Slot, a domain.Athlete, maxSlots int) (int, error) {
	taken := make(map[int]bool, len(slots))
	clash := false
	for _, s := range slots {
		taken[s.Position] = true
		if domain.IsPrimary(s.Position) && s.AthleteID != a.ID && s.Athlete.SameRealTeam(a) {
			clash = true
		}
	}
	for _, p := range scanOrder(maxSlots) {
		if taken[p] {
			continue
		}
		if clash && domain.IsPrimary(p) {
			continue
		}
		return p, nil
	}
	if clash {
		return 0, domain.Capacity("no open slot for %s: their team already has a starter and the bench is full", a.Name)
	}
	return 0, domain.Capacity("roster is full (%d slots)", maxSlots)
}

// PlanSetPosition arma el arreglo propuesto (mover o intercambiar) sin tocar el original.
func PlanSetPosition(slots []domain.Slot, athleteID int64, dest, maxSlots int) ([]domain.Slot, []Move, error) {
	if dest < 0 || dest >= maxSlots {
		return nil, nil, domain.Validation("position must be between 0 and %d", maxSlots-1)
	}
	proposed := slices.Clone(slots)
	src := -1
	occ := -1
	for i, s := range proposed {
		if s.AthleteID == athleteID {
			src = i
		}
		if s.Position == dest {
			occ = i
		}
	}
	if src < 0 {
		return nil, nil, domain.NotFound("athlete is not on this roster")
	}
	from := proposed[src].Position
	if from == dest {
		return proposed, nil, nil
	}

	moves := []Move{{AthleteID: athleteID, From: from, To: dest}}
	proposed[src].Position = dest
	if occ >= 0 {
		proposed[occ].Position = from
		moves = append(moves, Move{AthleteID: proposed[occ].AthleteID, From: dest, To: from})
	}
	return proposed, moves, nil
}

// ValidateDiversity: dos titulares no pueden compartir equipo real.
func ValidateDiversity(slots []domain.Slot) error {
	seen := make(map[int64]domain.Slot)
	for _, s := range slots {
		if !domain.IsPrimary(s.Position) || s.Athlete.RealTeamID == nil {
			continue
		}
		team := *s.Athlete.RealTeamID
		if other, ok := seen[team]; ok {
			return domain.Consistency("%s and %s play for the same team and cannot both start", other.Athlete.Name, s.Athlete.Name)
		}
		seen[team] = s
	}
	return nil
}
