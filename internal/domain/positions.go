package domain

import "fmt"

// Esquema de posiciones (0-based):
//
//	0      capitán/flex, exento de la regla de diversidad, x1.2
//	1..5   titulares, suman puntos y no pueden repetir equipo real
//	6..    suplentes, no suman y no tienen restricción
const (
	CaptainPosition   = 0
	FirstPrimary      = 1
	LastPrimary       = 5
	FirstSub          = 6
	BaseSlots         = 6
	MaxRosterSlots    = 10
	CaptainMultiplier = 1.2
)

func IsCaptain(pos int) bool { return pos == CaptainPosition }
func IsPrimary(pos int) bool { return pos >= FirstPrimary && pos <= LastPrimary }
func IsSub(pos int) bool     { return pos >= FirstSub }

// Scores reporta si la posición cuenta para el total del equipo.
func Scores(pos int) bool { return pos >= CaptainPosition && pos <= LastPrimary }

// MaxSlots = min(10, 6 + subSlots).
func MaxSlots(subSlots int) int {
	if subSlots < 0 {
		subSlots = 0
	}
	return min(MaxRosterSlots, BaseSlots+subSlots)
}

func PositionName(pos int) string {
	switch {
	case IsCaptain(pos):
		return "Captain"
	case IsPrimary(pos):
		return fmt.Sprintf("Player %d", pos)
	case IsSub(pos):
		return fmt.Sprintf("Sub %d", pos-LastPrimary)
	}
	return fmt.Sprintf("#%d", pos)
}
