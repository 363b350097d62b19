// Package scoring convierte stat lines en puntos fantasy y cachea los totales por atleta.
package scoring

import (
	"math"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Weight es una fila de la tabla de reglas que se muestra con /rules.
type Weight struct {
	Stat   string
	Points float64
}

var weights = []Weight{
	{"ACS", 0.05},
	{"Kill", 2},
	{"Death", -1},
	{"Assist", 0.5},
	{"2k", 1},
	{"3k", 1.5},
	{"4k", 2},
	{"5k", 2.5},
	{"1v2", 3},
	{"1v3", 4},
	{"1v4", 5},
	{"1v5", 6},
}

// Rules devuelve una copia de la tabla de pesos.
func Rules() []Weight {
	out := make([]Weight, len(weights))
	copy(out, weights)
	return out
}

// Score es puro: el multiplicador de capitán lo aplica quien conoce la posición.
func Score(s domain.StatLine) float64 {
	v := s.ACS*0.05 +
		float64(s.Kills)*2 +
		float64(s.Deaths)*-1 +
		float64(s.Assists)*0.5 +
		float64(s.TwoKills)*1 +
		float64(s.ThreeKills)*1.5 +
		float64(s.FourKills)*2 +
		float64(s.FiveKills)*2.5 +
		float64(s.ClutchV2)*3 +
		float64(s.ClutchV3)*4 +
		float64(s.ClutchV4)*5 +
		float64(s.ClutchV5)*6
	return Round1(v)
}

// Round1 redondea a un decimal (half away from zero).
func Round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0 // evita -0
	}
	return r
}

// ApplyPosition aplica x1.2 al capitán; titulares quedan igual y los suplentes no suman.
func ApplyPosition(points float64, pos int) float64 {
	switch {
	case domain.IsCaptain(pos):
		return Round1(points * domain.CaptainMultiplier)
	case domain.IsPrimary(pos):
		return points
	}
	return 0
}
