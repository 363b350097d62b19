package discord

import (
	"time"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
)

// step mide un comando; el cierre recibe el error final para clasificar el outcome.
func (r *Router) step(name string) func(err error) {
	start := time.Now()
	return func(err error) {
		d := time.Since(start)
		out := outcome(err)
		r.metrics.Command(name, out, d)
		ev := r.log.Debug()
		if out == metrics.OutcomeError {
			ev = r.log.Error().Err(err)
		}
		ev.Str("cmd", name).Str("outcome", out).Dur("took", d).Msg("command done")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case domain.KindOf(err) == domain.KindConflict:
		return metrics.OutcomeDuplicate
	case domain.KindOf(err) != domain.KindInternal:
		return metrics.OutcomeUserError
	}
	return metrics.OutcomeError
}
