package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/pkg/logger"
)

// Scheduler corre el barrido programado de recálculo: recoge gastos
// compartidos cuyo disparo automático falló de forma transitoria. El
// orquestador ya serializa invocaciones, así que un barrido que coincide
// con un disparo por creación de gasto simplemente espera su turno.
type Scheduler struct {
	cron     *cron.Cron
	recalc   *costing.RecalculateUseCase
	cronSpec string
	log      *logger.Logger
}

// NewScheduler construye el scheduler. cronSpec vacío lo deja deshabilitado.
func NewScheduler(recalc *costing.RecalculateUseCase, cronSpec string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		recalc:   recalc,
		cronSpec: cronSpec,
		log:      log,
	}
}

// Start registra el barrido y arranca el cron.
func (s *Scheduler) Start() {
	if s.cronSpec == "" {
		s.log.Info().Msg("barrido de recálculo deshabilitado")
		return
	}
	if _, err := s.cron.AddFunc(s.cronSpec, s.runSweep); err != nil {
		s.log.Error().Err(err).Str("cron", s.cronSpec).Msg("no se pudo programar el barrido de recálculo")
		return
	}
	s.log.Info().Str("cron", s.cronSpec).Msg("barrido de recálculo programado")
	s.cron.Start()
}

// Stop detiene el cron.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := s.recalc.Recalculate(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de recálculo falló")
		return
	}
	if res.UnitsUpdated == 0 {
		s.log.Debug().Msg("barrido de recálculo sin trabajo pendiente")
		return
	}
	s.log.Info().
		Int("unidades", res.UnitsUpdated).
		Int("gastos", res.ExpensesApplied).
		Msg("barrido de recálculo aplicado")
}
