package audit

import "go.uber.org/zap"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			zap.L().Warn("audit write failed", zap.Error(err))
		}
	}
}

// Dispatch nunca bloqueia o caminho da request; dispatcher nil descarta.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		zap.L().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
