package schedule

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Window é a janela bruta informada pelo provider ao publicar disponibilidade
type Window struct {
	Start    string
	End      string
	Capacity *int // nil → DEFAULT_SLOT_CAPACITY
}

func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	return nil
}

// ValidateWindows valida a lista de janelas de um createAvailability.
// Start e End são "15:04" e comparados como horários parseados, não
// lexicalmente; End deve vir estritamente depois de Start.
func ValidateWindows(windows []Window) error {
	if len(windows) == 0 {
		return httperr.ErrBusiness("empty_time_slots")
	}

	for _, w := range windows {
		if w.Start == "" || w.End == "" {
			return httperr.ErrBusiness("missing_time")
		}

		start, err := time.Parse(TimeLayout, w.Start)
		if err != nil {
			return httperr.ErrBusiness("invalid_time")
		}

		end, err := time.Parse(TimeLayout, w.End)
		if err != nil {
			return httperr.ErrBusiness("invalid_time")
		}

		if !end.After(start) {
			return httperr.ErrBusiness("invalid_time_range")
		}

		if w.Capacity != nil && *w.Capacity < 0 {
			return httperr.ErrBusiness("invalid_capacity")
		}
	}

	return nil
}
