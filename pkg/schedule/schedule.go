package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trellisml/trellis/pkg/spec"
)

type Kind int

const (
	KindRecurrence Kind = iota
	KindStorageTrigger
)

func (k Kind) String() string {
	switch k {
	case KindRecurrence:
		return "recurrence"
	case KindStorageTrigger:
		return "storage_trigger"
	}
	return "unknown"
}

type Frequency string

const (
	FrequencyMinute Frequency = "Minute"
	FrequencyHour   Frequency = "Hour"
	FrequencyDay    Frequency = "Day"
	FrequencyWeek   Frequency = "Week"
)

// Schedule is a trigger rule bound to a published pipeline. Exactly one of
// Recurrence or StorageTrigger is set, selected by Kind.
type Schedule struct {
	Name           string
	Kind           Kind
	Recurrence     *Recurrence
	StorageTrigger *StorageTrigger
}

type Recurrence struct {
	Frequency Frequency
	Interval  int
	Hour      *int
	Minute    *int
}

type StorageTrigger struct {
	Datastore    string
	PathPrefix   string
	PollInterval time.Duration
}

// FromSpec builds a schedule from its manifest block. The two trigger
// variants are mutually exclusive; a block that sets both or neither is
// rejected.
func FromSpec(scheduleSpec *spec.ScheduleSpec) (*Schedule, error) {
	if scheduleSpec == nil {
		return nil, errors.New("no schedule specified")
	}

	if scheduleSpec.Recurrence != nil && scheduleSpec.StorageTrigger != nil {
		return nil, errors.New("schedule must specify either a recurrence or a storage trigger, not both")
	}

	if scheduleSpec.Recurrence != nil {
		recurrence, err := newRecurrence(scheduleSpec.Recurrence)
		if err != nil {
			return nil, err
		}
		return &Schedule{
			Name:       scheduleSpec.Name,
			Kind:       KindRecurrence,
			Recurrence: recurrence,
		}, nil
	}

	if scheduleSpec.StorageTrigger != nil {
		trigger, err := newStorageTrigger(scheduleSpec.StorageTrigger)
		if err != nil {
			return nil, err
		}
		return &Schedule{
			Name:           scheduleSpec.Name,
			Kind:           KindStorageTrigger,
			StorageTrigger: trigger,
		}, nil
	}

	return nil, errors.New("schedule must specify a recurrence or a storage trigger")
}

func newRecurrence(recurrenceSpec *spec.RecurrenceSpec) (*Recurrence, error) {
	frequency, err := parseFrequency(recurrenceSpec.Frequency)
	if err != nil {
		return nil, err
	}

	interval := recurrenceSpec.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 1 {
		return nil, fmt.Errorf("invalid recurrence interval %d", interval)
	}

	if recurrenceSpec.Hour != nil && (*recurrenceSpec.Hour < 0 || *recurrenceSpec.Hour > 23) {
		return nil, fmt.Errorf("invalid recurrence hour %d", *recurrenceSpec.Hour)
	}
	if recurrenceSpec.Minute != nil && (*recurrenceSpec.Minute < 0 || *recurrenceSpec.Minute > 59) {
		return nil, fmt.Errorf("invalid recurrence minute %d", *recurrenceSpec.Minute)
	}

	return &Recurrence{
		Frequency: frequency,
		Interval:  interval,
		Hour:      recurrenceSpec.Hour,
		Minute:    recurrenceSpec.Minute,
	}, nil
}

func newStorageTrigger(triggerSpec *spec.StorageTriggerSpec) (*StorageTrigger, error) {
	if triggerSpec.Datastore == "" {
		return nil, errors.New("storage trigger requires a datastore")
	}

	pollIntervalMinutes := triggerSpec.PollIntervalMinutes
	if pollIntervalMinutes == 0 {
		pollIntervalMinutes = 5
	}
	if pollIntervalMinutes < 1 {
		return nil, fmt.Errorf("invalid storage trigger poll interval %d", pollIntervalMinutes)
	}

	return &StorageTrigger{
		Datastore:    triggerSpec.Datastore,
		PathPrefix:   triggerSpec.PathPrefix,
		PollInterval: time.Duration(pollIntervalMinutes) * time.Minute,
	}, nil
}

func parseFrequency(frequency string) (Frequency, error) {
	switch strings.ToLower(frequency) {
	case "minute":
		return FrequencyMinute, nil
	case "hour":
		return FrequencyHour, nil
	case "day":
		return FrequencyDay, nil
	case "week":
		return FrequencyWeek, nil
	}
	return "", fmt.Errorf("invalid recurrence frequency '%s'", frequency)
}

// String renders the recurrence rule as the platform would evaluate it,
// e.g. "every other day at 22:30".
func (r *Recurrence) String() string {
	unit := strings.ToLower(string(r.Frequency))

	var cadence string
	switch r.Interval {
	case 1:
		cadence = fmt.Sprintf("every %s", unit)
	case 2:
		cadence = fmt.Sprintf("every other %s", unit)
	default:
		cadence = fmt.Sprintf("every %d %ss", r.Interval, unit)
	}

	if r.Hour != nil && r.Minute != nil {
		return fmt.Sprintf("%s at %02d:%02d", cadence, *r.Hour, *r.Minute)
	}

	return cadence
}

func (s *StorageTrigger) String() string {
	if s.PathPrefix == "" {
		return fmt.Sprintf("on change in %s (polled every %s)", s.Datastore, s.PollInterval)
	}
	return fmt.Sprintf("on change in %s/%s (polled every %s)", s.Datastore, s.PathPrefix, s.PollInterval)
}

func (s *Schedule) String() string {
	switch s.Kind {
	case KindRecurrence:
		return s.Recurrence.String()
	case KindStorageTrigger:
		return s.StorageTrigger.String()
	}
	return "unknown schedule"
}
