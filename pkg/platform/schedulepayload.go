package platform

import (
	"errors"

	"github.com/trellisml/trellis/pkg/schedule"
)

// SchedulePayload binds one trigger variant to a published pipeline.
type SchedulePayload struct {
	Name           string                 `json:"name"`
	PipelineId     string                 `json:"pipeline_id"`
	Recurrence     *RecurrencePayload     `json:"recurrence,omitempty"`
	StorageTrigger *StorageTriggerPayload `json:"storage_trigger,omitempty"`
}

type RecurrencePayload struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
	Hour      *int   `json:"hour,omitempty"`
	Minute    *int   `json:"minute,omitempty"`
}

type StorageTriggerPayload struct {
	Datastore           string `json:"datastore"`
	PathPrefix          string `json:"path_prefix,omitempty"`
	PollIntervalMinutes int    `json:"poll_interval_minutes"`
}

// BuildSchedulePayload converts a schedule variant into its wire form. The
// payload carries exactly one trigger.
func BuildSchedulePayload(s *schedule.Schedule, pipelineId string) (*SchedulePayload, error) {
	payload := &SchedulePayload{
		Name:       s.Name,
		PipelineId: pipelineId,
	}

	switch s.Kind {
	case schedule.KindRecurrence:
		payload.Recurrence = &RecurrencePayload{
			Frequency: string(s.Recurrence.Frequency),
			Interval:  s.Recurrence.Interval,
			Hour:      s.Recurrence.Hour,
			Minute:    s.Recurrence.Minute,
		}
	case schedule.KindStorageTrigger:
		payload.StorageTrigger = &StorageTriggerPayload{
			Datastore:           s.StorageTrigger.Datastore,
			PathPrefix:          s.StorageTrigger.PathPrefix,
			PollIntervalMinutes: int(s.StorageTrigger.PollInterval.Minutes()),
		}
	default:
		return nil, errors.New("schedule has no trigger variant")
	}

	return payload, nil
}
