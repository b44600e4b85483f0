package spec

type ScheduleSpec struct {
	Name           string              `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Recurrence     *RecurrenceSpec     `json:"recurrence,omitempty" yaml:"recurrence,omitempty" mapstructure:"recurrence,omitempty"`
	StorageTrigger *StorageTriggerSpec `json:"storage_trigger,omitempty" yaml:"storage_trigger,omitempty" mapstructure:"storage_trigger,omitempty"`
}

type RecurrenceSpec struct {
	Frequency string `json:"frequency,omitempty" yaml:"frequency,omitempty" mapstructure:"frequency,omitempty"`
	Interval  int    `json:"interval,omitempty" yaml:"interval,omitempty" mapstructure:"interval,omitempty"`
	// Hour and Minute need to be pointers to distinguish midnight from unset.
	Hour   *int `json:"hour,omitempty" yaml:"hour,omitempty" mapstructure:"hour,omitempty"`
	Minute *int `json:"minute,omitempty" yaml:"minute,omitempty" mapstructure:"minute,omitempty"`
}

type StorageTriggerSpec struct {
	Datastore           string `json:"datastore,omitempty" yaml:"datastore,omitempty" mapstructure:"datastore,omitempty"`
	PathPrefix          string `json:"path_prefix,omitempty" yaml:"path_prefix,omitempty" mapstructure:"path_prefix,omitempty"`
	PollIntervalMinutes int    `json:"poll_interval_minutes,omitempty" yaml:"poll_interval_minutes,omitempty" mapstructure:"poll_interval_minutes,omitempty"`
}
