package platform

// Resource handles owned and persisted by the platform. The client only ever
// holds references to them.

const (
	ProvisioningStateCreating  = "Creating"
	ProvisioningStateSucceeded = "Succeeded"
	ProvisioningStateFailed    = "Failed"
)

type Workspace struct {
	Id       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

type ComputeTarget struct {
	Name              string `json:"name,omitempty"`
	VMSize            string `json:"vm_size,omitempty"`
	MinNodes          int    `json:"min_nodes"`
	MaxNodes          int    `json:"max_nodes"`
	IdleSeconds       int    `json:"idle_seconds,omitempty"`
	ProvisioningState string `json:"provisioning_state,omitempty"`
}

type Dataset struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Kind string `json:"kind,omitempty"`
}

type Environment struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type PublishedPipeline struct {
	Id       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type ScheduleResource struct {
	Id       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Pipeline string `json:"pipeline,omitempty"`
	Status   string `json:"status,omitempty"`
}

type RunStatus struct {
	Id     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Response is the platform's generic result envelope.
type Response struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

type ValidationResult struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

type SubmitResult struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
	RunId   string `json:"run_id,omitempty"`
}
