package types

// SystemStatus is a point-in-time health snapshot of the supporting
// infrastructure. It is computed on demand and never cached.
type SystemStatus struct {
	Redis        string `json:"redis"`
	Webserver    string `json:"webserver"`
	Orchestrator string `json:"orchestrator"`
	Uptime       string `json:"uptime"`
}

// StopResult reports the outcome of a worker stop request. Success is
// false when no worker process was running, which is not an error.
type StopResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Stopped []string `json:"stopped,omitempty"`
}
