package domain

// AgentSummary is one row of the agent listing. The listing is a fixed
// catalogue; rows are not derived from created agents.
type AgentSummary struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Created string `json:"created"`
}

type AgentList struct {
	Status string         `json:"status"`
	Agents []AgentSummary `json:"agents"`
}
