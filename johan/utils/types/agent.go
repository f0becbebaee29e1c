package types

type CreateAgentRequest struct {
	Name  string   `json:"name"`
	Model string   `json:"model"`
	Tools []string `json:"tools"`
}

type UpdateAgentRequest struct {
	Name  *string   `json:"name,omitempty"`
	Model *string   `json:"model,omitempty"`
	Tools *[]string `json:"tools,omitempty"`
}
