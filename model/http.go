package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type DiffSummary struct {
	OnlyInA int `json:"only_in_a"`
	OnlyInB int `json:"only_in_b"`
}
