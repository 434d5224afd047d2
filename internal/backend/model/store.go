package model

type Store struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Products []Product `json:"products"`
}
