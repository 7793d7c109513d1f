package models

// Platform is a supported video site and the domain substrings that identify it.
type Platform struct {
	Name    string   `json:"name"`
	Domains []string `json:"domains"`
}
