package models

// Barber é dado de referência: o motor de fila apenas lê.
type Barber struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	IsAvailable bool   `json:"is_available" yaml:"is_available"`
}
