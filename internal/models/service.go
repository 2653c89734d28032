package models

type Service struct {
	ID              int    `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
}
