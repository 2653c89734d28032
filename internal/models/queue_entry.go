package models

import "time"

type QueueEntry struct {
	ID int `json:"id" yaml:"id"`

	CustomerName string `json:"customer_name" yaml:"customer_name"`
	Phone        string `json:"phone" yaml:"phone"`

	BarberID  int `json:"barber_id" yaml:"barber_id"`
	ServiceID int `json:"service_id" yaml:"service_id"`

	// Position só vale enquanto Status == "waiting".
	Position      int    `json:"position" yaml:"position"`
	Status        string `json:"status" yaml:"status"`
	EstimatedWait int    `json:"estimated_wait" yaml:"estimated_wait"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
