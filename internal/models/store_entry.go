package models

import "time"

// StoreEntry é uma linha do armazenamento chave/valor usado pelos
// backends SQL (sqlite e postgres).
type StoreEntry struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
