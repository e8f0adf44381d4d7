package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient IDs are caller-supplied (e.g. "P001") and act as the primary key.
// BMI and Verdict are derived from Height/Weight and must never be written
// independently of them.
type Patient struct {
	ID        string    `gorm:"primaryKey;size:10" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null" json:"city"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    Gender    `gorm:"not null" json:"gender"`
	Height    float64   `gorm:"not null" json:"height"`
	Weight    float64   `gorm:"not null" json:"weight"`
	BMI       *float64  `json:"bmi"`
	Verdict   *string   `json:"verdict"`
	CreatedAt time.Time `json:"created_at"`
}
