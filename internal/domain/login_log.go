package domain

import "time"

type LoginUserType string

const (
	LoginUserTypeAdmin LoginUserType = "admin"
	LoginUserTypeNGO   LoginUserType = "ngo"
)

type LoginLog struct {
	Timestamp  time.Time     `json:"timestamp"`
	UserType   LoginUserType `json:"user_type"`
	Identifier string        `json:"identifier"`
}
