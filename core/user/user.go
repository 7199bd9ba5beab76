package user

import "time"

type User struct {
	ID              string    `json:"id" db:"user_id"`
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	Role            string    `json:"-" db:"role"`
	PasswordHash    []byte    `json:"-" db:"password_hash"`
	LongTermPatient bool      `json:"longTermPatient" db:"long_term_patient"`
	HospitalName    string    `json:"hospitalName" db:"hospital_name"`
	RoomNumber      string    `json:"roomNumber" db:"room_number"`
	PreferredVRMode string    `json:"preferredVrMode" db:"preferred_vr_mode"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type ProfileUp struct {
	Name            *string `json:"name"`
	LongTermPatient *bool   `json:"longTermPatient"`
	HospitalName    *string `json:"hospitalName"`
	RoomNumber      *string `json:"roomNumber"`
	PreferredVRMode *string `json:"preferredVrMode" validate:"omitempty,oneof=seated standing room-scale"`
}
