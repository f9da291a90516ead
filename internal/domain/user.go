package domain

import "time"

type User struct {
	ID        int32     `json:"id"`
	AuthUID   string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
