package models

type Team struct {
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`

	Members []User `db:"-"`
}
