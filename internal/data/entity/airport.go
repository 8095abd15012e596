package entity

type Airport struct {
	Code    string `db:"airport_code"`
	Name    string `db:"name"`
	City    string `db:"city"`
	Country string `db:"country"`
}
