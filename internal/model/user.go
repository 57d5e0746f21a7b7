package model

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

type User struct {
	BaseModel
	Name     string `db:"name" json:"name"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
	Phone    string `db:"phone" json:"phone"`
	Role     string `db:"role" json:"role"`
	Status   bool   `db:"status" json:"status"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
