package models

type UserRole string

const (
	AdminRole    UserRole = "admin"
	EmployeeRole UserRole = "employee"
)

var roleHumanName = map[UserRole]string{
	AdminRole:    "Администратор",
	EmployeeRole: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}
