package entity

// Roles de actor. El rol llega en el token emitido por el componente de
// sesión (externo); el motor solo lo consume.
const (
	RoleOperator = "OPERATOR"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

// ValidRole indica si el rol es uno de los reconocidos por el motor.
func ValidRole(role string) bool {
	return role == RoleOperator || role == RoleManager || role == RoleAdmin
}
