package entity

import "time"

// Roles válidos para User.
const (
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleAdmin      = "admin"
)

// ValidRole informa si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleAccountant || role == RoleAdmin
}

// User representa un usuario del sistema con sus credenciales.
// El rol es inmutable después de la creación.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // manager, accountant, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity es la tripleta autenticada que viaja en la sesión.
// No lleva credenciales: es lo único que se persiste fuera del proceso.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Identity proyecta el User a su identidad autenticada.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Session representa "quién está conectado" para un token emitido.
// Se crea en el login, se destruye en el logout y vive en el almacén externo
// para sobrevivir reinicios del proceso.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
