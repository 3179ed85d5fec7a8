package domain

import "github.com/tu-usuario/pos-movil/internal/domain/entity"

// Principal es la identidad resuelta del caller (middleware de auth → casos de uso).
// Se resuelve una sola vez por petición y se pasa como parámetro explícito;
// un caso de uso que reciba un Principal vacío debe rechazar la operación.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// IsZero indica si no hay identidad resuelta.
func (p Principal) IsZero() bool {
	return p.UserID == ""
}

// IsAdmin indica si el caller puede operar sobre recursos de otros usuarios.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}
