package schema

// UserUsuarioTable represents the 'users.usuario' table
type UserUsuarioTable struct {
	Table        string
	ID           string
	Email        string
	Password     string
	Nombre       string
	Rol          string
	CondominioID string
	Activo       string
	LastLoginAt  string
	CreatedAt    string
	UpdatedAt    string
}

// UserUsuario is the schema definition for users.usuario
var UserUsuario = UserUsuarioTable{
	Table:        "users.usuario",
	ID:           "id",
	Email:        "email",
	Password:     "passwordhash",
	Nombre:       "nombre",
	Rol:          "rol",
	CondominioID: "condominioid",
	Activo:       "activo",
	LastLoginAt:  "lastloginat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserUsuarioTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Nombre, t.Rol, t.CondominioID,
		t.Activo, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
