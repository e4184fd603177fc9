package schema

// CondoEmpleadoTable represents the 'condo.empleado' table.
// Email and Telefono hold ciphertext.
type CondoEmpleadoTable struct {
	Table        string
	ID           string
	CondominioID string
	Nombre       string
	Puesto       string
	Email        string
	Telefono     string
	Activo       string
	CreatedAt    string
	UpdatedAt    string
}

// CondoEmpleado is the schema definition for condo.empleado
var CondoEmpleado = CondoEmpleadoTable{
	Table:        "condo.empleado",
	ID:           "id",
	CondominioID: "condominioid",
	Nombre:       "nombre",
	Puesto:       "puesto",
	Email:        "emailcifrado",
	Telefono:     "telefonocifrado",
	Activo:       "activo",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoEmpleadoTable) Columns() []string {
	return []string{
		t.ID, t.CondominioID, t.Nombre, t.Puesto, t.Email,
		t.Telefono, t.Activo, t.CreatedAt, t.UpdatedAt,
	}
}
