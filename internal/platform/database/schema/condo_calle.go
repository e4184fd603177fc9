package schema

// CondoCalleTable represents the 'condo.calle' table
type CondoCalleTable struct {
	Table        string
	ID           string
	CondominioID string
	Nombre       string
	Descripcion  string
	CreatedAt    string
	UpdatedAt    string
}

// CondoCalle is the schema definition for condo.calle
var CondoCalle = CondoCalleTable{
	Table:        "condo.calle",
	ID:           "id",
	CondominioID: "condominioid",
	Nombre:       "nombre",
	Descripcion:  "descripcion",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoCalleTable) Columns() []string {
	return []string{t.ID, t.CondominioID, t.Nombre, t.Descripcion, t.CreatedAt, t.UpdatedAt}
}
