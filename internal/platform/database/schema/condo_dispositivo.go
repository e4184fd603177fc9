package schema

// CondoDispositivoTable represents the 'condo.dispositivo' table
type CondoDispositivoTable struct {
	Table        string
	ID           string
	CondominioID string
	Nombre       string
	Tipo         string
	Ubicacion    string
	Activo       string
	CreatedAt    string
	UpdatedAt    string
}

// CondoDispositivo is the schema definition for condo.dispositivo
var CondoDispositivo = CondoDispositivoTable{
	Table:        "condo.dispositivo",
	ID:           "id",
	CondominioID: "condominioid",
	Nombre:       "nombre",
	Tipo:         "tipo",
	Ubicacion:    "ubicacion",
	Activo:       "activo",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoDispositivoTable) Columns() []string {
	return []string{
		t.ID, t.CondominioID, t.Nombre, t.Tipo, t.Ubicacion,
		t.Activo, t.CreatedAt, t.UpdatedAt,
	}
}
