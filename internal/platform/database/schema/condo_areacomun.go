package schema

// CondoAreaComunTable represents the 'condo.areacomun' table
type CondoAreaComunTable struct {
	Table        string
	ID           string
	CondominioID string
	Nombre       string
	Descripcion  string
	Capacidad    string
	HoraApertura string
	HoraCierre   string
	Activa       string
	CreatedAt    string
	UpdatedAt    string
}

// CondoAreaComun is the schema definition for condo.areacomun
var CondoAreaComun = CondoAreaComunTable{
	Table:        "condo.areacomun",
	ID:           "id",
	CondominioID: "condominioid",
	Nombre:       "nombre",
	Descripcion:  "descripcion",
	Capacidad:    "capacidad",
	HoraApertura: "horaapertura",
	HoraCierre:   "horacierre",
	Activa:       "activa",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoAreaComunTable) Columns() []string {
	return []string{
		t.ID, t.CondominioID, t.Nombre, t.Descripcion, t.Capacidad,
		t.HoraApertura, t.HoraCierre, t.Activa, t.CreatedAt, t.UpdatedAt,
	}
}
