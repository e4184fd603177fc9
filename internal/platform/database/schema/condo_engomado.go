package schema

// CondoEngomadoTable represents the 'condo.engomado' table
type CondoEngomadoTable struct {
	Table        string
	ID           string
	CondominioID string
	CasaID       string
	Placa        string
	Marca        string
	Color        string
	Activo       string
	CreatedAt    string
	UpdatedAt    string
}

// CondoEngomado is the schema definition for condo.engomado
var CondoEngomado = CondoEngomadoTable{
	Table:        "condo.engomado",
	ID:           "id",
	CondominioID: "condominioid",
	CasaID:       "casaid",
	Placa:        "placa",
	Marca:        "marca",
	Color:        "color",
	Activo:       "activo",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoEngomadoTable) Columns() []string {
	return []string{
		t.ID, t.CondominioID, t.CasaID, t.Placa, t.Marca,
		t.Color, t.Activo, t.CreatedAt, t.UpdatedAt,
	}
}
