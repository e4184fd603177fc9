package schema

// CondoPersonaCasaTable represents the 'condo.personacasa' table
type CondoPersonaCasaTable struct {
	Table        string
	ID           string
	CondominioID string
	CasaID       string
	UsuarioID    string
	Relacion     string
	CreatedAt    string
}

// CondoPersonaCasa is the schema definition for condo.personacasa
var CondoPersonaCasa = CondoPersonaCasaTable{
	Table:        "condo.personacasa",
	ID:           "id",
	CondominioID: "condominioid",
	CasaID:       "casaid",
	UsuarioID:    "usuarioid",
	Relacion:     "relacion",
	CreatedAt:    "createdat",
}

func (t CondoPersonaCasaTable) Columns() []string {
	return []string{t.ID, t.CondominioID, t.CasaID, t.UsuarioID, t.Relacion, t.CreatedAt}
}
