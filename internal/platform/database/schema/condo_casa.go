package schema

// CondoCasaTable represents the 'condo.casa' table
type CondoCasaTable struct {
	Table        string
	ID           string
	CondominioID string
	CalleID      string
	Numero       string
	Interior     string
	CreatedAt    string
	UpdatedAt    string
}

// CondoCasa is the schema definition for condo.casa
var CondoCasa = CondoCasaTable{
	Table:        "condo.casa",
	ID:           "id",
	CondominioID: "condominioid",
	CalleID:      "calleid",
	Numero:       "numero",
	Interior:     "interior",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoCasaTable) Columns() []string {
	return []string{t.ID, t.CondominioID, t.CalleID, t.Numero, t.Interior, t.CreatedAt, t.UpdatedAt}
}
