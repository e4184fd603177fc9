package schema

// CondoTagTable represents the 'condo.tag' table (RFID access tags)
type CondoTagTable struct {
	Table        string
	ID           string
	CondominioID string
	CasaID       string
	Codigo       string
	Activo       string
	CreatedAt    string
	UpdatedAt    string
}

// CondoTag is the schema definition for condo.tag
var CondoTag = CondoTagTable{
	Table:        "condo.tag",
	ID:           "id",
	CondominioID: "condominioid",
	CasaID:       "casaid",
	Codigo:       "codigo",
	Activo:       "activo",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoTagTable) Columns() []string {
	return []string{t.ID, t.CondominioID, t.CasaID, t.Codigo, t.Activo, t.CreatedAt, t.UpdatedAt}
}
