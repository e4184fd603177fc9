package schema

// CondoBlogPostTable represents the 'condo.blogpost' table
type CondoBlogPostTable struct {
	Table        string
	ID           string
	CondominioID string
	AutorID      string
	Titulo       string
	Slug         string
	Contenido    string
	Audiencia    string
	Publicado    string
	CreatedAt    string
	UpdatedAt    string
}

// CondoBlogPost is the schema definition for condo.blogpost
var CondoBlogPost = CondoBlogPostTable{
	Table:        "condo.blogpost",
	ID:           "id",
	CondominioID: "condominioid",
	AutorID:      "autorid",
	Titulo:       "titulo",
	Slug:         "slug",
	Contenido:    "contenido",
	Audiencia:    "audiencia",
	Publicado:    "publicado",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CondoBlogPostTable) Columns() []string {
	return []string{
		t.ID, t.CondominioID, t.AutorID, t.Titulo, t.Slug,
		t.Contenido, t.Audiencia, t.Publicado, t.CreatedAt, t.UpdatedAt,
	}
}
