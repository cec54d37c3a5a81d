package archivo

// Library is a dimensional library as returned by the API.
type Library struct {
	ID           string  `json:"id_biblioteca"`
	Name         string  `json:"nombre"`
	Plane        string  `json:"plano_existencia"`
	Description  *string `json:"descripcion"`
	Architecture *string `json:"arquitectura_dominante"`
}

// LibraryInput contains the fields for a new library.
type LibraryInput struct {
	Name         string  `json:"nombre"`
	Plane        string  `json:"plano_existencia"`
	Description  *string `json:"descripcion,omitempty"`
	Architecture *string `json:"arquitectura_dominante,omitempty"`
}

// Book is a lost book as returned by the API.
type Book struct {
	ID               string  `json:"id_libro"`
	Title            string  `json:"titulo"`
	Author           *string `json:"autor_aparente"`
	CoverDescription *string `json:"descripcion_cubierta"`
	OriginLibraryID  string  `json:"biblioteca_origen_id"`
}

// BookInput contains the fields for a new book.
// A nil Author is stored as the server's default author.
type BookInput struct {
	Title            string  `json:"titulo"`
	Author           *string `json:"autor_aparente,omitempty"`
	CoverDescription *string `json:"descripcion_cubierta,omitempty"`
	OriginLibraryID  string  `json:"biblioteca_origen_id"`
}
