package model

// Library is a dimensional library (Biblioteca Dimensional).
// Records are immutable once created.
type Library struct {
	ID           string  `json:"id_biblioteca"`
	Name         string  `json:"nombre"`
	Plane        string  `json:"plano_existencia"`
	Description  *string `json:"descripcion"`
	Architecture *string `json:"arquitectura_dominante"`
}

// LibraryInput holds the client-supplied fields of a new Library.
// Required fields are pointers so an absent key can be told apart from "".
type LibraryInput struct {
	Name         *string `json:"nombre"`
	Plane        *string `json:"plano_existencia"`
	Description  *string `json:"descripcion"`
	Architecture *string `json:"arquitectura_dominante"`
}

// Clone returns a deep copy
func (l Library) Clone() Library {
	l.Description = cloneString(l.Description)
	l.Architecture = cloneString(l.Architecture)
	return l
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
