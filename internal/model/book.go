package model

import "encoding/json"

// Book is a lost book (Libro Perdido) that went missing from an origin library.
// Records are immutable once created.
type Book struct {
	ID               string  `json:"id_libro"`
	Title            string  `json:"titulo"`
	Author           *string `json:"autor_aparente"`
	CoverDescription *string `json:"descripcion_cubierta"`
	OriginLibraryID  string  `json:"biblioteca_origen_id"`
}

// BookInput holds the client-supplied fields of a new Book.
// Required fields are pointers so an absent key can be told apart from "".
type BookInput struct {
	Title            *string `json:"titulo"`
	Author           *string `json:"autor_aparente"`
	CoverDescription *string `json:"descripcion_cubierta"`
	OriginLibraryID  *string `json:"biblioteca_origen_id"`

	// authorSet records an explicit "autor_aparente" key, null included
	authorSet bool
}

// UnmarshalJSON decodes the input and remembers whether the author key was sent
func (b *BookInput) UnmarshalJSON(data []byte) error {
	type plain BookInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*b = BookInput(p)
	_, b.authorSet = keys["autor_aparente"]
	return nil
}

// AuthorProvided reports whether the caller chose the author, possibly as null.
// Only inputs without one get the default author.
func (b BookInput) AuthorProvided() bool {
	return b.Author != nil || b.authorSet
}

// Clone returns a deep copy
func (b Book) Clone() Book {
	b.Author = cloneString(b.Author)
	b.CoverDescription = cloneString(b.CoverDescription)
	return b
}
