package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivo/archivo/internal/model"
)

func strPtr(s string) *string { return &s }

func Test_Library_Clone_DoesNotShareOptionalFields(t *testing.T) {
	orig := model.Library{
		ID:          "BIB-1",
		Name:        "La Biblioteca Silente",
		Plane:       "Plano Astral",
		Description: strPtr("Solo accesible en sueños profundos."),
	}

	clone := orig.Clone()
	*clone.Description = "changed"

	assert.Equal(t, "Solo accesible en sueños profundos.", *orig.Description)
	assert.Nil(t, clone.Architecture)
}

func Test_Book_Clone_DoesNotShareOptionalFields(t *testing.T) {
	orig := model.Book{ID: "LIB-1", Title: "El Tomo", Author: strPtr("El Escriba Ciego"), OriginLibraryID: "BIB-1"}

	clone := orig.Clone()
	*clone.Author = "changed"

	assert.Equal(t, "El Escriba Ciego", *orig.Author)
}

func Test_Library_JSON_UsesCatalogFieldNames(t *testing.T) {
	data, err := json.Marshal(model.Library{ID: "BIB-1", Name: "n", Plane: "p"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id_biblioteca": "BIB-1",
		"nombre": "n",
		"plano_existencia": "p",
		"descripcion": null,
		"arquitectura_dominante": null
	}`, string(data))
}

func Test_Book_JSON_UsesCatalogFieldNames(t *testing.T) {
	data, err := json.Marshal(model.Book{ID: "LIB-1", Title: "t", Author: strPtr("a"), OriginLibraryID: "BIB-1"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id_libro": "LIB-1",
		"titulo": "t",
		"autor_aparente": "a",
		"descripcion_cubierta": null,
		"biblioteca_origen_id": "BIB-1"
	}`, string(data))
}

func Test_BookInput_AuthorProvided(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "absent", body: `{"titulo": "t"}`, want: false},
		{name: "null", body: `{"titulo": "t", "autor_aparente": null}`, want: true},
		{name: "value", body: `{"titulo": "t", "autor_aparente": "a"}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input model.BookInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &input))

			assert.Equal(t, tt.want, input.AuthorProvided())
			assert.Equal(t, "t", *input.Title)
			assert.Nil(t, input.OriginLibraryID)
		})
	}

	assert.True(t, model.BookInput{Author: strPtr("a")}.AuthorProvided(), "Set in code")
	assert.False(t, model.BookInput{}.AuthorProvided())
}

func Test_BookInput_UnmarshalTypeError(t *testing.T) {
	var input model.BookInput
	err := json.Unmarshal([]byte(`{"titulo": 7}`), &input)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "titulo", typeErr.Field)
}
