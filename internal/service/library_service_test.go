package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivo/archivo/internal/model"
	"github.com/archivo/archivo/internal/repository"
	"github.com/archivo/archivo/internal/service"
)

func Test_LibraryService_CreateThenGet_ReturnsIdenticalRecord(t *testing.T) {
	// setup
	ctx := context.Background()
	f := newFixture(t)

	// act
	created, err := f.libraries.Create(ctx, model.LibraryInput{
		Name:         strPtr("La Biblioteca Silente"),
		Plane:        strPtr("Plano Astral"),
		Description:  strPtr("Solo accesible en sueños profundos."),
		Architecture: strPtr("Cristal y Niebla"),
	})
	require.NoError(t, err)
	fetched, err := f.libraries.GetByID(ctx, created.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "BIB-1", created.ID)
	assert.Equal(t, created, fetched)
}

func Test_LibraryService_OptionalFieldsStayNull(t *testing.T) {
	f := newFixture(t)

	created := f.mustCreateLibrary(t, "La Biblioteca Silente")

	assert.Nil(t, created.Description)
	assert.Nil(t, created.Architecture)
}

func Test_LibraryService_ListAfterNCreations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	want := make([]model.Library, 0, 5)
	for _, name := range []string{"uno", "dos", "tres", "cuatro", "cinco"} {
		want = append(want, *f.mustCreateLibrary(t, name))
	}

	got, err := f.libraries.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func Test_LibraryService_GetMissing(t *testing.T) {
	_, err := newFixture(t).libraries.GetByID(context.Background(), "BIB-does-not-exist")

	assert.ErrorIs(t, err, service.ErrLibraryNotFound)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func Test_LibraryService_Create_RequiresFields(t *testing.T) {
	tests := []struct {
		name      string
		input     model.LibraryInput
		wantField string
	}{
		{name: "missing_name", input: model.LibraryInput{Plane: strPtr("Plano Astral")}, wantField: "nombre"},
		{name: "missing_plane", input: model.LibraryInput{Name: strPtr("La Biblioteca Silente")}, wantField: "plano_existencia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.libraries.Create(context.Background(), tt.input)

			ve, ok := service.IsValidation(err)
			require.True(t, ok, "Should be a validation error, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Zero(t, f.libraryRepo.Count(), "Should not insert")
			assert.Empty(t, f.events.published(), "Should not publish")
		})
	}
}

func Test_LibraryService_Create_AcceptsEmptyStrings(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{"", "   "} {
		library, err := f.libraries.Create(context.Background(), model.LibraryInput{Name: strPtr(name), Plane: strPtr("")})

		require.NoError(t, err, "Should accept a present but empty name %q", name)
		assert.Equal(t, name, library.Name)
		assert.Equal(t, "", library.Plane)
	}
	assert.Equal(t, 2, f.libraryRepo.Count())
}

func Test_LibraryService_Create_PublishesEvent(t *testing.T) {
	f := newFixture(t)

	library := f.mustCreateLibrary(t, "La Biblioteca Silente")

	published := f.events.published()
	require.Len(t, published, 1)
	assert.Equal(t, testChannel, published[0].channel)
	assert.Equal(t, model.EventLibraryCreated, published[0].event.Type)
	assert.Equal(t, library.ID, published[0].event.ResourceID)
	assert.False(t, published[0].event.OccurredAt.IsZero())
}

func Test_LibraryService_Create_SurvivesPublisherFailure(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("redis down")

	library, err := f.libraries.Create(context.Background(), model.LibraryInput{Name: strPtr("n"), Plane: strPtr("p")})

	require.NoError(t, err, "Should not fail when publishing fails")
	assert.Equal(t, 1, f.libraryRepo.Count())
	assert.NotEmpty(t, library.ID)
}
