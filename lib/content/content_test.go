package content

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/revision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	validate := NewValidator()

	var validation *exception.ValidationError
	err := Validate(validate, Waypoint{Title: "Summit", Latitude: 91})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "latitude", validation.Field)

	err = Validate(validate, Media{Title: "Photo", URL: "not a url", MimeType: "image/png"})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "url", validation.Field)

	err = Validate(validate, Media{Title: "Photo", URL: "https://cdn.example.org/a.gif", MimeType: "image/gif"})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "mimeType", validation.Field)
	assert.Contains(t, validation.Message, "oneof")

	err = Validate(validate, StaticContent{Slug: "About Us", Title: "About", Body: "..."})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "slug", validation.Field)

	err = Validate(validate, Waypoint{Title: "Lake", Tags: []string{"water", ""}})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "tags[1]", validation.Field)
}

func TestValidValues(t *testing.T) {
	validate := NewValidator()

	assert.NoError(t, Validate(validate, Tag{Name: "history"}))
	assert.NoError(t, Validate(validate, Waypoint{
		Title:     gofakeit.City(),
		Latitude:  gofakeit.Latitude(),
		Longitude: gofakeit.Longitude(),
		Tags:      []string{"view"},
	}))
	assert.NoError(t, Validate(validate, Media{
		Title:      "Old bridge",
		URL:        "https://cdn.example.org/bridge.jpg",
		MimeType:   "image/jpeg",
		WaypointID: gofakeit.UUID(),
	}))
	assert.NoError(t, Validate(validate, StaticContent{Slug: "imprint", Title: "Imprint", Body: "Contact"}))
}

func TestWaypointFields(t *testing.T) {
	fields := Waypoint{Title: "Mill", Latitude: 47.5, Longitude: 9.25, Tags: []string{"a"}}.Fields()

	assert.Equal(t, "47.500000 9.250000", fields.Text["position"])
	assert.Equal(t, []string{"a"}, fields.Lists["tags"])
}

func TestStrategyDrivesRepository(t *testing.T) {
	ctx := context.Background()
	repo := revision.NewRepository(db.NewMemoryDataStore(), NewStrategy[Waypoint](KindWaypoint, NewValidator()), nil)

	chain, err := repo.CreateChain(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, KindWaypoint, chain.Kind)

	var validation *exception.ValidationError
	_, err = repo.Append(ctx, chain.ID, Waypoint{Latitude: 10}, "author")
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "title", validation.Field)

	first, err := repo.Append(ctx, chain.ID, Waypoint{Title: "Old Mill", Latitude: 47.1, Longitude: 8.2}, "author")
	require.NoError(t, err)
	second, err := repo.Append(ctx, chain.ID, Waypoint{Title: "Old Mill", Latitude: 47.2, Longitude: 8.2, Tags: []string{"history"}}, "author")
	require.NoError(t, err)

	result, err := repo.Diff(ctx, first.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, result.Text["title"].Identical())
	assert.Equal(t, []string{"47.100000"}, result.Text["position"].Deleted())
	assert.Equal(t, []string{"47.200000"}, result.Text["position"].Inserted())
	assert.Equal(t, []string{"history"}, result.Lists["tags"].Inserted)
}
