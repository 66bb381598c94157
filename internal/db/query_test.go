package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPackageQuery_Filter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, PackageQuery{}.Filter())
	})

	t.Run("blank search is ignored", func(t *testing.T) {
		f := PackageQuery{Status: models.StatusPublished, Search: "   "}.Filter()
		assert.Equal(t, bson.M{"status": models.StatusPublished}, f)
	})

	t.Run("search becomes case-insensitive or over title and destination", func(t *testing.T) {
		f := PackageQuery{Search: "Sar.nda"}.Filter()
		or, ok := f["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 2)

		want := primitive.Regex{Pattern: `Sar\.nda`, Options: "i"}
		assert.Equal(t, bson.M{"title": want}, or[0])
		assert.Equal(t, bson.M{"destination": want}, or[1])
	})
}

func TestCarQuery_Filter(t *testing.T) {
	f := CarQuery{Status: models.StatusDraft, Search: "tesla"}.Filter()
	assert.Equal(t, models.StatusDraft, f["status"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	fields := make([]string, 0, len(or))
	for _, clause := range or {
		for k := range clause.(bson.M) {
			fields = append(fields, k)
		}
	}
	assert.Equal(t, []string{"name", "brand", "model"}, fields)
}

func TestPackageQuery_Matches(t *testing.T) {
	rows := []models.PackageRow{
		{Title: "Riviera Escape", Destination: "Saranda", Status: models.StatusPublished},
		{Title: "Alpine Trek", Destination: "Theth", Status: models.StatusPublished},
		{Title: "Hidden Draft", Destination: "Saranda", Status: models.StatusDraft},
	}

	tests := []struct {
		name  string
		query PackageQuery
		want  []string
	}{
		{"published only", PackageQuery{Status: models.StatusPublished}, []string{"Riviera Escape", "Alpine Trek"}},
		{"search on destination ignores case", PackageQuery{Search: "SARANDA"}, []string{"Riviera Escape", "Hidden Draft"}},
		{"search on title", PackageQuery{Search: "trek"}, []string{"Alpine Trek"}},
		{"status and search combine", PackageQuery{Status: models.StatusPublished, Search: "saranda"}, []string{"Riviera Escape"}},
		{"no match yields nothing", PackageQuery{Search: "tokyo"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range rows {
				if tt.query.Matches(r) {
					got = append(got, r.Title)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarQuery_Matches(t *testing.T) {
	car := models.CarRow{Name: "", Brand: "Volkswagen", Model: "Golf", Status: models.StatusPublished}

	assert.True(t, CarQuery{Search: "golf"}.Matches(car))
	assert.True(t, CarQuery{Search: "wagen"}.Matches(car))
	assert.False(t, CarQuery{Search: "polo"}.Matches(car))
	assert.False(t, CarQuery{Status: models.StatusDraft}.Matches(car))
}
