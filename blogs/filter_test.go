package blogs

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"blogapi/models"
)

func TestFilterBSON(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bson.M
	}{
		{"empty", "", bson.M{}},
		{"category", "category=tech", bson.M{"category": "tech"}},
		{"all is ignored", "category=all&status=Trending", bson.M{"status": "Trending"}},
		{"blank is ignored", "category=&subcategory=%20", bson.M{}},
		{"everything", "category=tech&subcategory=Interview+Questions&status=Editor%27s+Pick",
			bson.M{"category": "tech", "subcategory": "Interview Questions", "status": "Editor's Pick"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FilterFromQuery(q).BSON())
		})
	}
}

func TestChangesSetDoc(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	title := "new"
	status := models.StatusTrending

	c := Changes{Title: &title, Status: &status}
	assert.False(t, c.Empty())
	assert.Equal(t, bson.M{"title": "new", "status": models.StatusTrending, "updatedAt": at}, c.SetDoc(at))

	assert.True(t, Changes{}.Empty())
	assert.Equal(t, bson.M{"updatedAt": at}, Changes{}.SetDoc(at))

	img := models.Attachment{URL: "u", PublicID: "p"}
	assert.Equal(t, img, Changes{Image: &img}.SetDoc(at)["image"])
}
