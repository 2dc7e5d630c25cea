package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBlogPostJSONFlattensImage(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	post := BlogPost{
		ID:        primitive.NewObjectID(),
		Title:     "A",
		Content:   "B",
		Category:  "tech",
		Author:    "Z",
		Status:    StatusNone,
		Image:     &Attachment{URL: "https://res.cloudinary.com/demo/image/upload/v1/blogs/cat.jpg", PublicID: "blogs/cat"},
		CreatedAt: at,
		UpdatedAt: at,
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, post.ID.Hex(), wire["_id"])
	assert.Equal(t, post.Image.URL, wire["image"])
	assert.Equal(t, "blogs/cat", wire["imagePublicId"])
	assert.NotContains(t, wire, "subcategory")

	var back BlogPost
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, post, back)
}

func TestBlogPostJSONWithoutImage(t *testing.T) {
	data, err := json.Marshal([]BlogPost{{Title: "A", Subcategory: SubcategoryTutorial, Status: StatusTrending}})
	require.NoError(t, err)

	var wire []map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	require.Len(t, wire, 1)
	assert.NotContains(t, wire[0], "image")
	assert.NotContains(t, wire[0], "imagePublicId")
	assert.Equal(t, "Tutorial", wire[0]["subcategory"])
}

func TestBlogPostBSONKeepsNestedImage(t *testing.T) {
	post := BlogPost{ID: primitive.NewObjectID(), Image: &Attachment{URL: "/uploads/a.png", PublicID: "a.png"}}

	raw, err := bson.Marshal(post)
	require.NoError(t, err)
	img := bson.Raw(raw).Lookup("image", "publicId")
	assert.Equal(t, "a.png", img.StringValue())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, StatusEditorsPick.Valid())
	assert.False(t, Status("Hot").Valid())
	assert.True(t, SubcategoryInterviewQuestions.Valid())
	assert.False(t, Subcategory("").Valid())
}
