package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusTrending    Status = "Trending"
	StatusFeatured    Status = "Featured"
	StatusEditorsPick Status = "Editor's Pick"
	StatusRecommended Status = "Recommended"
	StatusNone        Status = "None"
)

var Statuses = []Status{StatusTrending, StatusFeatured, StatusEditorsPick, StatusRecommended, StatusNone}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Subcategory string

const (
	SubcategoryArticle            Subcategory = "Article"
	SubcategoryTutorial           Subcategory = "Tutorial"
	SubcategoryInterviewQuestions Subcategory = "Interview Questions"
)

var Subcategories = []Subcategory{SubcategoryArticle, SubcategoryTutorial, SubcategoryInterviewQuestions}

func (s Subcategory) Valid() bool {
	for _, v := range Subcategories {
		if s == v {
			return true
		}
	}
	return false
}

// Attachment is a stored image. URL is what clients fetch; PublicID is the
// handle the storage backend needs to delete it, empty when the backend
// addresses files by URL alone.
type Attachment struct {
	URL      string `bson:"url"`
	PublicID string `bson:"publicId,omitempty"`
}

// BlogPost is stored with a nested image document. On the wire the image is
// flattened into "image" (the URL) and "imagePublicId".
type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Category    string             `bson:"category"`
	Subcategory Subcategory        `bson:"subcategory,omitempty"`
	Author      string             `bson:"author"`
	Status      Status             `bson:"status"`
	Image       *Attachment        `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type blogPostJSON struct {
	ID            primitive.ObjectID `json:"_id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Category      string             `json:"category"`
	Subcategory   Subcategory        `json:"subcategory,omitempty"`
	Author        string             `json:"author"`
	Status        Status             `json:"status"`
	Image         string             `json:"image,omitempty"`
	ImagePublicID string             `json:"imagePublicId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (p BlogPost) MarshalJSON() ([]byte, error) {
	out := blogPostJSON{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Author:      p.Author,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Image != nil {
		out.Image = p.Image.URL
		out.ImagePublicID = p.Image.PublicID
	}
	return json.Marshal(out)
}

func (p *BlogPost) UnmarshalJSON(data []byte) error {
	var in blogPostJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = BlogPost{
		ID:          in.ID,
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Author:      in.Author,
		Status:      in.Status,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.Image != "" {
		p.Image = &Attachment{URL: in.Image, PublicID: in.ImagePublicID}
	}
	return nil
}
