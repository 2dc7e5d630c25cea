package blogs

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blogapi/models"
)

// Store is the document store the service needs. FindByID, Update and
// Delete return ErrNotFound for a missing id.
type Store interface {
	Insert(ctx context.Context, post *models.BlogPost) error
	Find(ctx context.Context, f Filter) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Update(ctx context.Context, id primitive.ObjectID, c Changes, at time.Time) (*models.BlogPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Changes is a partial update. Nil fields are left alone.
type Changes struct {
	Title       *string
	Content     *string
	Category    *string
	Subcategory *models.Subcategory
	Author      *string
	Status      *models.Status
	Image       *models.Attachment
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Content == nil && c.Category == nil && c.Subcategory == nil &&
		c.Author == nil && c.Status == nil && c.Image == nil
}

// SetDoc is the $set document for the change set.
func (c Changes) SetDoc(at time.Time) bson.M {
	set := bson.M{"updatedAt": at}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Content != nil {
		set["content"] = *c.Content
	}
	if c.Category != nil {
		set["category"] = *c.Category
	}
	if c.Subcategory != nil {
		set["subcategory"] = *c.Subcategory
	}
	if c.Author != nil {
		set["author"] = *c.Author
	}
	if c.Status != nil {
		set["status"] = *c.Status
	}
	if c.Image != nil {
		set["image"] = *c.Image
	}
	return set
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Insert(ctx context.Context, post *models.BlogPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *MongoStore) Find(ctx context.Context, f Filter) ([]models.BlogPost, error) {
	cur, err := s.coll.Find(ctx, f.BSON(), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.BlogPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, c Changes, at time.Time) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": c.SetDoc(at)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
