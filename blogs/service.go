package blogs

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/filemgr"
	"blogapi/models"
	"blogapi/mq"
)

// Upload is an image file submitted with a create or update.
type Upload struct {
	Reader   io.Reader
	Filename string
}

type CreateInput struct {
	Title       string `form:"title" validate:"required"`
	Content     string `form:"content" validate:"required"`
	Category    string `form:"category" validate:"required"`
	Subcategory string `form:"subcategory" validate:"omitempty,subcategory"`
	Author      string `form:"author" validate:"required"`
	Status      string `form:"status" validate:"omitempty,blogstatus"`
}

// UpdateInput carries the fields of a partial update; empty means unchanged.
// SubcategorySent records that the subcategory field was present in the
// request; sent blank, it removes the subcategory from the post.
type UpdateInput struct {
	Title       string `form:"title"`
	Content     string `form:"content"`
	Category    string `form:"category"`
	Subcategory string `form:"subcategory" validate:"omitempty,subcategory"`
	Author      string `form:"author"`
	Status      string `form:"status" validate:"omitempty,blogstatus"`

	SubcategorySent bool `form:"-"`
}

type Service struct {
	store    Store
	files    filemgr.Storage
	events   mq.Emitter
	validate *validator.Validate
	now      func() time.Time

	requireSubcategory bool
}

func NewService(store Store, files filemgr.Storage, events mq.Emitter, requireSubcategory bool) *Service {
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{
		store:              store,
		files:              files,
		events:             events,
		validate:           newValidator(),
		now:                func() time.Time { return time.Now().UTC() },
		requireSubcategory: requireSubcategory,
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]models.BlogPost, error) {
	posts, err := s.store.Find(ctx, f)
	if err != nil {
		return nil, storageErr("list", err)
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.store.FindByID(ctx, oid)
	return post, storageErr("get", err)
}

func (s *Service) Create(ctx context.Context, in CreateInput, upload *Upload) (*models.BlogPost, error) {
	trim(&in.Title, &in.Content, &in.Category, &in.Subcategory, &in.Author, &in.Status)
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if s.requireSubcategory && in.Subcategory == "" {
		return nil, invalidField("subcategory", "is required")
	}

	now := s.now()
	post := &models.BlogPost{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Subcategory: models.Subcategory(in.Subcategory),
		Author:      in.Author,
		Status:      models.StatusNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		post.Status = models.Status(in.Status)
	}

	if upload != nil {
		att, err := s.save(ctx, upload)
		if err != nil {
			return nil, err
		}
		post.Image = &att
	}

	if err := s.store.Insert(ctx, post); err != nil {
		if post.Image != nil {
			s.removeAttachment(ctx, post.ID.Hex(), *post.Image)
		}
		return nil, storageErr("create", err)
	}

	s.emit(ctx, models.EventBlogCreated, post)
	return post, nil
}

// Update merges the supplied fields into the post. A new image replaces the
// old one, which is removed from the backend on a best-effort basis before
// the record is written; the two steps are not transactional.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, upload *Upload) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	trim(&in.Title, &in.Content, &in.Category, &in.Subcategory, &in.Author, &in.Status)
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if in.SubcategorySent && in.Subcategory == "" && s.requireSubcategory {
		return nil, invalidField("subcategory", "is required")
	}

	existing, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, storageErr("update", err)
	}

	changes := changesFrom(in)
	if changes.Empty() && upload == nil {
		return nil, invalidField("body", "has no fields to update")
	}

	if upload != nil {
		att, err := s.save(ctx, upload)
		if err != nil {
			return nil, err
		}
		changes.Image = &att
		if existing.Image != nil {
			s.removeAttachment(ctx, id, *existing.Image)
		}
	}

	updated, err := s.store.Update(ctx, oid, changes, s.now())
	if err != nil {
		if changes.Image != nil {
			s.removeAttachment(ctx, id, *changes.Image)
		}
		return nil, storageErr("update", err)
	}

	s.emit(ctx, models.EventBlogUpdated, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return storageErr("delete", err)
	}
	if existing.Image != nil {
		s.removeAttachment(ctx, id, *existing.Image)
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		return storageErr("delete", err)
	}

	s.emit(ctx, models.EventBlogDeleted, existing)
	return nil
}

func (s *Service) save(ctx context.Context, upload *Upload) (models.Attachment, error) {
	att, err := s.files.Save(ctx, upload.Reader, upload.Filename)
	switch {
	case err == nil:
		return att, nil
	case errors.Is(err, filemgr.ErrInvalidExtension), errors.Is(err, filemgr.ErrInvalidMIME):
		return att, invalidField("image", "must be a JPEG, PNG, GIF or WebP image")
	case errors.Is(err, filemgr.ErrFileTooLarge):
		return att, invalidField("image", "is too large")
	default:
		return att, &AttachmentError{Op: "store", Err: err}
	}
}

// removeAttachment is best-effort: failures are logged and swallowed. It
// runs detached from the request so a client disconnect does not cut it off.
func (s *Service) removeAttachment(ctx context.Context, blogID string, att models.Attachment) {
	if err := s.files.Remove(context.WithoutCancel(ctx), att); err != nil {
		log.Warn().Err(err).Str("blogId", blogID).Str("url", att.URL).Msg("Failed to remove image; continuing")
	}
}

func (s *Service) emit(ctx context.Context, event string, post *models.BlogPost) {
	s.events.Emit(context.WithoutCancel(ctx), models.BlogEvent{
		Event:    event,
		BlogID:   post.ID.Hex(),
		Category: post.Category,
		At:       s.now(),
	})
}

func changesFrom(in UpdateInput) Changes {
	var c Changes
	if in.Title != "" {
		c.Title = &in.Title
	}
	if in.Content != "" {
		c.Content = &in.Content
	}
	if in.Category != "" {
		c.Category = &in.Category
	}
	if in.Subcategory != "" || in.SubcategorySent {
		sub := models.Subcategory(in.Subcategory)
		c.Subcategory = &sub
	}
	if in.Author != "" {
		c.Author = &in.Author
	}
	if in.Status != "" {
		st := models.Status(in.Status)
		c.Status = &st
	}
	return c
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
