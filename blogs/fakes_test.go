package blogs

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/models"
)

type memStore struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]models.BlogPost
	calls     int
	insertErr error
	findErr   error
}

func newMemStore() *memStore {
	return &memStore{posts: make(map[primitive.ObjectID]models.BlogPost)}
}

func (m *memStore) Insert(_ context.Context, post *models.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.insertErr != nil {
		return m.insertErr
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	m.posts[post.ID] = clonePost(*post)
	return nil
}

func (m *memStore) Find(_ context.Context, f Filter) ([]models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.BlogPost
	for _, p := range m.posts {
		if matches(f, p) {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func matches(f Filter, p models.BlogPost) bool {
	return (!active(f.Category) || f.Category == p.Category) &&
		(!active(f.Subcategory) || f.Subcategory == string(p.Subcategory)) &&
		(!active(f.Status) || f.Status == string(p.Status))
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, c Changes, at time.Time) (*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Content != nil {
		p.Content = *c.Content
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Subcategory != nil {
		p.Subcategory = *c.Subcategory
	}
	if c.Author != nil {
		p.Author = *c.Author
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if c.Image != nil {
		img := *c.Image
		p.Image = &img
	}
	p.UpdatedAt = at
	m.posts[id] = p
	p = clonePost(p)
	return &p, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func clonePost(p models.BlogPost) models.BlogPost {
	if p.Image != nil {
		img := *p.Image
		p.Image = &img
	}
	return p
}

type fakeFiles struct {
	mu        sync.Mutex
	saved     []string
	removed   []models.Attachment
	saveErr   error
	removeErr error
}

func (f *fakeFiles) Save(_ context.Context, r io.Reader, filename string) (models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return models.Attachment{}, f.saveErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return models.Attachment{}, err
	}
	f.saved = append(f.saved, filename)
	n := len(f.saved)
	return models.Attachment{
		URL:      fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/blogs/img%d.jpg", n),
		PublicID: fmt.Sprintf("blogs/img%d", n),
	}, nil
}

func (f *fakeFiles) Remove(_ context.Context, att models.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, att)
	return f.removeErr
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []models.BlogEvent
}

func (e *recordingEmitter) Emit(_ context.Context, ev models.BlogEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *recordingEmitter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Event
	}
	return out
}
