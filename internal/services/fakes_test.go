package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// deadRedis points at a closed port; publishes fail and are only warned about.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 10 * time.Millisecond})
}

type fakeLLM struct {
	out   string
	err   error
	calls int
}

func (f *fakeLLM) Generate(_ context.Context, _, _ string, _ float32) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeFormRepo struct {
	mu        sync.Mutex
	rows      map[string]models.Form
	createErr error
}

func newFakeFormRepo(rows ...models.Form) *fakeFormRepo {
	r := &fakeFormRepo{rows: map[string]models.Form{}}
	for _, f := range rows {
		r.rows[f.ID] = f
	}
	return r
}

func (r *fakeFormRepo) Create(_ context.Context, f *models.Form) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[f.ID] = *f
	return nil
}

func (r *fakeFormRepo) GetByID(_ context.Context, id string) (*models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFormRepo) GetByShareToken(_ context.Context, token string) (*models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.ShareToken == token {
			row := f
			return &row, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeFormRepo) ListByOwner(_ context.Context, ownerID string, includeArchived bool) ([]models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Form
	for _, f := range r.rows {
		if f.OwnerID != ownerID {
			continue
		}
		if f.Archived && !includeArchived {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFormRepo) Updates(_ context.Context, id string, fields map[string]any) (*models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			f.Name = v.(string)
		case "summary":
			f.Summary = v.(string)
		case "ai_enabled":
			f.AIEnabled = v.(bool)
		case "max_ai_questions":
			f.MaxAIQuestions = v.(int)
		case "public":
			f.Public = v.(bool)
		case "archived":
			f.Archived = v.(bool)
		}
	}
	r.rows[id] = f
	return &f, nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	rows      map[string]models.Response
	insertErr error
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{rows: map[string]models.Response{}}
}

func (r *fakeResponseRepo) Insert(_ context.Context, resp *models.Response) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[resp.ID] = *resp
	return nil
}

func (r *fakeResponseRepo) GetByID(_ context.Context, id string) (*models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &row, nil
}

func (r *fakeResponseRepo) ListByForm(_ context.Context, formID string) ([]models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Response
	for _, row := range r.rows {
		if row.FormID == formID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) UpdateSummary(_ context.Context, id string, summary datatypes.JSON, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	row.Summary = summary
	row.SummaryStatus = status
	r.rows[id] = row
	return nil
}

type fakeAILogRepo struct {
	mu        sync.Mutex
	logs      []models.AILog
	insertErr error
}

func (r *fakeAILogRepo) Insert(_ context.Context, l *models.AILog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *l)
	return nil
}

func (r *fakeAILogRepo) ListByForm(_ context.Context, formID string, limit int64) ([]models.AILog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AILog
	for _, l := range r.logs {
		if l.FormID == formID {
			out = append(out, l)
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	gets    int
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	c.hits++
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}
