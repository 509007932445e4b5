package collection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vantaworks/vectoradmin/internal/domain"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// --- Mocks ---

type mockRepo struct {
	created   []domcol.Collection
	deleted   []string
	getCol    domcol.Collection
	getCfg    map[string]any
	listCols  []domcol.Collection
	count     int
	createErr error
	getErr    error
	listErr   error
	countErr  error
	deleteErr func(name string) error
	addedTo   string
	added     schema.PropertyDef
	addErr    error
}

func (m *mockRepo) Create(_ context.Context, col domcol.Collection) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, col)
	return nil
}

func (m *mockRepo) Get(_ context.Context, _ string) (domcol.Collection, map[string]any, error) {
	return m.getCol, m.getCfg, m.getErr
}

func (m *mockRepo) List(_ context.Context) ([]domcol.Collection, error) {
	return m.listCols, m.listErr
}

func (m *mockRepo) Delete(_ context.Context, name string) error {
	if m.deleteErr != nil {
		if err := m.deleteErr(name); err != nil {
			return err
		}
	}
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockRepo) AddProperty(_ context.Context, name string, prop schema.PropertyDef) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addedTo, m.added = name, prop
	return nil
}

func (m *mockRepo) Count(_ context.Context, _ string) (int, error) {
	return m.count, m.countErr
}

type mockVerifier struct {
	err    error
	called bool
}

func (m *mockVerifier) Verify(_ context.Context, _ schema.Vectorizer, _ string) error {
	m.called = true
	return m.err
}

// --- Tests ---

func TestCreate_BYOVNeedsNoKey(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	col, err := svc.Create(context.Background(), "My Test!!", schema.VectorizerNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Name() != "my_test" {
		t.Errorf("Name() = %q, want %q", col.Name(), "my_test")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d collections, want 1", len(repo.created))
	}
}

func TestCreate_MissingCredential(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	_, err := svc.Create(context.Background(), "articles", schema.Text2VecOpenAI)
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if !strings.Contains(err.Error(), "OpenAI API key") {
		t.Errorf("error %q does not name the required key", err)
	}
	if len(repo.created) != 0 {
		t.Error("collection created despite missing credential")
	}
}

func TestCreate_KeyPresent(t *testing.T) {
	repo := &mockRepo{}
	keys := map[schema.Vectorizer]string{schema.Text2VecOpenAI: "sk-test"}
	svc := New(repo, keys, nil)

	if _, err := svc.Create(context.Background(), "articles", schema.Text2VecOpenAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_VerifierRejectsKey(t *testing.T) {
	repo := &mockRepo{}
	keys := map[schema.Vectorizer]string{schema.Text2VecOpenAI: "sk-bad"}
	verifier := &mockVerifier{err: errors.New("401 unauthorized")}
	svc := New(repo, keys, verifier)

	_, err := svc.Create(context.Background(), "articles", schema.Text2VecOpenAI)
	if err == nil {
		t.Fatal("expected error")
	}
	if !verifier.called {
		t.Error("verifier not called")
	}
	if len(repo.created) != 0 {
		t.Error("collection created despite rejected key")
	}
}

func TestCreate_MultimodalPreset(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	col, err := svc.Create(context.Background(), "gallery", schema.Multi2VecCLIP)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Properties()) != 3 {
		t.Errorf("Properties() len = %d, want 3", len(col.Properties()))
	}
}

func TestCreateWithProperties_AllOrNothing(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	inputs := []PropertyInput{
		{Name: "title", Type: schema.Text},
		{Name: "views", Type: schema.DataType("geoShape")},
	}
	_, err := svc.CreateWithProperties(context.Background(), "articles", schema.VectorizerNone, inputs)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Fatalf("error = %v, want ErrUnsupportedType", err)
	}
	if len(repo.created) != 0 {
		t.Error("collection created despite property mapping failure")
	}
}

func TestCreateWithProperties_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	inputs := []PropertyInput{
		{Name: "My Title", Type: schema.Text, Description: "headline"},
		{Name: "views", Type: schema.Int},
	}
	col, err := svc.CreateWithProperties(context.Background(), "articles", schema.VectorizerNone, inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := col.Property("my_title")
	if !ok || p.Description() != "headline" {
		t.Errorf("my_title = (%+v, %v)", p, ok)
	}
}

func TestInfo(t *testing.T) {
	col := domcol.Reconstruct("articles", "", schema.Text2VecCohere, nil)
	repo := &mockRepo{getCol: col, getCfg: map[string]any{"vectorizer": "text2vec-cohere"}, count: 250}
	svc := New(repo, nil, nil)

	info, err := svc.Info(context.Background(), "articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "articles" || info.ObjectCount != 250 {
		t.Errorf("info = %+v", info)
	}
	if info.Vectorizer != schema.Text2VecCohere {
		t.Errorf("Vectorizer = %q", info.Vectorizer)
	}
	if info.Config["vectorizer"] != "text2vec-cohere" {
		t.Errorf("Config = %v", info.Config)
	}
}

func TestInfo_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrNotFound}
	svc := New(repo, nil, nil)

	if _, err := svc.Info(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMany_AllSucceed(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	deleted, err := svc.DeleteMany(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("deleted = %v", deleted)
	}
}

func TestDeleteMany_BestEffortContinues(t *testing.T) {
	repo := &mockRepo{
		deleteErr: func(name string) error {
			if name == "b" {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	svc := New(repo, nil, nil)

	deleted, err := svc.DeleteMany(context.Background(), []string{"a", "b", "c"})
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if len(deleted) != 2 || deleted[0] != "a" || deleted[1] != "c" {
		t.Errorf("deleted = %v, want [a c]", deleted)
	}
	msg := err.Error()
	if !strings.Contains(msg, "1 of 3") || !strings.Contains(msg, "b:") {
		t.Errorf("error = %q", msg)
	}
}

func TestAddProperty(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, nil)

	p, err := svc.AddProperty(context.Background(), "articles", PropertyInput{Name: "New Tag!", Type: schema.TextArray})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "new_tag" {
		t.Errorf("Name() = %q", p.Name())
	}
	if repo.addedTo != "articles" {
		t.Errorf("addedTo = %q", repo.addedTo)
	}
}
