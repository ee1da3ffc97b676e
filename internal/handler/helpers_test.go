package handler_test

// Shared fakes and helpers for the handler tests.
//
// Handlers are tested through the real service layer with in-memory
// repositories — the same seams the server wires, minus the database and the
// network. Authenticated routes go through the real RequireAuth middleware
// with a genuine session cookie, so the full request path is exercised.

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/auth"
	"github.com/sakif/kitcraft/internal/genai"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/repository"
)

const testSecret = "test-secret-at-least-16-chars!!"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

// serveAuthed runs req through RequireAuth into h, with a valid session
// cookie for userID.
func serveAuthed(t *testing.T, tokens *auth.TokenService, userID string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	token, err := tokens.Generate(userID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})

	rr := httptest.NewRecorder()
	auth.RequireAuth(tokens)(h).ServeHTTP(rr, req)
	return rr
}

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	users   map[string]*model.User
	byEmail map[string]*model.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
		nextID:  1,
	}
}

func (m *memUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperror.Conflict("user", user.Email)
	}
	user.ID = "user-mem-" + string(rune('0'+m.nextID))
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	m.users[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *memUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return u, nil
}

func (m *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	return u, nil
}

// memKitRepo is an in-memory repository.KitRepository, newest first.
type memKitRepo struct {
	kits   []model.ProjectKit
	nextID int
}

func newMemKitRepo() *memKitRepo {
	return &memKitRepo{nextID: 1}
}

func (m *memKitRepo) CreateKit(ctx context.Context, kit *model.ProjectKit) error {
	kit.ID = "kit-mem-" + string(rune('0'+m.nextID))
	m.nextID++
	kit.CreatedAt = time.Now()
	m.kits = append([]model.ProjectKit{*kit}, m.kits...)
	return nil
}

func (m *memKitRepo) GetKitByID(ctx context.Context, userID, id string) (*model.ProjectKit, error) {
	for i := range m.kits {
		if m.kits[i].ID == id && m.kits[i].UserID == userID {
			k := m.kits[i]
			return &k, nil
		}
	}
	return nil, apperror.NotFound("kit", id)
}

func (m *memKitRepo) ListKits(ctx context.Context, userID string, opts repository.ListOptions) ([]model.ProjectKit, error) {
	var out []model.ProjectKit
	for _, k := range m.kits {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// memCartRepo is an in-memory repository.CartRepository with the
// (name, buyLink) dedupe rule.
type memCartRepo struct {
	items map[string][]model.Material
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: make(map[string][]model.Material)}
}

func (m *memCartRepo) ListCart(ctx context.Context, userID string) ([]model.Material, error) {
	return m.items[userID], nil
}

func (m *memCartRepo) AddMaterials(ctx context.Context, userID string, materials []model.Material) error {
	for _, mat := range materials {
		dup := false
		for _, existing := range m.items[userID] {
			if existing.Name == mat.Name && existing.BuyLink == mat.BuyLink {
				dup = true
				break
			}
		}
		if !dup {
			m.items[userID] = append(m.items[userID], mat)
		}
	}
	return nil
}

func (m *memCartRepo) ClearCart(ctx context.Context, userID string) error {
	delete(m.items, userID)
	return nil
}

// MockGenerator implements genai.Generator for handler testing without any
// network calls.
type MockGenerator struct {
	CapturedReq genai.KitRequest
	ReturnDraft *genai.KitDraft
	ReturnErr   error
}

func (m *MockGenerator) Generate(ctx context.Context, req genai.KitRequest) (*genai.KitDraft, error) {
	m.CapturedReq = req
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnDraft, nil
}

func birdhouseDraft() *genai.KitDraft {
	return &genai.KitDraft{
		ProjectName:   "Cozy Cedar Birdhouse",
		Description:   "A weatherproof birdhouse for small garden birds.",
		SkillLevel:    model.SkillBeginner,
		EstimatedTime: "3-4 hours",
		Materials: []model.Material{
			{Name: "Cedar plank", Quantity: "2", EstimatedPrice: "₹450", BuyLink: "https://www.amazon.in/s?k=cedar+plank"},
		},
		Tools: []model.Tool{{Name: "Hand saw"}},
		Instructions: []model.Instruction{
			{Step: 1, Description: "Cut the plank to size.", VisualDescription: "Plank on a workbench."},
		},
	}
}
