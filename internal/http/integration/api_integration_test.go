package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/db"
	apphttp "github.com/corpoativo/gymapi/internal/http"
	"github.com/corpoativo/gymapi/internal/repo/sqlite"
	"github.com/gin-gonic/gin"
)

const (
	ownerEmail    = "admin@corpoativo.com"
	ownerPassword = "corpo123"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(":memory:")

	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	if err := db.Seed(context.Background(), store, "Administrador", ownerEmail, ownerPassword); err != nil {
		t.Fatalf("seed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Config{
		Env:         "test",
		StoreDriver: "sqlite",
	}

	return apphttp.NewRouter(cfg, logger, store, nil)
}

// request helpers; the cookie carries the session between calls

func request(r *gin.Engine, method, path, body, cookie string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			return c.Value
		}
	}

	t.Fatalf("no session cookie in response: %v", w.Header())

	return ""
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := request(r, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d (body %s)", email, w.Code, w.Body.String())
	}

	return sessionCookie(t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	out := map[string]json.RawMessage{}

	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (body %s)", err, w.Body.String())
	}

	return out
}

func countItems(t *testing.T, raw json.RawMessage) int {
	t.Helper()

	var items []json.RawMessage

	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("expected JSON array: %v", err)
	}

	return len(items)
}

func TestSeededOwnerSeesDashboard(t *testing.T) {
	r := setupTestRouter(t)

	cookie := login(t, r, ownerEmail, ownerPassword)

	w := request(r, http.MethodGet, "/api/admin/dashboard", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status %d (body %s)", w.Code, w.Body.String())
	}

	body := decode(t, w)

	for key, want := range map[string]int{"plans": 3, "coaches": 3, "schedules": 3} {
		if got := countItems(t, body[key]); got != want {
			t.Errorf("seeded %s = %d, want %d", key, got, want)
		}
	}

	if _, ok := body["metrics"]; !ok {
		t.Error("dashboard payload missing metrics")
	}

	if strings.Contains(w.Body.String(), "passwordHash") || strings.Contains(w.Body.String(), "password_hash") {
		t.Error("password hashes leaked into the dashboard payload")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(":memory:")

	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	defer store.Close()

	for i := 0; i < 2; i++ {
		if err := db.Seed(context.Background(), store, "Admin", ownerEmail, ownerPassword); err != nil {
			t.Fatalf("seed round %d: %v", i+1, err)
		}
	}

	plans, err := store.Plans().List(context.Background())

	if err != nil {
		t.Fatalf("list plans: %v", err)
	}

	if len(plans) != 3 {
		t.Fatalf("plans after double seed = %d, want 3", len(plans))
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodPost, "/api/auth/register", `{"name":"Maria","email":"maria@example.com","password":"secret1"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d (body %s)", w.Code, w.Body.String())
	}

	cookie := sessionCookie(t, w)

	// registration signs the user in
	w = request(r, http.MethodGet, "/api/auth/me", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d (body %s)", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), `"role":"member"`) {
		t.Errorf("fresh registration must be a member: %s", w.Body.String())
	}

	// duplicate registration is refused
	w = request(r, http.MethodPost, "/api/auth/register", `{"name":"Other","email":"MARIA@example.com","password":"secret2"}`, "")

	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", w.Code)
	}

	// logout kills the server-side session, not just the cookie
	w = request(r, http.MethodPost, "/api/auth/logout", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}

	w = request(r, http.MethodGet, "/api/auth/me", "", cookie)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status %d, want 401", w.Code)
	}
}

func TestMemberCannotReachAdmin(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodPost, "/api/auth/register", `{"name":"Maria","email":"maria@example.com","password":"secret1"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d", w.Code)
	}

	cookie := sessionCookie(t, w)

	w = request(r, http.MethodGet, "/api/admin/dashboard", "", cookie)

	if w.Code != http.StatusForbidden {
		t.Fatalf("member on dashboard: status %d, want 403", w.Code)
	}

	// without any session the same route is 401
	w = request(r, http.MethodGet, "/api/admin/dashboard", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous on dashboard: status %d, want 401", w.Code)
	}
}

func TestRolePromotionOpensAdmin(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodPost, "/api/auth/register", `{"name":"Maria","email":"maria@example.com","password":"secret1"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d", w.Code)
	}

	memberCookie := sessionCookie(t, w)

	var registered struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatalf("register body: %v", err)
	}

	ownerCookie := login(t, r, ownerEmail, ownerPassword)

	w = request(r, http.MethodPut, "/api/admin/users/"+registered.User.ID+"/role", `{"role":"staff"}`, ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("promote: status %d (body %s)", w.Code, w.Body.String())
	}

	// the member's existing session now carries the staff role
	w = request(r, http.MethodGet, "/api/admin/dashboard", "", memberCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("promoted member on dashboard: status %d (body %s)", w.Code, w.Body.String())
	}

	// staff cannot change roles; that stays with the owner
	w = request(r, http.MethodPut, "/api/admin/users/"+registered.User.ID+"/role", `{"role":"member"}`, memberCookie)

	if w.Code != http.StatusForbidden {
		t.Fatalf("staff changing roles: status %d, want 403", w.Code)
	}
}

func TestOwnerRoleIsUntouchable(t *testing.T) {
	r := setupTestRouter(t)

	ownerCookie := login(t, r, ownerEmail, ownerPassword)

	w := request(r, http.MethodGet, "/api/auth/me", "", ownerCookie)

	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("me body: %v", err)
	}

	w = request(r, http.MethodPut, "/api/admin/users/"+me.User.ID+"/role", `{"role":"member"}`, ownerCookie)

	if w.Code != http.StatusForbidden {
		t.Fatalf("demoting the owner: status %d, want 403 (body %s)", w.Code, w.Body.String())
	}
}

func TestPublicDataETagRevalidation(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodGet, "/api/public-data", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("public-data: status %d", w.Code)
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatal("expected an ETag on public-data")
	}

	body := decode(t, w)

	if countItems(t, body["plans"]) != 3 {
		t.Errorf("seeded plans missing from public payload")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public-data", nil)
	req.Header.Set("If-None-Match", etag)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("revalidation: status %d, want 304", w2.Code)
	}
}

func TestLeadCaptureAndAdminDelete(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodPost, "/api/leads", `{"name":"Curioso","email":"curioso@example.com"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("lead: status %d (body %s)", w.Code, w.Body.String())
	}

	var created struct {
		Lead struct {
			ID string `json:"id"`
		} `json:"lead"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("lead body: %v", err)
	}

	// invalid email never reaches the store
	w = request(r, http.MethodPost, "/api/leads", `{"name":"X","email":"not-an-email"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad lead: status %d, want 400", w.Code)
	}

	ownerCookie := login(t, r, ownerEmail, ownerPassword)

	w = request(r, http.MethodGet, "/api/admin/dashboard", "", ownerCookie)

	body := decode(t, w)

	if countItems(t, body["leads"]) != 1 {
		t.Fatalf("lead missing from dashboard")
	}

	w = request(r, http.MethodDelete, "/api/admin/leads/"+created.Lead.ID, "", ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("delete lead: status %d", w.Code)
	}

	body = decode(t, w)

	if countItems(t, body["leads"]) != 0 {
		t.Fatalf("lead survived deletion")
	}
}

func TestPlanCrudThroughAPI(t *testing.T) {
	r := setupTestRouter(t)

	ownerCookie := login(t, r, ownerEmail, ownerPassword)

	w := request(r, http.MethodPost, "/api/admin/plans", `{"name":"Premium","price":"R$ 199/mês","description":"Tudo","featured":true}`, ownerCookie)

	if w.Code != http.StatusCreated {
		t.Fatalf("create plan: status %d (body %s)", w.Code, w.Body.String())
	}

	body := decode(t, w)

	var plans []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Featured bool   `json:"featured"`
	}

	if err := json.Unmarshal(body["plans"], &plans); err != nil {
		t.Fatalf("plans payload: %v", err)
	}

	if len(plans) != 4 {
		t.Fatalf("plans after create = %d, want 4", len(plans))
	}

	featured := 0
	premiumID := ""

	for _, p := range plans {
		if p.Featured {
			featured++
		}

		if p.Name == "Premium" {
			premiumID = p.ID
		}
	}

	// the seed ships a featured plan; creating another must steal the flag
	if featured != 1 {
		t.Fatalf("featured plans = %d, want exactly 1", featured)
	}

	w = request(r, http.MethodPut, "/api/admin/plans/"+premiumID, `{"name":"Premium+","price":"R$ 219/mês","description":"Tudo","featured":false}`, ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("update plan: status %d (body %s)", w.Code, w.Body.String())
	}

	w = request(r, http.MethodDelete, "/api/admin/plans/"+premiumID, "", ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("delete plan: status %d", w.Code)
	}

	body = decode(t, w)

	if countItems(t, body["plans"]) != 3 {
		t.Fatalf("plans after delete = %d, want 3", countItems(t, body["plans"]))
	}
}

func TestStudentEnrollmentThroughAPI(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodPost, "/api/auth/register", `{"name":"Aluno","email":"aluno@example.com","password":"secret1"}`, "")

	var registered struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatalf("register body: %v", err)
	}

	ownerCookie := login(t, r, ownerEmail, ownerPassword)

	w = request(r, http.MethodPost, "/api/admin/students", `{"userId":"`+registered.User.ID+`","gymStatus":"ativo","membershipPlan":"Black"}`, ownerCookie)

	if w.Code != http.StatusCreated {
		t.Fatalf("enroll: status %d (body %s)", w.Code, w.Body.String())
	}

	// enrolling twice is a conflict
	w = request(r, http.MethodPost, "/api/admin/students", `{"userId":"`+registered.User.ID+`","gymStatus":"ativo","membershipPlan":"Black"}`, ownerCookie)

	if w.Code != http.StatusConflict {
		t.Fatalf("double enroll: status %d, want 409", w.Code)
	}

	var students []struct {
		ID string `json:"id"`
	}

	w = request(r, http.MethodGet, "/api/admin/dashboard", "", ownerCookie)

	body := decode(t, w)

	if err := json.Unmarshal(body["students"], &students); err != nil {
		t.Fatalf("students payload: %v", err)
	}

	if len(students) != 1 {
		t.Fatalf("students = %d, want 1", len(students))
	}

	// deletion of enrollments is reserved for the owner; staff gets 403
	w = request(r, http.MethodPut, "/api/admin/users/"+registered.User.ID+"/role", `{"role":"staff"}`, ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("promote: status %d", w.Code)
	}

	staffCookie := login(t, r, "aluno@example.com", "secret1")

	w = request(r, http.MethodDelete, "/api/admin/students/"+students[0].ID, "", staffCookie)

	if w.Code != http.StatusForbidden {
		t.Fatalf("staff deleting student: status %d, want 403", w.Code)
	}

	w = request(r, http.MethodDelete, "/api/admin/students/"+students[0].ID, "", ownerCookie)

	if w.Code != http.StatusOK {
		t.Fatalf("owner deleting student: status %d", w.Code)
	}

	body = decode(t, w)

	if countItems(t, body["students"]) != 0 {
		t.Fatal("student survived deletion")
	}
}

func TestContentTypeIsEnforced(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", w.Code)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	r := setupTestRouter(t)

	w := request(r, http.MethodGet, "/api/nope", "", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Rota de API não encontrada.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
