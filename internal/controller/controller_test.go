package controller_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"tasktrack/internal/auth"
	"tasktrack/internal/controller"
	"tasktrack/internal/models"
	"tasktrack/internal/routes"
	"tasktrack/internal/session"
)

func TestMain(m *testing.M) {
	// Router loads templates relative to the repo root.
	os.Setenv("TEMPLATE_GLOB", "../../web/templates/*.html")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer() (http.Handler, *memUsers, *memTasks, session.Manager) {
	users := newMemUsers()
	tasks := newMemTasks()
	sessions := session.NewCookieManager("test-secret", time.Hour, false)
	ctrl := controller.New(users, tasks, sessions, nil, nil)
	return routes.Router(ctrl, sessions), users, tasks, sessions
}

func do(r http.Handler, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addUser(t *testing.T, users *memUsers, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{Username: username, PasswordHash: hash}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("add user: %v", err)
	}
	return u
}

func loginAs(t *testing.T, r http.Handler, username, password string) []*http.Cookie {
	t.Helper()
	w := do(r, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("login failed: status=%d location=%q body=%q", w.Code, w.Header().Get("Location"), w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no session cookie")
	}
	return cookies
}

func TestHomeRequiresSession(t *testing.T) {
	r, _, _, _ := newServer()
	for _, path := range []string{"/", "/complete/t1", "/delete/t1", "/clear_completed"} {
		w := do(r, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Fatalf("%s: status=%d location=%q, want redirect to /login", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestSignupSuccess(t *testing.T) {
	r, users, _, _ := newServer()
	w := do(r, http.MethodPost, "/signup", url.Values{
		"username":         {"alice1"},
		"password":         {"Str0ng!Pw"},
		"confirm_password": {"Str0ng!Pw"},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q, want redirect to /login", w.Code, w.Header().Get("Location"))
	}
	u, err := users.GetByUsername(context.Background(), "alice1")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if u.PasswordHash == "Str0ng!Pw" || u.PasswordHash == "" {
		t.Fatal("plaintext password must never be stored")
	}
	if !auth.VerifyPassword(u.PasswordHash, "Str0ng!Pw") {
		t.Fatal("stored hash does not verify the original password")
	}
}

func TestSignupFailurePriorityOrder(t *testing.T) {
	r, users, _, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")

	cases := []struct {
		name                        string
		username, password, confirm string
		wantStatus                  int
		wantMsg                     string
	}{
		// Duplicate wins even when the password would also fail.
		{"duplicate first", "alice1", "weak", "other", http.StatusConflict, "already taken"},
		{"bad username next", "1bob", "weak", "other", http.StatusBadRequest, "start with a letter"},
		{"bad password next", "bob", "weak", "other", http.StatusBadRequest, "at least 8 characters"},
		{"mismatch last", "bob", "Str0ng!Pw", "Str0ng!Pw2", http.StatusBadRequest, "do not match"},
	}
	for _, tc := range cases {
		w := do(r, http.MethodPost, "/signup", url.Values{
			"username":         {tc.username},
			"password":         {tc.password},
			"confirm_password": {tc.confirm},
		}, nil)
		if w.Code != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, tc.wantStatus)
		}
		if !strings.Contains(w.Body.String(), tc.wantMsg) {
			t.Fatalf("%s: body %q missing %q", tc.name, w.Body.String(), tc.wantMsg)
		}
	}
	if users.count() != 1 {
		t.Fatalf("failed signups must write nothing; store has %d users", users.count())
	}
}

func TestDuplicateSignupLeavesOneUser(t *testing.T) {
	r, users, _, _ := newServer()
	form := url.Values{
		"username":         {"alice1"},
		"password":         {"Str0ng!Pw"},
		"confirm_password": {"Str0ng!Pw"},
	}
	if w := do(r, http.MethodPost, "/signup", form, nil); w.Code != http.StatusFound {
		t.Fatalf("first signup: status = %d", w.Code)
	}
	w := do(r, http.MethodPost, "/signup", form, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second signup: status = %d, want %d", w.Code, http.StatusConflict)
	}
	if users.count() != 1 {
		t.Fatalf("store has %d users with username alice1's signup run twice, want 1", users.count())
	}
}

func TestLoginFailuresShowOneMessage(t *testing.T) {
	r, users, _, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")

	// Unknown user and wrong password must be indistinguishable.
	for _, form := range []url.Values{
		{"username": {"nobody"}, "password": {"Str0ng!Pw"}},
		{"username": {"alice1"}, "password": {"WrongPw1!"}},
	} {
		w := do(r, http.MethodPost, "/login", form, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(w.Body.String(), "invalid username or password") {
			t.Fatalf("body %q missing unified failure message", w.Body.String())
		}
	}
}

func TestCreateTaskValidation(t *testing.T) {
	r, users, tasks, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	cases := []struct {
		name        string
		title, desc string
	}{
		{"missing title", "", "2%"},
		{"missing description", "Buy milk", ""},
		{"whitespace only", "   ", "  "},
	}
	for _, tc := range cases {
		w := do(r, http.MethodPost, "/", url.Values{"title": {tc.title}, "description": {tc.desc}}, cookies)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "required") {
			t.Fatalf("%s: body missing validation message", tc.name)
		}
	}

	long := strings.Repeat("x", 101)
	w := do(r, http.MethodPost, "/", url.Values{"title": {long}, "description": {"d"}}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("long title: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	if n := len(tasks.all()); n != 0 {
		t.Fatalf("failed creates must write nothing; store has %d tasks", n)
	}
}

func TestTaskLifecycleEndToEnd(t *testing.T) {
	r, _, tasks, _ := newServer()

	w := do(r, http.MethodPost, "/signup", url.Values{
		"username":         {"alice1"},
		"password":         {"Str0ng!Pw"},
		"confirm_password": {"Str0ng!Pw"},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("signup: status = %d", w.Code)
	}
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	w = do(r, http.MethodPost, "/", url.Values{"title": {"Buy milk"}, "description": {"2%"}}, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("create: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	all := tasks.all()
	if len(all) != 1 || all[0].Completed {
		t.Fatalf("expected one active task, got %+v", all)
	}
	taskID := all[0].ID

	w = do(r, http.MethodGet, "/", nil, cookies)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Buy milk") {
		t.Fatalf("home: status=%d, body missing task", w.Code)
	}

	w = do(r, http.MethodGet, "/complete/"+taskID, nil, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("complete: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	if got, _ := tasks.byID(taskID); !got.Completed {
		t.Fatal("task not marked completed")
	}

	w = do(r, http.MethodGet, "/clear_completed", nil, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("clear: status = %d", w.Code)
	}
	if n := len(tasks.all()); n != 0 {
		t.Fatalf("clear left %d tasks, want 0", n)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	r, users, tasks, _ := newServer()
	alice := addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	task := &models.Task{Title: "Buy milk", Description: "2%", UserID: alice.ID}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodGet, "/complete/"+task.ID, nil, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("complete #%d: status=%d location=%q", i+1, w.Code, w.Header().Get("Location"))
		}
	}
	if got, _ := tasks.byID(task.ID); !got.Completed {
		t.Fatal("task not completed")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	r, users, tasks, _ := newServer()
	alice := addUser(t, users, "alice1", "Str0ng!Pw")
	addUser(t, users, "bob", "Str0ng!Pw")

	task := &models.Task{Title: "Buy milk", Description: "2%", UserID: alice.ID}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	bobCookies := loginAs(t, r, "bob", "Str0ng!Pw")
	for _, path := range []string{"/complete/" + task.ID, "/delete/" + task.ID} {
		w := do(r, http.MethodGet, path, nil, bobCookies)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: status = %d, want %d", path, w.Code, http.StatusFound)
		}
		loc := w.Header().Get("Location")
		if !strings.Contains(loc, "error=") {
			t.Fatalf("%s: redirect %q should carry the not-found message", path, loc)
		}
	}
	if got, ok := tasks.byID(task.ID); !ok || got.Completed {
		t.Fatalf("another user's request must not touch the task, got %+v ok=%v", got, ok)
	}

	// Bob's list never shows Alice's task.
	w := do(r, http.MethodGet, "/", nil, bobCookies)
	if strings.Contains(w.Body.String(), "Buy milk") {
		t.Fatal("another user's task leaked into the list")
	}
}

func TestDeleteUnknownTask(t *testing.T) {
	r, users, _, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	w := do(r, http.MethodGet, "/delete/no-such-id", nil, cookies)
	if w.Code != http.StatusFound || !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Fatalf("status=%d location=%q, want redirect with message", w.Code, w.Header().Get("Location"))
	}
}

func TestClearCompletedWithNothingToClear(t *testing.T) {
	r, users, tasks, _ := newServer()
	alice := addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	active := &models.Task{Title: "Buy milk", Description: "2%", UserID: alice.ID}
	if err := tasks.Create(context.Background(), active); err != nil {
		t.Fatal(err)
	}

	w := do(r, http.MethodGet, "/clear_completed", nil, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q, want plain redirect home", w.Code, w.Header().Get("Location"))
	}
	if _, ok := tasks.byID(active.ID); !ok {
		t.Fatal("clear with nothing completed must leave active tasks untouched")
	}
}

func TestAuthFormsRedirectHomeWithLiveSession(t *testing.T) {
	r, users, _, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	for _, path := range []string{"/login", "/signup"} {
		w := do(r, http.MethodGet, path, nil, cookies)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("%s: status=%d location=%q, want redirect home", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r, users, _, _ := newServer()
	addUser(t, users, "alice1", "Str0ng!Pw")
	cookies := loginAs(t, r, "alice1", "Str0ng!Pw")

	w := do(r, http.MethodGet, "/logout", nil, cookies)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q, want redirect to /login", w.Code, w.Header().Get("Location"))
	}
	cleared := w.Result().Cookies()
	if len(cleared) == 0 || cleared[0].Value != "" {
		t.Fatal("logout must drop the session cookie")
	}

	// Logout without a session is still a clean redirect.
	w = do(r, http.MethodGet, "/logout", nil, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("idempotent logout: status = %d", w.Code)
	}
}
