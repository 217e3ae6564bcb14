package note

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/broker"
	"github.com/databroker-go/databroker/internal/domain"
	"github.com/databroker-go/databroker/internal/pkg"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := broker.NewSessionFactory(db)
	reg := broker.NewRegistry()
	RegisterOverrides(reg, factory, log)

	h := NewHandler(broker.New[domain.Note](factory, reg, log),
		pkg.ListDefaults{PageSize: 10, MaxPageSize: 100})

	r := gin.New()
	NewModule(h).RegisterRoutes(r.Group("/api/v1"))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createNote(t *testing.T, r *gin.Engine, title string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/v1/notes", fmt.Sprintf(`{"title":%q,"body":"text"}`, title))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			UID string `json:"uid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.Data.UID
}

func listNotes(t *testing.T, r *gin.Engine, query string) domain.ListResult[domain.Note] {
	t.Helper()
	w := doJSON(t, r, "GET", "/api/v1/notes"+query, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data domain.ListResult[domain.Note] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return resp.Data
}

func TestCreateNote_ValidationError(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/notes", `{"body":"no title"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestArchiveFlow(t *testing.T) {
	r, db := setupRouter(t)

	keepUID := createNote(t, r, "keep me")
	archiveUID := createNote(t, r, "archive me")

	// Both visible at first.
	if got := listNotes(t, r, ""); got.TotalCount != 2 {
		t.Fatalf("TotalCount = %d; want 2", got.TotalCount)
	}

	// Archive one through the update endpoint.
	w := doJSON(t, r, "PUT", "/api/v1/notes/"+archiveUID,
		`{"title":"archive me","body":"text","archived":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	var stored domain.Note
	if err := db.Where("uid = ?", archiveUID).First(&stored).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if !stored.Archived {
		t.Fatal("note should be archived after update")
	}

	// Default listing hides it.
	got := listNotes(t, r, "")
	if got.TotalCount != 1 {
		t.Errorf("TotalCount = %d; want 1 after archiving", got.TotalCount)
	}
	if len(got.Items) != 1 || got.Items[0].UID != keepUID {
		t.Errorf("unexpected items: %+v", got.Items)
	}

	// Explicit archived filter shows it.
	got = listNotes(t, r, "?archived=true")
	if got.TotalCount != 1 || len(got.Items) != 1 || got.Items[0].UID != archiveUID {
		t.Errorf("archived listing = %+v; want only the archived note", got.Items)
	}

	// Archived note is still directly addressable.
	w = doJSON(t, r, "GET", "/api/v1/notes/"+archiveUID, "")
	if w.Code != http.StatusOK {
		t.Errorf("get archived status = %d; want 200", w.Code)
	}
}

func TestDeleteNote(t *testing.T) {
	r, db := setupRouter(t)
	uid := createNote(t, r, "to delete")

	w := doJSON(t, r, "DELETE", "/api/v1/notes/"+uid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var count int64
	db.Model(&domain.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("count = %d; want 0", count)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "GET", "/api/v1/notes/no-such-uid", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}
