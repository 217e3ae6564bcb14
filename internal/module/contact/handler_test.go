package contact

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
	if err := db.AutoMigrate(&domain.Contact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := broker.New[domain.Contact](broker.NewSessionFactory(db), nil, log)
	h := NewHandler(b, pkg.ListDefaults{PageSize: 10, MaxPageSize: 100})

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

func createContact(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q}`, name, email)
	w := doJSON(t, r, "POST", "/api/v1/contacts", body)
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
	if resp.Data.UID == "" {
		t.Fatal("create response has no uid")
	}
	return resp.Data.UID
}

func TestCreateContact(t *testing.T) {
	r, db := setupRouter(t)

	uid := createContact(t, r, "Alice", "alice@example.com")

	var stored domain.Contact
	if err := db.Where("uid = ?", uid).First(&stored).Error; err != nil {
		t.Fatalf("stored record not found: %v", err)
	}
	if stored.Name != "Alice" {
		t.Errorf("Name = %q; want Alice", stored.Name)
	}
}

func TestCreateContact_ValidationError(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/contacts", `{"name":"A","email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Errors["name"]; !ok {
		t.Errorf("expected name error, got %v", resp.Errors)
	}
	if _, ok := resp.Errors["email"]; !ok {
		t.Errorf("expected email error, got %v", resp.Errors)
	}
}

func TestCreateContact_DuplicateEmail(t *testing.T) {
	r, _ := setupRouter(t)

	createContact(t, r, "Alice", "dup@example.com")
	w := doJSON(t, r, "POST", "/api/v1/contacts", `{"name":"Bob","email":"dup@example.com"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d; want 409", w.Code)
	}
}

func TestGetContact(t *testing.T) {
	r, _ := setupRouter(t)
	uid := createContact(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, "GET", "/api/v1/contacts/"+uid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var resp struct {
		Data domain.Contact `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Email != "alice@example.com" {
		t.Errorf("Email = %q; want alice@example.com", resp.Data.Email)
	}
}

func TestGetContact_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "GET", "/api/v1/contacts/no-such-uid", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}

func TestListContacts(t *testing.T) {
	r, _ := setupRouter(t)
	createContact(t, r, "Alice Smith", "alice@example.com")
	createContact(t, r, "Bob Jones", "bob@example.com")

	w := doJSON(t, r, "GET", "/api/v1/contacts?name__like=Alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var resp struct {
		Data domain.ListResult[domain.Contact] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalCount != 1 {
		t.Errorf("TotalCount = %d; want 1", resp.Data.TotalCount)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Name != "Alice Smith" {
		t.Errorf("unexpected items: %+v", resp.Data.Items)
	}
}

func TestListContacts_Window(t *testing.T) {
	r, _ := setupRouter(t)
	for i := 1; i <= 15; i++ {
		createContact(t, r, fmt.Sprintf("Contact%02d", i), fmt.Sprintf("c%02d@example.com", i))
	}

	w := doJSON(t, r, "GET", "/api/v1/contacts?start_index=5&page_size=5&sort=id:asc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var resp struct {
		Data domain.ListResult[domain.Contact] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalCount != 15 {
		t.Errorf("TotalCount = %d; want 15", resp.Data.TotalCount)
	}
	if len(resp.Data.Items) != 5 {
		t.Fatalf("len(Items) = %d; want 5", len(resp.Data.Items))
	}
	if resp.Data.Items[0].Name != "Contact06" {
		t.Errorf("first item = %q; want Contact06", resp.Data.Items[0].Name)
	}
}

func TestUpdateContact(t *testing.T) {
	r, db := setupRouter(t)
	uid := createContact(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, "PUT", "/api/v1/contacts/"+uid,
		`{"name":"Alice Updated","email":"alice@example.com","company":"Acme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var stored domain.Contact
	if err := db.Where("uid = ?", uid).First(&stored).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Name != "Alice Updated" || stored.Company != "Acme" {
		t.Errorf("stored = %+v; want updated fields", stored)
	}
}

func TestUpdateContact_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "PUT", "/api/v1/contacts/no-such-uid",
		`{"name":"Ghost","email":"ghost@example.com"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}

func TestDeleteContact(t *testing.T) {
	r, db := setupRouter(t)
	uid := createContact(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, "DELETE", "/api/v1/contacts/"+uid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var count int64
	db.Model(&domain.Contact{}).Count(&count)
	if count != 0 {
		t.Errorf("count = %d; want 0", count)
	}
}

func TestDeleteContact_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "DELETE", "/api/v1/contacts/no-such-uid", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}
