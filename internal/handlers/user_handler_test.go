package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

func setupUserRouter(handler *UserHandler, principal *models.User) *gin.Engine {
	r := gin.New()
	r.POST("/users", handler.CreateUser)
	auth := r.Group("", injectUser(principal))
	auth.GET("/users/me", handler.GetMe)
	auth.PUT("/users/me", handler.UpdateMe)
	auth.GET("/users", handler.ListUsers)
	auth.GET("/users/:id", handler.GetUser)
	auth.PUT("/users/:id", handler.UpdateUser)
	return r
}

func testPrincipal() *models.User {
	return &models.User{Base: models.Base{ID: 1}, Email: "me@example.com", IsActive: true}
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("returns 201 with the created user", func(t *testing.T) {
		var got services.UserCreate
		svc := &mockUserService{
			createUserFn: func(in services.UserCreate) (*models.User, error) {
				got = in
				return &models.User{Base: models.Base{ID: 5}, Email: in.Email, FullName: in.FullName, IsActive: true}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupUserRouter(NewUserHandler(svc, audit), testPrincipal())

		rec := doRequest(r, "POST", "/users",
			`{"email":"new@example.com","password":"password123","full_name":"New User","is_superuser":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["email"] != "new@example.com" {
			t.Errorf("expected email in body, got %v", result)
		}
		if result["is_superuser"] != false {
			t.Errorf("registration must not grant superuser, got %v", result["is_superuser"])
		}
		if got.FullName == nil || *got.FullName != "New User" {
			t.Errorf("expected full name passed through, got %v", got.FullName)
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != "CREATE_USER" || audit.entries[0].ResourceID != 5 {
			t.Errorf("expected CREATE_USER audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		svc := &mockUserService{
			createUserFn: func(services.UserCreate) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		audit := &mockAuditService{}
		r := setupUserRouter(NewUserHandler(svc, audit), testPrincipal())

		rec := doRequest(r, "POST", "/users", `{"email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
		if len(audit.entries) != 0 {
			t.Errorf("failed registration must not be audited, got %+v", audit.entries)
		}
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short password", `{"email":"a@example.com","password":"short"}`, "password"},
		{"invalid email", `{"email":"not-an-email","password":"password123"}`, "email"},
		{"missing email", `{"password":"password123"}`, "email"},
		{"wrong type", `{"email":"a@example.com","password":12345678}`, "password"},
	}
	for _, tt := range tests {
		t.Run("returns 422 on "+tt.name, func(t *testing.T) {
			r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}), testPrincipal())

			rec := doRequest(r, "POST", "/users", tt.body)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			assertErrorCode(t, result, "VALIDATION_ERROR")
			assertDetailField(t, result, tt.field)
		})
	}
}

func TestUserHandler_GetMe(t *testing.T) {
	r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}), testPrincipal())

	rec := doRequest(r, "GET", "/users/me", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["email"] != "me@example.com" {
		t.Errorf("expected principal email, got %s", rec.Body.String())
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	t.Run("ignores privilege fields and audits without the password value", func(t *testing.T) {
		var got services.UserUpdate
		var gotUser *models.User
		svc := &mockUserService{
			updateUserFn: func(user *models.User, in services.UserUpdate) (*models.User, error) {
				gotUser, got = user, in
				updated := *user
				if in.FullName != nil {
					updated.FullName = in.FullName
				}
				return &updated, nil
			},
		}
		audit := &mockAuditService{}
		r := setupUserRouter(NewUserHandler(svc, audit), testPrincipal())

		rec := doRequest(r, "PUT", "/users/me",
			`{"full_name":"Renamed","password":"newpassword1","is_superuser":true,"is_active":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser == nil || gotUser.ID != 1 {
			t.Fatalf("expected update of the principal, got %+v", gotUser)
		}
		if got.IsSuperuser != nil || got.IsActive != nil {
			t.Errorf("self-update must not carry privilege fields, got %+v", got)
		}
		if got.Password == nil || *got.Password != "newpassword1" {
			t.Errorf("expected password passed to service")
		}
		if parseJSON(t, rec)["full_name"] != "Renamed" {
			t.Errorf("expected renamed user, got %s", rec.Body.String())
		}
		if len(audit.entries) != 1 {
			t.Fatalf("expected one audit entry, got %d", len(audit.entries))
		}
		if audit.entries[0].Changes["password"] != "changed" {
			t.Errorf("audit must record the password change, not its value: %v", audit.entries[0].Changes)
		}
	})

	t.Run("returns 409 when the email is taken", func(t *testing.T) {
		svc := &mockUserService{
			updateUserFn: func(*models.User, services.UserUpdate) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}), testPrincipal())

		rec := doRequest(r, "PUT", "/users/me", `{"email":"taken@example.com"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("passes paging through", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockUserService{
			listUsersFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
				got = page
				resp := pagination.NewPageResponse([]models.User{{Base: models.Base{ID: 2}}}, page, 3)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}), testPrincipal())

		rec := doRequest(r, "GET", "/users?skip=2&limit=1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Skip != 2 || got.Size() != 1 {
			t.Errorf("expected skip 2 limit 1, got %+v", got)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 3 {
			t.Errorf("expected total_items 3, got %v", result["total_items"])
		}
	})

	t.Run("returns 422 for limit out of range", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}), testPrincipal())

		for _, q := range []string{"limit=0", "limit=201", "skip=-1"} {
			rec := doRequest(r, "GET", "/users?"+q, "")
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("%s: expected 422, got %d", q, rec.Code)
			}
		}
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	svc := &mockUserService{
		getUserByIDFn: func(id uint) (*models.User, error) {
			if id == 9 {
				return &models.User{Base: models.Base{ID: 9}, Email: "nine@example.com"}, nil
			}
			return nil, apperrors.ErrUserNotFound
		},
	}
	r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}), testPrincipal())

	rec := doRequest(r, "GET", "/users/9", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(r, "GET", "/users/10", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
}

func TestUserHandler_UpdateUser(t *testing.T) {
	var gotID uint
	var got services.UserUpdate
	svc := &mockUserService{
		updateUserByIDFn: func(id uint, in services.UserUpdate) (*models.User, error) {
			gotID, got = id, in
			return &models.User{Base: models.Base{ID: id}, IsActive: *in.IsActive}, nil
		},
	}
	audit := &mockAuditService{}
	r := setupUserRouter(NewUserHandler(svc, audit), testPrincipal())

	rec := doRequest(r, "PUT", "/users/4", `{"is_active":false,"full_name":"Four"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != 4 {
		t.Errorf("expected id 4, got %d", gotID)
	}
	if got.IsActive == nil || *got.IsActive {
		t.Errorf("expected is_active=false passed to service, got %v", got.IsActive)
	}
	if got.FullName == nil || *got.FullName != "Four" {
		t.Errorf("expected embedded full_name to bind, got %v", got.FullName)
	}
	if len(audit.entries) != 1 || audit.entries[0].UserID != 1 || audit.entries[0].ResourceID != 4 {
		t.Errorf("expected audit by actor 1 on user 4, got %+v", audit.entries)
	}
}
