package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository/memory"
	"github.com/arklim/access-core/internal/transport/http/handlers"
	"github.com/arklim/access-core/internal/usecase"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	users := memory.NewUserStore()
	roles := memory.NewRoleStore()
	assignments := memory.NewAssignmentStore(users, roles)

	return Register(Dependencies{
		Logger: logger,
		Services: ServiceSet{
			Directory:   usecase.NewDirectoryService(users, logger),
			Roles:       usecase.NewRoleService(domain.NewNameRegistry(), roles, logger),
			Assignments: usecase.NewAssignmentService(users, roles, assignments, nil, logger),
			Authz:       usecase.NewAuthorizationService(users, roles, assignments, logger),
		},
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health handlers.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("status = %q, want ok", health.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header must be set")
	}
}

func TestGrantAndAuthorizeFlow(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/users", handlers.UserCreateRequest{
		Username: "alice",
		FullName: "Alice Smith",
		Email:    "alice@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/roles", handlers.RoleCreateRequest{
		Name: "Editor",
		Permissions: []handlers.PermissionRequest{
			{Name: "write", Resource: "articles", Description: "write articles"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create role status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/assignments", handlers.AssignmentCreateRequest{
		Username:   "alice",
		RoleName:   "Editor",
		AssignedBy: "root",
		Reason:     "content team",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("grant status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var assignment handlers.AssignmentPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &assignment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.Kind != "PERMANENT" || !assignment.Active {
		t.Fatalf("unexpected assignment payload: %+v", assignment)
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/authz/check-permission?username=alice&permission=WRITE&resource=articles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("check status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var decision handlers.AuthzDecision
	if err := json.Unmarshal(rec.Body.Bytes(), &decision); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Granted {
		t.Fatal("permission must be granted through the active assignment")
	}

	// revoke, then the same check must deny
	rec = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/assignments/%s/revoke", assignment.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/authz/check-permission?username=alice&permission=write&resource=articles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("check status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decision); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Granted {
		t.Fatal("revoked assignment must no longer grant the permission")
	}
}

func TestErrorMapping(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/users/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/users", handlers.UserCreateRequest{
		Username: "a!", FullName: "X", Email: "x@y.z",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid username status = %d, want 400", rec.Code)
	}

	// grants reference users and roles in the request body, so a missing
	// reference is a client error rather than a missing resource
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/assignments", handlers.AssignmentCreateRequest{
		Username: "ghost", RoleName: "Ghost", AssignedBy: "root",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("grant with unknown user status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/roles", handlers.RoleCreateRequest{Name: "Dup"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create role status = %d", rec.Code)
	}
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/roles", handlers.RoleCreateRequest{Name: "Dup"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate role status = %d, want 409", rec.Code)
	}
}
