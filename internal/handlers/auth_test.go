package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"admin-console/internal/httperr"
	"admin-console/internal/models"
	"admin-console/internal/service"
)

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthorization{
		loginToken: "tok123",
		loginUser:  models.SafeUser{ID: "u-1", Username: "admin", Role: models.RoleAdmin},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/api/auth/login", `{"username":" admin ","password":"admin123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body=%s)", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if env.Code != 0 || env.Message != "Login successful" {
		t.Fatalf("envelope: %+v", env)
	}

	var data struct {
		AccessToken string          `json:"accessToken"`
		User        models.SafeUser `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.AccessToken != "tok123" || data.User.Role != models.RoleAdmin {
		t.Fatalf("unexpected data: %+v", data)
	}

	// the handler trims the username before the service sees it
	if auth.lastLoginUsername != "admin" {
		t.Fatalf("login username: got %q, want %q", auth.lastLoginUsername, "admin")
	}
}

func TestLogin_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{
			name: "missing fields",
			body: `{}`,
			code: http.StatusBadRequest,
			msg:  "Username and password are required",
		},
		{
			name: "blank username",
			body: `{"username":"   ","password":"secret1"}`,
			code: http.StatusBadRequest,
			msg:  "Username and password are required",
		},
		{
			name: "array body",
			body: `[1,2,3]`,
			code: http.StatusBadRequest,
			msg:  "Request body must be a JSON object",
		},
		{
			name: "null body",
			body: `null`,
			code: http.StatusBadRequest,
			msg:  "Request body must be a JSON object",
		},
		{
			name: "scalar body",
			body: `"hello"`,
			code: http.StatusBadRequest,
			msg:  "Request body must be a JSON object",
		},
		{
			name: "wrong field type",
			body: `{"username":1,"password":"secret1"}`,
			code: http.StatusBadRequest,
			msg:  "Invalid request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuthorization{}})

			w := doRequest(r, http.MethodPost, "/api/auth/login", tc.body, "")
			if w.Code != tc.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Code == 0 || env.Message != tc.msg {
				t.Fatalf("envelope: %+v", env)
			}
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	auth := &mockAuthorization{loginErr: httperr.Unauthorized("Invalid username or password")}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"nope123"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Invalid username or password" {
		t.Fatalf("message: got %q", env.Message)
	}
}

func TestMe_SubjectGone(t *testing.T) {
	auth := &mockAuthorization{
		parseClaims: claimsFor("u-gone", "ghost", models.RoleUser),
		currentErr:  httperr.Unauthorized("User does not exist"),
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodGet, "/api/auth/me", "", "tok")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "User does not exist" {
		t.Fatalf("message: got %q", env.Message)
	}
}

func TestMe_NeverExposesPassword(t *testing.T) {
	auth := &mockAuthorization{
		parseClaims: claimsFor("u-1", "admin", models.RoleAdmin),
		currentUser: models.SafeUser{ID: "u-1", Username: "admin", Role: models.RoleAdmin},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodGet, "/api/auth/me", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var raw map[string]any
	env := decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if _, ok := raw["password"]; ok {
		t.Fatalf("response leaked a password field: %s", env.Data)
	}
}
