package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"medtrack/internal/models"
)

func TestUpdateProfile(t *testing.T) {
	router := setupTestRouter(t)
	alice := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, "PUT", "/api/profile",
		`{"full_name":"Alice Smith","phone":"555-0100","conditions":["hypertension","asthma"]}`, alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var user models.User
	decodeBody(t, rec, &user)
	if user.FullName != "Alice Smith" || user.Phone != "555-0100" {
		t.Errorf("user = %+v", user)
	}
	if user.ProfileComplete {
		t.Error("profile should not be complete without a date of birth")
	}

	var conditions []string
	if err := json.Unmarshal(user.Conditions, &conditions); err != nil {
		t.Fatalf("conditions = %s: %v", string(user.Conditions), err)
	}
	if len(conditions) != 2 || conditions[0] != "hypertension" {
		t.Errorf("conditions = %v", conditions)
	}

	// Adding the date of birth completes the profile
	rec = doJSON(t, router, "PUT", "/api/profile", `{"date_of_birth":"1985-04-12"}`, alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &user)
	if !user.ProfileComplete {
		t.Error("profile should be complete with name and date of birth on file")
	}
	if user.FullName != "Alice Smith" {
		t.Errorf("partial update must not clear full_name, got %q", user.FullName)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	router := setupTestRouter(t)
	alice := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, "PUT", "/api/profile", `{"email":"not-an-email"}`, alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doJSON(t, router, "PUT", "/api/profile", `{"date_of_birth":"12/04/1985"}`, alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
