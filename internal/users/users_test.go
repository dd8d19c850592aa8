package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
)

func TestLoginSendsCredentials(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{
		"token": "jwt-abc",
		"user": map[string]any{
			"_id":        "u1",
			"username":   "asha",
			"first_name": "Asha",
			"last_name":  "Rao",
			"email":      "asha@example.com",
		},
	})

	resp, err := NewAPI(srv.Client()).Login(context.Background(), "asha", "s3cret!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token != "jwt-abc" || resp.User.MongoID != "u1" {
		t.Fatalf("unexpected response %+v", resp)
	}

	var body Credentials
	srv.Last(http.MethodPost, "/users/login").Decode(t, &body)
	if body.Username != "asha" || body.Password != "s3cret!" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestNormalizeUser(t *testing.T) {
	income := decimal.NewFromInt(1800000)
	u := Normalize(Record{
		ID:                "42",
		FirstName:         "Asha",
		LastName:          "Rao",
		PhoneNumber:       "+91 98450 00000",
		EmploymentType:    "salaried",
		YearsOfExperience: 6,
		AnnualIncome:      &income,
	})
	if u.ID != "42" || u.Name != "Asha Rao" || u.CibilScore != 0 || u.PhoneNumber != "+91 98450 00000" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.EmploymentType != "salaried" || u.YearsOfExperience != 6 || !u.AnnualIncome.Equal(income) {
		t.Fatalf("unexpected profile fields %+v", u)
	}
}

func TestUpdateProfileUsesSnakeCase(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPut, "/users/u1", http.StatusOK, map[string]any{"_id": "u1", "first_name": "Asha", "last_name": "Iyer"})

	rec, err := NewAPI(srv.Client()).UpdateProfile(context.Background(), "u1", ProfileUpdate{LastName: "Iyer", PhoneNumber: "999"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if Normalize(rec).Name != "Asha Iyer" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if body := string(srv.Last(http.MethodPut, "/users/u1").Body); body != `{"last_name":"Iyer","phone_number":"999"}` {
		t.Fatalf("unexpected body %s", body)
	}
}
