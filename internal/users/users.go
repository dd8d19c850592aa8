// Package users covers sign-in, sign-up and the signed-in user's profile.
package users

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Record is a user as the API returns it.
type Record struct {
	MongoID           string           `json:"_id,omitempty"`
	ID                string           `json:"id,omitempty"`
	Username          string           `json:"username,omitempty"`
	Email             string           `json:"email,omitempty"`
	FirstName         string           `json:"first_name,omitempty"`
	LastName          string           `json:"last_name,omitempty"`
	PhoneNumber       string           `json:"phone_number,omitempty"`
	Address           string           `json:"address,omitempty"`
	Age               int              `json:"age,omitempty"`
	Gender            string           `json:"gender,omitempty"`
	Nationality       string           `json:"nationality,omitempty"`
	PAN               string           `json:"pan,omitempty"`
	Aadhaar           string           `json:"aadhaar,omitempty"`
	EmploymentType    string           `json:"employment_type,omitempty"`
	Company           string           `json:"company,omitempty"`
	YearsOfExperience int              `json:"years_of_experience,omitempty"`
	AnnualIncome      *decimal.Decimal `json:"annual_income,omitempty"`
	CibilScore        int              `json:"cibil_score,omitempty"`
	CreatedAt         string           `json:"created_at,omitempty"`
}

// User is the signed-in user as the dashboard shows it. It is also the shape
// cached in the credential store.
type User struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	CibilScore        int              `json:"cibilScore"`
	Username          string           `json:"username"`
	FirstName         string           `json:"firstName"`
	LastName          string           `json:"lastName"`
	PhoneNumber       string           `json:"phoneNumber,omitempty"`
	Address           string           `json:"address,omitempty"`
	Age               int              `json:"age,omitempty"`
	Gender            string           `json:"gender,omitempty"`
	Nationality       string           `json:"nationality,omitempty"`
	PAN               string           `json:"pan,omitempty"`
	Aadhaar           string           `json:"aadhaar,omitempty"`
	EmploymentType    string           `json:"employmentType,omitempty"`
	Company           string           `json:"company,omitempty"`
	YearsOfExperience int              `json:"yearsOfExperience,omitempty"`
	AnnualIncome      *decimal.Decimal `json:"annualIncome,omitempty"`
}

// Normalize maps an API user onto the display user. A missing CIBIL score
// shows as zero.
func Normalize(r Record) User {
	return User{
		ID:                store.RecordID(r.MongoID, r.ID),
		Name:              strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:             r.Email,
		CibilScore:        r.CibilScore,
		Username:          r.Username,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		PhoneNumber:       r.PhoneNumber,
		Address:           r.Address,
		Age:               r.Age,
		Gender:            r.Gender,
		Nationality:       r.Nationality,
		PAN:               r.PAN,
		Aadhaar:           r.Aadhaar,
		EmploymentType:    r.EmploymentType,
		Company:           r.Company,
		YearsOfExperience: r.YearsOfExperience,
		AnnualIncome:      r.AnnualIncome,
	}
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  Record `json:"user"`
}

// Credentials is a sign-in attempt.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Username                    string           `json:"username" validate:"required,min=3"`
	Email                       string           `json:"email" validate:"required,email"`
	Password                    string           `json:"password" validate:"required,min=6"`
	FirstName                   string           `json:"first_name" validate:"required"`
	LastName                    string           `json:"last_name" validate:"required"`
	Age                         int              `json:"age,omitempty" validate:"omitempty,min=18,max=120"`
	Gender                      string           `json:"gender,omitempty"`
	Nationality                 string           `json:"nationality,omitempty"`
	Address                     string           `json:"address,omitempty"`
	PhoneNumber                 string           `json:"phone_number,omitempty"`
	PAN                         string           `json:"pan,omitempty" validate:"omitempty,len=10,alphanum"`
	Aadhaar                     string           `json:"aadhaar,omitempty" validate:"omitempty,len=12,numeric"`
	EmploymentType              string           `json:"employment_type,omitempty"`
	Company                     string           `json:"company,omitempty"`
	YearsOfExperience           int              `json:"years_of_experience,omitempty"`
	AnnualIncome                *decimal.Decimal `json:"annual_income,omitempty"`
	BankAccountDetails          string           `json:"bank_account_details,omitempty"`
	EstimatedExistingLoanAmount *decimal.Decimal `json:"estimated_existing_loan_amount,omitempty"`
}

// ProfileUpdate carries the editable profile fields in the API's field names.
type ProfileUpdate struct {
	FirstName         string           `json:"first_name,omitempty"`
	LastName          string           `json:"last_name,omitempty"`
	Email             string           `json:"email,omitempty" validate:"omitempty,email"`
	Age               int              `json:"age,omitempty" validate:"omitempty,min=18,max=120"`
	Gender            string           `json:"gender,omitempty"`
	Nationality       string           `json:"nationality,omitempty"`
	Address           string           `json:"address,omitempty"`
	PhoneNumber       string           `json:"phone_number,omitempty"`
	PAN               string           `json:"pan,omitempty"`
	Aadhaar           string           `json:"aadhaar,omitempty"`
	EmploymentType    string           `json:"employment_type,omitempty"`
	Company           string           `json:"company,omitempty"`
	YearsOfExperience int              `json:"years_of_experience,omitempty"`
	AnnualIncome      *decimal.Decimal `json:"annual_income,omitempty"`
}

// API wraps the /users endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the user endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// Login exchanges credentials for a token and the user record.
func (a *API) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := a.client.Post(ctx, "/users/login", Credentials{Username: username, Password: password}, &resp)
	return resp, err
}

// Signup creates an account and signs it in.
func (a *API) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := a.client.Post(ctx, "/users/signup", req, &resp)
	return resp, err
}

// CurrentUser returns the user the stored token belongs to.
func (a *API) CurrentUser(ctx context.Context) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, "/users/me", nil, &rec)
	return rec, err
}

// UpdateProfile edits a user's profile and returns the updated record.
func (a *API) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (Record, error) {
	var rec Record
	err := a.client.Put(ctx, "/users/"+url.PathEscape(id), update, &rec)
	return rec, err
}
