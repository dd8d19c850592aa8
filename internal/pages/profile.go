package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/toast"
	"github.com/ccms-app/dashboard/internal/users"
)

// ProfileForm is the editable profile as the form shows it.
type ProfileForm struct {
	FirstName         string           `json:"firstName"`
	LastName          string           `json:"lastName"`
	Email             string           `json:"email" validate:"omitempty,email"`
	Age               int              `json:"age,omitempty" validate:"omitempty,min=18,max=120"`
	Gender            string           `json:"gender,omitempty"`
	Nationality       string           `json:"nationality,omitempty"`
	Address           string           `json:"address,omitempty"`
	PhoneNumber       string           `json:"phoneNumber,omitempty"`
	PAN               string           `json:"pan,omitempty"`
	Aadhaar           string           `json:"aadhaar,omitempty"`
	EmploymentType    string           `json:"employmentType,omitempty"`
	Company           string           `json:"company,omitempty"`
	YearsOfExperience int              `json:"yearsOfExperience,omitempty"`
	AnnualIncome      *decimal.Decimal `json:"annualIncome,omitempty"`
}

// FormFromUser fills the form from the signed-in user.
func FormFromUser(u users.User) ProfileForm {
	return ProfileForm{
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Age:               u.Age,
		Gender:            u.Gender,
		Nationality:       u.Nationality,
		Address:           u.Address,
		PhoneNumber:       u.PhoneNumber,
		PAN:               u.PAN,
		Aadhaar:           u.Aadhaar,
		EmploymentType:    u.EmploymentType,
		Company:           u.Company,
		YearsOfExperience: u.YearsOfExperience,
		AnnualIncome:      u.AnnualIncome,
	}
}

// Update maps the form back onto the API's field names.
func (f ProfileForm) Update() users.ProfileUpdate {
	return users.ProfileUpdate{
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		Email:             f.Email,
		Age:               f.Age,
		Gender:            f.Gender,
		Nationality:       f.Nationality,
		Address:           f.Address,
		PhoneNumber:       f.PhoneNumber,
		PAN:               f.PAN,
		Aadhaar:           f.Aadhaar,
		EmploymentType:    f.EmploymentType,
		Company:           f.Company,
		YearsOfExperience: f.YearsOfExperience,
		AnnualIncome:      f.AnnualIncome,
	}
}

// ProfileView is the profile screen.
type ProfileView struct {
	User users.User  `json:"user"`
	Form ProfileForm `json:"form"`
}

// Profile returns the profile screen of the signed-in user.
func (p *Pages) Profile() (ProfileView, error) {
	u := p.auth.User()
	if u == nil {
		return ProfileView{}, auth.ErrSignedOut
	}
	return ProfileView{User: *u, Form: FormFromUser(*u)}, nil
}

// SaveProfile stores the form and returns the refreshed screen.
func (p *Pages) SaveProfile(ctx context.Context, form ProfileForm) (ProfileView, error) {
	if !p.auth.IsAuthenticated() {
		return ProfileView{}, auth.ErrSignedOut
	}
	// UpdateUser already resolved the server message.
	if err := p.auth.UpdateUser(ctx, form.Update()); err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Failed to update profile"
		}
		toast.Error(ctx, msg)
		return ProfileView{}, err
	}
	toast.Success(ctx, "Profile updated successfully!")
	return p.Profile()
}
