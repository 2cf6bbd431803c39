package forms

import (
	"strings"

	"ftth-net.id/dashboard/internal/models"
)

type UserForm struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     int    `json:"role" validate:"omitempty,oneof=1 2 3"`
}

// UserFormFrom loads a user for editing with the password left blank.
func UserFormFrom(u models.User) UserForm {
	return UserForm{
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// User validates the form. New accounts need a password; role defaults to User.
func (f UserForm) User(editing bool) (models.User, error) {
	f.Fullname = strings.TrimSpace(f.Fullname)
	f.Email = strings.TrimSpace(f.Email)

	errs := Errors{}
	check(f, errs)
	if !editing && f.Password == "" {
		errs.add("password", "password is required")
	}
	if err := errs.orNil(); err != nil {
		return models.User{}, err
	}

	if f.Role == 0 {
		f.Role = models.RoleUser
	}
	return models.User{
		Fullname: f.Fullname,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	}, nil
}

// Registration is the public sign-up form.
type Registration struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r Registration) User() (models.User, error) {
	r.Fullname = strings.TrimSpace(r.Fullname)
	r.Email = strings.TrimSpace(r.Email)

	errs := Errors{}
	check(r, errs)
	if err := errs.orNil(); err != nil {
		return models.User{}, err
	}
	return models.User{
		Fullname: r.Fullname,
		Email:    r.Email,
		Password: r.Password,
		Role:     models.RoleUser,
	}, nil
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error {
	errs := Errors{}
	check(c, errs)
	return errs.orNil()
}

type InterfaceForm struct {
	RouterID   string `json:"router_id" validate:"required"`
	Name       string `json:"interface_name" validate:"required"`
	IsExcluded bool   `json:"is_excluded"`
}

func (f InterfaceForm) Validate() error {
	errs := Errors{}
	check(f, errs)
	return errs.orNil()
}

// ExcludedFlag is the 0/1 form the backend stores.
func (f InterfaceForm) ExcludedFlag() int {
	if f.IsExcluded {
		return 1
	}
	return 0
}
