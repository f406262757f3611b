package api

import (
	"context"

	"github.com/mayurimulay789/posadmin-client/internal/domain"
	"github.com/mayurimulay789/posadmin-client/internal/rest"
)

type AuthAPI struct {
	res *rest.Resource
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string         `json:"token"`
	User  domain.UserRef `json:"user"`
}

type ProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (a *AuthAPI) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	var out LoginResult
	if err := a.res.Post(ctx, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the backend; callers treat failures as best-effort.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.res.Post(ctx, "/logout", nil, nil)
}

// CurrentUser revalidates the session against the backend.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*domain.UserRef, error) {
	var out entityResponse[domain.UserRef]
	if err := a.res.Get(ctx, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateProfile replaces the user wholesale on success.
func (a *AuthAPI) UpdateProfile(ctx context.Context, in ProfileInput) (*domain.UserRef, error) {
	var out entityResponse[domain.UserRef]
	if err := a.res.Put(ctx, "/profile", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
