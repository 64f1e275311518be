package handler

import (
	"context"

	"github.com/medix-app/medix-backend/internal/model"
)

// UserStore is the narrow contract the handlers need from the account
// directory. *repository.UserRepo implements it; tests substitute an
// in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (uint64, error)
	GetByLogin(ctx context.Context, login string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetOnline(ctx context.Context, id uint64, online bool) error
	Count(ctx context.Context) (total, online uint64, err error)
}
