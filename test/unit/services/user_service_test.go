package services_test

import (
	"context"
	"testing"
	"time"

	impl "github.com/commercelab/microshop/internal/application/services"
	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/user"
	tmocks "github.com/commercelab/microshop/test/mocks"
)

func TestGetUser_CacheAside(t *testing.T) {
	store := &tmocks.UserStoreMock{
		GetFn: func(id int64) (user.User, bool) {
			if id == 69 {
				return user.Seed()[0], true
			}
			return user.User{}, false
		},
	}
	cache := tmocks.NewFakeCache()
	svc := impl.NewUserService(store, cache, time.Minute, quietLogger())

	ctx := context.Background()
	u, err := svc.GetUser(ctx, 69)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "mike.oochie@expose.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if _, err := svc.GetUser(ctx, 69); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.GetCalls.Load(); got != 1 {
		t.Fatalf("store consulted %d times, want 1", got)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc := impl.NewUserService(&tmocks.UserStoreMock{}, tmocks.NewFakeCache(), time.Minute, quietLogger())
	if _, err := svc.GetUser(context.Background(), 5); !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateUser_PopulatesCache(t *testing.T) {
	store := &tmocks.UserStoreMock{AddFn: func(u user.User) int64 { return 70 }}
	cache := tmocks.NewFakeCache()
	svc := impl.NewUserService(store, cache, time.Minute, quietLogger())

	id, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{
		Name: "Ada", Email: "ada@calc.org", Address: "1 Analytical Way",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 70 {
		t.Fatalf("unexpected id %d", id)
	}
	if !cache.Has("user:70") {
		t.Fatal("new user not cache-populated")
	}

	// next read must be a hit
	u, err := svc.GetUser(context.Background(), 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Ada" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if got := store.GetCalls.Load(); got != 0 {
		t.Fatalf("store consulted %d times for a freshly cached user", got)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	svc := impl.NewUserService(&tmocks.UserStoreMock{}, tmocks.NewFakeCache(), time.Minute, quietLogger())

	cases := []user.CreateUserRequest{
		{Email: "a@b.com", Address: "x"},
		{Name: "n", Email: "not-an-email", Address: "x"},
		{Name: "n", Email: "a@b.com"},
	}
	for _, req := range cases {
		if _, err := svc.CreateUser(context.Background(), &req); apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}
