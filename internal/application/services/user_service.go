package services

import (
	"context"
	"strconv"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/user"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/sirupsen/logrus"
)

func userKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }

// UserService serves user reads cache-first and populates the cache on
// creation so a fresh user is a hit immediately.
type UserService struct {
	store  ports.UserStore
	cache  ports.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

func NewUserService(store ports.UserStore, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) *UserService {
	return &UserService{store: store, cache: cache, ttl: ttl, logger: logger}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	if v, ok := cacheGet[user.User](s.cache, ctx, userKey(id)); ok {
		return v, nil
	}
	u, ok := s.store.Get(id)
	if !ok {
		return nil, apperror.NotFound("user not found with id %d", id)
	}
	cacheSetSilently(s.cache, ctx, userKey(id), u, s.ttl)
	return &u, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	u := user.User{Name: req.Name, Email: req.Email, Address: req.Address}
	id := s.store.Add(u)
	u.ID = id

	cacheSetSilently(s.cache, ctx, userKey(id), u, s.ttl)

	s.logger.WithField("user_id", id).Info("user created")
	return id, nil
}

var _ ports.UserService = (*UserService)(nil)
