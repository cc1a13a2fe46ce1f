package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	repo "github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// EventPublisher publishes JSON messages, e.g. *helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserService struct {
	Repo         repo.UserRepository
	Redis        *redis.Client
	CacheTTL     time.Duration
	ES           *elasticsearch.Client
	ESUsersIndex string
	Events       EventPublisher
	Logger       *logrus.Logger
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger, CacheTTL: 5 * time.Minute}
}

// WithCache enables the read-through user cache.
func (s *UserService) WithCache(rdb *redis.Client, ttl time.Duration) *UserService {
	s.Redis = rdb
	if ttl > 0 {
		s.CacheTTL = ttl
	}
	return s
}

// WithSearch enables indexing and search on Elasticsearch.
func (s *UserService) WithSearch(es *elasticsearch.Client, index string) *UserService {
	s.ES = es
	s.ESUsersIndex = index
	return s
}

// WithEvents enables user lifecycle events.
func (s *UserService) WithEvents(p EventPublisher) *UserService {
	s.Events = p
	return s
}

// UserInput carries the five mutable fields. Password must already be hashed.
type UserInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Address  string
}

func (in UserInput) complete() bool {
	return in.Name != "" && in.Phone != "" && in.Email != "" && in.Password != "" && in.Address != ""
}

func userCacheKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

// userGenKey counts writes to a user. Cache fills only land while it is unchanged.
func userGenKey(id int64) string {
	return "user:gen:" + strconv.FormatInt(id, 10)
}

// userGenTTL outlives any in-flight read by a wide margin.
const userGenTTL = 24 * time.Hour

func (s *UserService) List(ctx context.Context) ([]PublicUser, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", ErrInternal, err)
	}
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, toPublicUser(&users[i]))
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*PublicUser, error) {
	key := userCacheKey(id)
	var (
		gen       int64
		cacheable bool
	)
	if s.Redis != nil {
		var cached PublicUser
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached)
		switch {
		case err != nil:
			helpers.LogWarn(s.Logger, "user cache read failed", err, logrus.Fields{"key": key})
		case ok:
			return &cached, nil
		default:
			// The generation is read before the store so a write that lands
			// in between keeps the stale row out of the cache.
			gen, err = helpers.RedisGetInt64(ctx, s.Redis, userGenKey(id))
			if err != nil {
				helpers.LogWarn(s.Logger, "user cache generation read failed", err, logrus.Fields{"key": key})
			} else {
				cacheable = true
			}
		}
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user: %w", ErrInternal, err)
	}
	pu := toPublicUser(u)

	if cacheable {
		stored, err := helpers.RedisSetJSONIfUnchanged(ctx, s.Redis, userGenKey(id), gen, key, pu, s.CacheTTL)
		if err != nil {
			helpers.LogWarn(s.Logger, "user cache write failed", err, logrus.Fields{"key": key})
		} else if !stored && s.Logger != nil {
			s.Logger.WithField("key", key).Debug("user changed during read; cache fill skipped")
		}
	}
	return &pu, nil
}

// emailInUse reports whether another record already owns email.
func (s *UserService) emailInUse(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repo.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: lookup email: %w", ErrInternal, err)
	}
}

// Create stores a new user. The email uniqueness check is advisory; the store
// constraint settles concurrent creations and is reported as ErrEmailTaken too.
func (s *UserService) Create(ctx context.Context, in UserInput) (*UserPayload, error) {
	if !in.complete() {
		return nil, ErrValidation
	}
	email := entity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrValidation
	}

	taken, err := s.emailInUse(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	u := &entity.User{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    email,
		Password: in.Password,
		Address:  in.Address,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: create user: %w", ErrInternal, err)
	}

	userWrites.Add("created", 1)
	s.afterWrite(ctx, EventUserCreated, u)
	payload := toUserPayload(u)
	return &payload, nil
}

// Update replaces all five mutable fields of the user with id.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*UserPayload, error) {
	email := entity.NormalizeEmail(in.Email)
	in.Email = email
	if !in.complete() {
		return nil, ErrValidation
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user: %w", ErrInternal, err)
	}

	if email != strings.ToLower(u.Email) {
		taken, err := s.emailInUse(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	u.Name = strings.TrimSpace(in.Name)
	u.Phone = strings.TrimSpace(in.Phone)
	u.Email = email
	u.Password = strings.TrimSpace(in.Password)
	u.Address = strings.TrimSpace(in.Address)

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: update user: %w", ErrInternal, err)
	}

	userWrites.Add("updated", 1)
	s.afterWrite(ctx, EventUserUpdated, u)
	payload := toUserPayload(u)
	return &payload, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: delete user: %w", ErrInternal, err)
	}

	userWrites.Add("deleted", 1)
	s.afterWrite(ctx, EventUserDeleted, &entity.User{ID: id})
	return nil
}

// Ping checks the underlying store.
func (s *UserService) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

// afterWrite runs the best-effort side effects of a successful write. Failures
// are logged and never change the outcome of the write.
func (s *UserService) afterWrite(ctx context.Context, eventType string, u *entity.User) {
	if s.Redis != nil {
		if err := helpers.RedisBump(ctx, s.Redis, userGenKey(u.ID), userGenTTL); err != nil {
			helpers.LogWarn(s.Logger, "user cache generation bump failed", err, logrus.Fields{"user_id": u.ID})
		}
		if err := helpers.RedisDel(ctx, s.Redis, userCacheKey(u.ID)); err != nil {
			helpers.LogWarn(s.Logger, "user cache invalidation failed", err, logrus.Fields{"user_id": u.ID})
		}
	}

	if eventType == EventUserDeleted {
		_ = s.unindexUser(ctx, u.ID)
	} else {
		_ = s.indexUser(ctx, u)
	}

	s.publish(ctx, eventType, u)
}
