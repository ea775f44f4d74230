package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"user-profile-api/internal/application/ports"
	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/infrastructure/mq"
	"user-profile-api/internal/interface/api/rest/dto/user"
)

var tracer = otel.Tracer("user-profile-api/internal/application/services")

// UserService holds no state between calls; every operation reads the store, computes a
// new snapshot and writes it back. The email pre-check in CreateUser is not atomic with
// the insert, so a concurrent create can still hit the store's unique constraint; that
// failure is reported as the same duplicate-email error.
type UserService struct {
	userRepository domain.Repository
	mq             ports.EventPublisher
	mCounter       *prometheus.CounterVec
	minAge         int
	now            func() time.Time
}

func NewUserService(
	userRepository domain.Repository,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	minAge int,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
		minAge:         minAge,
		now:            utcNow,
	}
}

func (us *UserService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	ctx, span := startSpan(ctx, "user.create")
	defer span.End()

	if berr := us.checkEligibility(u.BirthDate); berr != nil {
		return nil, us.reject(span, berr)
	}

	exists, err := us.userRepository.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return nil, us.fail(span, fmt.Errorf("check email existence: %w", err))
	}
	if exists {
		return nil, us.reject(span, domain.ErrDuplicateEmail)
	}

	uRet, err := us.userRepository.CreateUser(ctx, u.WithID(uuid.Nil))
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, us.reject(span, domain.ErrDuplicateEmail)
		}
		return nil, us.fail(span, fmt.Errorf("create user: %w", err))
	}

	span.SetAttributes(attribute.String("user.id", uRet.UUID.String()))
	us.publish(ctx, http.MethodPost, *uRet)
	us.count("user_created_total")

	return uRet, nil
}

// ReplaceUser overwrites every field of the stored record. Email uniqueness is not
// pre-checked here; only the store constraint guards a changed email.
func (us *UserService) ReplaceUser(ctx context.Context, id domain.UUID, u domain.User) (*domain.User, error) {
	ctx, span := startSpan(ctx, "user.replace", attribute.String("user.id", id.String()))
	defer span.End()

	current, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, us.fail(span, fmt.Errorf("fetch user %s: %w", id, err))
	}
	if current == nil {
		return nil, us.reject(span, domain.ErrNotFound)
	}

	if berr := us.checkEligibility(u.BirthDate); berr != nil {
		return nil, us.reject(span, berr)
	}

	return us.save(ctx, span, http.MethodPut, current.Replace(u), "user_replaced_total")
}

// PatchUser merges the supplied fields into the stored record. As with ReplaceUser,
// a changed email is not pre-checked for uniqueness.
func (us *UserService) PatchUser(ctx context.Context, id domain.UUID, p domain.Patch) (*domain.User, error) {
	ctx, span := startSpan(ctx, "user.patch", attribute.String("user.id", id.String()))
	defer span.End()

	current, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, us.fail(span, fmt.Errorf("fetch user %s: %w", id, err))
	}
	if current == nil {
		return nil, us.reject(span, domain.ErrNotFound)
	}

	if birthDate, ok := p.BirthDate.Get(); ok {
		if berr := us.checkEligibility(birthDate); berr != nil {
			return nil, us.reject(span, berr)
		}
	}

	return us.save(ctx, span, http.MethodPatch, current.Apply(p), "user_patched_total")
}

func (us *UserService) SearchByBirthDate(ctx context.Context, from, to time.Time) (domain.Users, error) {
	ctx, span := startSpan(ctx, "user.search",
		attribute.String("range.from", from.Format(time.DateOnly)),
		attribute.String("range.to", to.Format(time.DateOnly)),
	)
	defer span.End()

	from, to = domain.Date(from), domain.Date(to)
	if from.After(to) {
		return nil, us.reject(span, domain.ErrRangeInverted)
	}

	users, err := us.userRepository.FetchUsersByBirthDate(ctx, from, to)
	if err != nil {
		return nil, us.fail(span, fmt.Errorf("search users by birth date: %w", err))
	}
	if users == nil {
		users = domain.Users{}
	}

	span.SetAttributes(attribute.Int("users.found", len(users)))

	return users, nil
}

// DeleteUser always succeeds for an absent id.
func (us *UserService) DeleteUser(ctx context.Context, id domain.UUID) error {
	ctx, span := startSpan(ctx, "user.delete", attribute.String("user.id", id.String()))
	defer span.End()

	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return us.fail(span, fmt.Errorf("delete user %s: %w", id, err))
	}

	span.SetAttributes(attribute.Bool("user.deleted", u != nil))
	if u != nil {
		us.publish(ctx, http.MethodDelete, *u)
		us.count("user_deleted_total")
	}

	return nil
}

func (us *UserService) save(
	ctx context.Context,
	span trace.Span,
	method string,
	next domain.User,
	counter string,
) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, next)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, us.reject(span, domain.ErrDuplicateEmail)
		}
		return nil, us.fail(span, fmt.Errorf("update user %s: %w", next.UUID, err))
	}
	// deleted between the lookup and the write
	if uRet == nil {
		return nil, us.reject(span, domain.ErrNotFound)
	}

	us.publish(ctx, method, *uRet)
	us.count(counter)

	return uRet, nil
}

func utcNow() time.Time { return time.Now().UTC() }

func (us *UserService) checkEligibility(birthDate time.Time) *domain.BusinessError {
	if !domain.IsEligible(birthDate, us.now(), us.minAge) {
		return domain.Underage(us.minAge)
	}
	return nil
}

func (us *UserService) publish(ctx context.Context, method string, u domain.User) {
	if us.mq == nil {
		return
	}
	us.mq.Publish(ctx, mq.NewEvent(method, user.ToResponseUser(u)))
}

func (us *UserService) count(result string) {
	if us.mCounter == nil {
		return
	}
	us.mCounter.WithLabelValues(result).Inc()
}

func (us *UserService) reject(span trace.Span, err *domain.BusinessError) error {
	span.SetAttributes(attribute.String("user.rejected", err.Kind.String()))
	us.count("user_rejected_" + err.Kind.String() + "_total")
	return err
}

func (us *UserService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("layer", "logic"))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
