package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/token"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/user/internal/otel"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

const uniqueViolation = "23505"

type UserService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	config  config.Application
	now     func() time.Time
}

func NewUserService(pool *pgxpool.Pool, queries *repository.Queries, config config.Application) *UserService {
	return &UserService{pool: pool, queries: queries, config: config, now: time.Now}
}

func (svc *UserService) Login(c context.Context, param request.Login) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating login with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Trace().Msg("finding user by email")
	user, err := svc.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding user by email with error=%w", inErrors.ErrInvalidCredentials)
		} else {
			err = fmt.Errorf("failed finding user by email with error=%w", inErrors.NewDependencyError("database", err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	span.SetAttributes(attribute.String(log.KeyUserID, user.ID.String()))

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrInvalidCredentials)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Trace().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "creating login token").Logger()
	signed, err := token.NewToken(logger.WithContext(c), svc.config.SecretKey, user.ID, string(user.Role), svc.now())
	if err != nil {
		err = fmt.Errorf("failed creating login token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("user logged in")

	return response.Login{Token: signed}, nil
}

// Register creates the user, its vendor profile when the role is vendor, and its default address
// in one transaction.
func (svc *UserService) Register(c context.Context, param request.Register) (response.User, error) {
	c, span := otel.Tracer.Start(
		c,
		"UserService Register",
		trace.WithAttributes(attribute.String(log.KeyRole, param.Role)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Object(log.KeyRequestBody, param).
		Logger()

	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating register with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", errors.Join(err, inErrors.ErrFailedHashToken))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", inErrors.NewDependencyError("database", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Trace().Msg("inserting user")
	user, err := queries.InsertUser(c, repository.InsertUserParams{
		Username: param.Username,
		Email:    param.Email,
		Password: string(hashed),
		Role:     repository.UserRole(param.Role),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			err = fmt.Errorf("failed inserting user with error=%w", inErrors.NewConflictError("email is already registered"))
		} else {
			err = fmt.Errorf("failed inserting user with error=%w", inErrors.NewDependencyError("database", err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()

	if user.Role == repository.UserRoleVendor {
		logger = logger.With().Str(log.KeyProcess, "inserting vendor").Logger()
		vendor, err := queries.InsertVendor(c, repository.InsertVendorParams{UserID: user.ID, ShopName: param.ShopName})
		if err != nil {
			err = fmt.Errorf("failed inserting vendor with error=%w", inErrors.NewDependencyError("database", err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		logger = logger.With().Str(log.KeyVendorID, vendor.ID.String()).Logger()
	}

	logger = logger.With().Str(log.KeyProcess, "inserting default address").Logger()
	address, err := queries.InsertAddress(c, repository.InsertAddressParams{
		UserID:  user.ID,
		Address: param.Address,
		PinCode: param.PinCode,
		City:    param.City,
		State:   param.State,
		Country: param.Country,
		Type:    repository.AddressTypeDefault,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting default address with error=%w", inErrors.NewDependencyError("database", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger = logger.With().Str(log.KeyAddressID, address.ID.String()).Logger()

	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", inErrors.NewDependencyError("database", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("registered user")

	return user.Response(), nil
}

func (svc *UserService) FindUserById(c context.Context, userId uuid.UUID) (response.User, error) {
	c, span := otel.Tracer.Start(
		c,
		"UserService FindUserById",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, userId.String()).
		Logger()

	user, err := svc.queries.FindUserById(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding user with error=%w", inErrors.NewNotFoundError("user", userId.String()))
		} else {
			err = fmt.Errorf("failed finding user with error=%w", inErrors.NewDependencyError("database", err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("found user")

	return user.Response(), nil
}
