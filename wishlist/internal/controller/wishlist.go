package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/token"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/wishlist/internal/otel"
	"github.com/Alturino/storefront/wishlist/internal/service"
	"github.com/Alturino/storefront/wishlist/pkg/request"
)

type WishlistController struct {
	service *service.WishlistService
}

func AttachWishlistController(router *mux.Router, service *service.WishlistService, secretKey string) {
	controller := WishlistController{service: service}

	wishlistRouter := router.PathPrefix("/wishlists").Subrouter()
	wishlistRouter.Use(middleware.Auth(secretKey), middleware.RequireRole(token.RoleCustomer))
	wishlistRouter.HandleFunc("", controller.FindWishlist).Methods(http.MethodGet)
	wishlistRouter.HandleFunc("/items", controller.InsertWishlistItem).Methods(http.MethodPost)
	wishlistRouter.HandleFunc("/items/{productId}", controller.RemoveWishlistItem).Methods(http.MethodDelete)
}

func (ctrl WishlistController) InsertWishlistItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController InsertWishlistItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController InsertWishlistItem").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.InsertWishlistItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError("body", err.Error()))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	if err := validate.Struct(reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "inserting wishlist item").Logger()
	logger.Info().Msg("inserting wishlist item")
	c = logger.WithContext(c)
	wishlist, err := ctrl.service.InsertWishlistItem(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting wishlist item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted wishlist item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "successfully inserted wishlist item",
		"data": map[string]interface{}{
			"wishlist": wishlist,
		},
	})
}

func (ctrl WishlistController) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController RemoveWishlistItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController RemoveWishlistItem").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed getting product id with error=%w", inErrors.NewValidationError("productId", "must be a valid uuid"))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "removing wishlist item").Logger()
	logger.Info().Msg("removing wishlist item")
	c = logger.WithContext(c)
	wishlist, err := ctrl.service.RemoveWishlistItem(c, userId, productId)
	if err != nil {
		err = fmt.Errorf("failed removing wishlist item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed wishlist item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "successfully removed wishlist item",
		"data": map[string]interface{}{
			"wishlist": wishlist,
		},
	})
}

func (ctrl WishlistController) FindWishlist(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController FindWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController FindWishlist").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	c = logger.WithContext(c)
	wishlist, err := ctrl.service.FindWishlistByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding wishlist with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found wishlist")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "wishlist found",
		"data": map[string]interface{}{
			"wishlist": wishlist,
		},
	})
}
