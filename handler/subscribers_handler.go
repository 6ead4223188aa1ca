package handler

import (
	"errors"
	"net/http"
	"strconv"

	"resourceshub/dto"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SubscribersHandler struct {
	service *usecase.SubscriberService
	log     zerolog.Logger
}

func NewSubscribersHandler(service *usecase.SubscriberService, log zerolog.Logger) *SubscribersHandler {
	return &SubscribersHandler{service: service, log: log.With().Str("handler", "subscribers").Logger()}
}

func (h *SubscribersHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, usecase.ErrEmailRequired.Error())
		return
	}

	sub, outcome, err := h.service.Subscribe(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, usecase.ErrEmailRequired),
		errors.Is(err, usecase.ErrInvalidEmail),
		errors.Is(err, usecase.ErrAlreadySubscribed):
		utils.BadRequest(c, err.Error())
		return
	case err != nil:
		respondError(c, h.log, err, "An error occurred while processing your subscription")
		return
	}

	if outcome == usecase.SubscriptionReactivated {
		utils.SuccessMessage(c, "Your subscription has been reactivated!", sub)
		return
	}
	utils.Created(c, "Thank you for subscribing to our newsletter!", sub)
}

func (h *SubscribersHandler) Unsubscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, usecase.ErrEmailRequired.Error())
		return
	}

	sub, err := h.service.Unsubscribe(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, usecase.ErrEmailRequired), errors.Is(err, usecase.ErrInvalidEmail):
		utils.BadRequest(c, err.Error())
		return
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Subscriber not found")
		return
	case err != nil:
		respondError(c, h.log, err, "An error occurred while unsubscribing")
		return
	}
	utils.SuccessMessage(c, "You have been unsubscribed", sub)
}

// List handles GET /api/subscribers?active=true|false.
func (h *SubscribersHandler) List(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BadRequest(c, "active must be true or false")
			return
		}
		active = &v
	}

	subs, err := h.service.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, h.log, err, "Error fetching subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(subs), "data": subs})
}
