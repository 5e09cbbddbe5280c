// Subscription HTTP handlers.
//
// Endpoints:
//   - POST /subscriptions/c/{channelId}  (toggle)
//   - GET  /subscriptions/c/{channelId}  (subscriber list)
//   - GET  /subscriptions/u/{subscriberId} (channels the user follows)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/repo"
)

// SubscriptionService defines the subscription operations consumed by HTTP
// handlers.
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	Subscribers(ctx context.Context, channelID string) ([]repo.SubscriberView, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]repo.SubscribedChannelView, error)
}

// SubscriptionHandlers groups the subscription endpoints.
type SubscriptionHandlers struct {
	svc SubscriptionService
}

// NewSubscriptionHandlers constructs the subscription endpoint group.
func NewSubscriptionHandlers(svc SubscriptionService) *SubscriptionHandlers {
	return &SubscriptionHandlers{svc: svc}
}

// Toggle godoc
// @ID          toggleSubscription
// @Summary     Subscribe or unsubscribe from a channel
// @Description Toggles the viewer's subscription. Subscribing to your own channel is rejected.
// @Tags        Subscriptions
// @Produce     json
// @Param       channelId  path  string  true  "Channel (user) ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Self-subscription"
// @Failure     404  {object}  handlers.APIError "No such channel"
// @Router      /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandlers) Toggle(c *gin.Context) {
	subscribed, err := h.svc.Toggle(c.Request.Context(), userID(c), c.Param("channelId"))
	if err != nil {
		failErr(c, err)
		return
	}
	msg := "Channel unsubscribed"
	if subscribed {
		msg = "Channel subscribed"
	}
	ok(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, msg)
}

// Subscribers godoc
// @ID          listSubscribers
// @Summary     List a channel's subscribers
// @Tags        Subscriptions
// @Produce     json
// @Param       channelId  path  string  true  "Channel (user) ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such channel"
// @Router      /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandlers) Subscribers(c *gin.Context) {
	items, err := h.svc.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "Subscribers fetched successfully")
}

// SubscribedChannels godoc
// @ID          listSubscribedChannels
// @Summary     List channels a user is subscribed to
// @Description Each channel comes with its latest published video, when one exists.
// @Tags        Subscriptions
// @Produce     json
// @Param       subscriberId  path  string  true  "Subscriber (user) ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such user"
// @Router      /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandlers) SubscribedChannels(c *gin.Context) {
	items, err := h.svc.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "Subscribed channels fetched")
}
