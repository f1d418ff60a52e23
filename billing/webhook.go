// Package billing adapts billing-provider webhooks into subscription
// records. The provider itself (checkout, payment, signature
// verification) is an external collaborator; this package only
// translates its subscription lifecycle events.
package billing

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/bossyapp/bossy/plan"
)

// SubscriptionWriter persists subscription records.
type SubscriptionWriter interface {
	UpsertSubscription(sub plan.Subscription) error
}

// Handler processes billing webhook deliveries.
type Handler struct {
	subscriptions SubscriptionWriter
	logger        *log.Logger
}

// NewHandler creates a webhook handler.
func NewHandler(subscriptions SubscriptionWriter, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{subscriptions: subscriptions, logger: logger}
}

// Event types the handler acts on. Anything else is acknowledged and
// ignored so the provider doesn't retry deliveries we don't care about.
const (
	EventSubscriptionCreated = "subscription.created"
	EventSubscriptionUpdated = "subscription.updated"
	EventSubscriptionDeleted = "subscription.deleted"
)

type webhookEvent struct {
	Type string              `json:"type"`
	Data webhookSubscription `json:"data"`
}

type webhookSubscription struct {
	UserID         string `json:"user_id"`
	Plan           string `json:"plan"`
	Status         string `json:"status"`
	Interval       string `json:"interval"`
	CustomerID     string `json:"customer_id"`
	SubscriptionID string `json:"subscription_id"`
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("undecodable webhook payload", "err", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		h.apply(w, event, plan.SubscriptionStatus(event.Data.Status))
	case EventSubscriptionDeleted:
		h.apply(w, event, plan.SubscriptionCanceled)
	default:
		h.logger.Debug("ignoring webhook event", "type", event.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handler) apply(w http.ResponseWriter, event webhookEvent, status plan.SubscriptionStatus) {
	if event.Data.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	sub := plan.Subscription{
		UserID:                 event.Data.UserID,
		Plan:                   plan.Name(event.Data.Plan),
		Status:                 status,
		Interval:               plan.BillingInterval(event.Data.Interval),
		ProviderCustomerID:     event.Data.CustomerID,
		ProviderSubscriptionID: event.Data.SubscriptionID,
	}
	if !sub.Plan.IsValid() {
		sub.Plan = plan.NameFree
	}

	if err := h.subscriptions.UpsertSubscription(sub); err != nil {
		h.logger.Error("apply webhook event", "type", event.Type, "user_id", event.Data.UserID, "err", err)
		http.Error(w, "subscription write failed", http.StatusInternalServerError)
		return
	}
	h.logger.Info("subscription updated", "type", event.Type, "user_id", event.Data.UserID, "plan", sub.Plan, "status", sub.Status)
	w.WriteHeader(http.StatusOK)
}
