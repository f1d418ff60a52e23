package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bossyapp/bossy/plan"
)

// GetSubscription returns the user's subscription record, or (nil, nil)
// when none exists, which callers treat as the free plan.
func (s *Store) GetSubscription(userID string) (*plan.Subscription, error) {
	row := s.db.QueryRow(
		"SELECT user_id, plan, status, interval, provider_customer_id, provider_subscription_id, updated_at FROM subscriptions WHERE user_id = ?",
		userID,
	)

	var sub plan.Subscription
	var planName, status, interval, updatedAt string
	err := row.Scan(&sub.UserID, &planName, &status, &interval, &sub.ProviderCustomerID, &sub.ProviderSubscriptionID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription for %s: %w", userID, err)
	}

	sub.Plan = plan.Name(planName)
	sub.Status = plan.SubscriptionStatus(status)
	sub.Interval = plan.BillingInterval(interval)
	if sub.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse subscription updated at: %w", err)
	}
	return &sub, nil
}

// UpsertSubscription writes the user's subscription record. Only the
// billing webhook calls this.
func (s *Store) UpsertSubscription(sub plan.Subscription) error {
	_, err := s.db.Exec(
		`INSERT INTO subscriptions (user_id, plan, status, interval, provider_customer_id, provider_subscription_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   plan = excluded.plan,
		   status = excluded.status,
		   interval = excluded.interval,
		   provider_customer_id = excluded.provider_customer_id,
		   provider_subscription_id = excluded.provider_subscription_id,
		   updated_at = excluded.updated_at`,
		sub.UserID, string(sub.Plan), string(sub.Status), string(sub.Interval),
		sub.ProviderCustomerID, sub.ProviderSubscriptionID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert subscription for %s: %w", sub.UserID, err)
	}
	return nil
}
