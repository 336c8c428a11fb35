package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabpaderog/maxicoffee-admin/internal/datasource"
	"github.com/gabpaderog/maxicoffee-admin/internal/mirror"
	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
)

func fulfillmentWith(t *testing.T, handler http.Handler) *Fulfillment {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rc := remote.NewClient(srv.URL, "", 2*time.Second)
	return New(rc, datasource.Orders(rc, mirror.NewMemoryStore()))
}

func downFulfillment(t *testing.T) *Fulfillment {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	rc := remote.NewClient(url, "", time.Second)
	return New(rc, datasource.Orders(rc, mirror.NewMemoryStore()))
}

func acceptingUpstream(t *testing.T, wantPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"ok": true}})
	})
}

func TestMarkReadyFromPending(t *testing.T) {
	f := fulfillmentWith(t, acceptingUpstream(t, "/orders/7/status"))

	order := models.Order{ID: 7, Status: models.StatusPending}
	updated, err := f.MarkReady(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, models.StatusReady, updated.Status)
}

func TestMarkReadyRejectsNonPending(t *testing.T) {
	f := downFulfillment(t)

	_, err := f.MarkReady(context.Background(), models.Order{ID: 7, Status: models.StatusReady})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVerifyDiscountAppliesPercentageWithoutStatusChange(t *testing.T) {
	f := fulfillmentWith(t, acceptingUpstream(t, "/orders/3/apply-discount"))

	order := models.Order{
		ID:              3,
		Status:          models.StatusReady,
		DiscountDetails: &models.DiscountDetails{Name: "Senior Citizen", Percentage: 0.1},
		DiscountApplied: false,
		Total:           100,
	}
	updated, err := f.VerifyDiscount(context.Background(), order)
	require.NoError(t, err)

	assert.True(t, updated.DiscountApplied)
	assert.InDelta(t, 90.0, updated.Total, 1e-9)
	assert.Equal(t, models.StatusReady, updated.Status, "verification must not advance the status")
}

func TestVerifyDiscountRejectedWithoutDiscount(t *testing.T) {
	f := downFulfillment(t)

	_, err := f.VerifyDiscount(context.Background(), models.Order{ID: 3, Status: models.StatusReady})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVerifyDiscountRejectedWhenAlreadyApplied(t *testing.T) {
	f := downFulfillment(t)

	order := models.Order{
		ID:              3,
		Status:          models.StatusReady,
		DiscountDetails: &models.DiscountDetails{Percentage: 0.1},
		DiscountApplied: true,
	}
	_, err := f.VerifyDiscount(context.Background(), order)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteWithoutDiscount(t *testing.T) {
	f := fulfillmentWith(t, acceptingUpstream(t, "/orders/5/status"))

	order := models.Order{ID: 5, Status: models.StatusReady}
	updated, err := f.Complete(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestCompleteWithVerifiedDiscount(t *testing.T) {
	f := fulfillmentWith(t, acceptingUpstream(t, "/orders/5/status"))

	order := models.Order{
		ID:              5,
		Status:          models.StatusReady,
		DiscountDetails: &models.DiscountDetails{Percentage: 0.1},
		DiscountApplied: true,
	}
	updated, err := f.Complete(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestCompleteGatedOnUnverifiedDiscount(t *testing.T) {
	f := downFulfillment(t)

	order := models.Order{
		ID:              5,
		Status:          models.StatusReady,
		DiscountDetails: &models.DiscountDetails{Percentage: 0.1},
	}
	_, err := f.Complete(context.Background(), order)

	assert.ErrorIs(t, err, ErrVerificationRequired)
}

func TestCompleteRejectsPendingAndCompleted(t *testing.T) {
	f := downFulfillment(t)

	_, err := f.Complete(context.Background(), models.Order{ID: 5, Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.Complete(context.Background(), models.Order{ID: 5, Status: models.StatusCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionFailsWithoutLocalMutationWhenUpstreamDown(t *testing.T) {
	f := downFulfillment(t)

	order := models.Order{ID: 7, Status: models.StatusPending, Total: 100}
	returned, err := f.MarkReady(context.Background(), order)

	require.Error(t, err)
	var remoteErr *remote.Error
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, models.StatusPending, returned.Status, "no optimistic mutation on workflow writes")
	assert.Equal(t, 100.0, returned.Total)
}
