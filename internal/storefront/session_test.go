package storefront_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storefront"
	storefrontmocks "storefront_back_end/internal/storefront/mocks"
)

func TestSession_UserFetchedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	api.EXPECT().CurrentUser(gomock.Any()).DoAndReturn(func(context.Context) (models.User, error) {
		time.Sleep(10 * time.Millisecond)
		return models.User{ID: "u1", Name: "Asha Rao", Phone: "9876543210", Address: "12 MG Road"}, nil
	}).Times(1)
	session := storefront.NewSession(api)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := session.User(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "u1", u.ID)
		}()
	}
	wg.Wait()

	prefill, err := session.DeliveryPrefill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryInfo{FullName: "Asha Rao", Address: "12 MG Road", Phone: "9876543210"}, prefill)
}

func TestSession_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	gomock.InOrder(
		api.EXPECT().CurrentUser(gomock.Any()).Return(models.User{ID: "u1", Name: "Avant"}, nil),
		api.EXPECT().CurrentUser(gomock.Any()).Return(models.User{ID: "u1", Name: "Après"}, nil),
	)
	session := storefront.NewSession(api)

	u, err := session.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Avant", u.Name)

	session.Invalidate()
	u, err = session.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Après", u.Name)
}

func TestSession_CallerCancelDoesNotAbortSharedFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().CurrentUser(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.User, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return models.User{}, err
		}
		return models.User{ID: "u1"}, nil
	}).Times(1)
	session := storefront.NewSession(api)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := session.User(ctx)
		first <- err
	}()
	<-started

	second := make(chan models.User, 1)
	go func() {
		u, err := session.User(context.Background())
		assert.NoError(t, err)
		second <- u
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	select {
	case u := <-second:
		assert.Equal(t, "u1", u.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("second appelant bloqué")
	}
}
