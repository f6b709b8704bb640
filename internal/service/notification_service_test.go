package service

import (
	"Birrapp/internal/model"
	"Birrapp/internal/pkg/consts"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionRepo struct {
	subs map[string]*model.PushSubscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*model.PushSubscription)}
}

func (f *fakeSubscriptionRepo) Upsert(_ context.Context, sub *model.PushSubscription) error {
	f.subs[sub.UserID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.subs)), nil
}

func (f *fakeSubscriptionRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	_, ok := f.subs[userID]
	return ok, nil
}

func (f *fakeSubscriptionRepo) DeleteForUser(_ context.Context, userID string) error {
	delete(f.subs, userID)
	return nil
}

func TestSubscribeValidation(t *testing.T) {
	setupTestRedis(t)
	repo := newFakeSubscriptionRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	err := svc.Subscribe(ctx, "user-1", "", "p256dh", "auth")
	assert.ErrorIs(t, err, ErrParamInvalid)
	err = svc.Subscribe(ctx, "user-1", "https://push.example/ep", "", "auth")
	assert.ErrorIs(t, err, ErrParamInvalid)
	err = svc.Subscribe(ctx, "user-1", "https://push.example/ep", "p256dh", "")
	assert.ErrorIs(t, err, ErrParamInvalid)

	err = svc.Subscribe(ctx, "user-1", "https://push.example/ep", "p256dh", "auth")
	require.NoError(t, err)
	assert.Len(t, repo.subs, 1)
}

func TestSubscribeOverwritesExisting(t *testing.T) {
	setupTestRedis(t)
	repo := newFakeSubscriptionRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "user-1", "https://push.example/old", "k1", "a1"))
	require.NoError(t, svc.Subscribe(ctx, "user-1", "https://push.example/new", "k2", "a2"))

	require.Len(t, repo.subs, 1)
	assert.Equal(t, "https://push.example/new", repo.subs["user-1"].Endpoint)
}

func TestUnsubscribeRemovesSubscription(t *testing.T) {
	setupTestRedis(t)
	repo := newFakeSubscriptionRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "user-1", "https://push.example/1", "k", "a"))
	require.NoError(t, svc.Subscribe(ctx, "user-2", "https://push.example/2", "k", "a"))

	require.NoError(t, svc.Unsubscribe(ctx, "user-1"))
	assert.Len(t, repo.subs, 1)

	// 退订后不再计入广播接收人数
	sent, err := svc.Broadcast(ctx, "mensaje", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent)

	// 重复退订幂等
	require.NoError(t, svc.Unsubscribe(ctx, "user-1"))
}

func TestBroadcastPublishesPayload(t *testing.T) {
	mr := setupTestRedis(t)
	repo := newFakeSubscriptionRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "user-1", "https://push.example/1", "k", "a"))
	require.NoError(t, svc.Subscribe(ctx, "user-2", "https://push.example/2", "k", "a"))

	sub := mr.NewSubscriber()
	defer sub.Close()
	sub.Subscribe(consts.NotifyChannel)

	// 先起消费协程再发布，发布端会同步等待订阅者收取
	received := make(chan string, 1)
	go func() {
		msg := <-sub.Messages()
		received <- msg.Message
	}()

	sent, err := svc.Broadcast(ctx, "¡Ana se ha tomado una birra!", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent)

	var raw string
	select {
	case raw = <-received:
	case <-time.After(time.Second):
		t.Fatal("no message received on notify channel")
	}

	var payload NotifyPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "Birrapp 🍺", payload.Title)
	assert.Equal(t, "¡Ana se ha tomado una birra!", payload.Body)
	assert.Equal(t, "/icon-192.png", payload.Icon)
	assert.Equal(t, "user-1", payload.Exclude)
}

func TestBroadcastCountExcludesTrigger(t *testing.T) {
	setupTestRedis(t)
	repo := newFakeSubscriptionRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "user-1", "https://push.example/1", "k", "a"))
	require.NoError(t, svc.Subscribe(ctx, "user-2", "https://push.example/2", "k", "a"))

	// 触发者未订阅时不扣减
	sent, err := svc.Broadcast(ctx, "mensaje", "user-3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sent)

	// 无排除用户时计入所有订阅
	sent, err = svc.Broadcast(ctx, "mensaje", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sent)

	_, err = svc.Broadcast(ctx, "", "user-1")
	assert.ErrorIs(t, err, ErrParamInvalid)
}
