package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	rediscache "github.com/storefront-ai/assistant-service/internal/infrastructure/cache/redis"
	"github.com/storefront-ai/assistant-service/internal/mocks"
	"github.com/storefront-ai/assistant-service/internal/pkg/encryption"
	"github.com/storefront-ai/assistant-service/internal/services/session"
)

func setupService(t *testing.T) (*miniredis.Miniredis, session.Service) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	enc, err := encryption.NewAESGCM(key)
	require.NoError(t, err)

	svc, err := session.NewService(&session.Config{CacheClient: client, Encryptor: enc})
	require.NoError(t, err)
	return mr, svc
}

func TestNewService_NilConfig(t *testing.T) {
	svc, err := session.NewService(nil)

	assert.Nil(t, svc)
	assert.ErrorContains(t, err, "config is required")
}

func TestNewService_NilCacheClient(t *testing.T) {
	svc, err := session.NewService(&session.Config{})

	assert.Nil(t, svc)
	assert.ErrorContains(t, err, "cache client is required")
}

func TestGetSession_CreatesWhenEmpty(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)

	// Act
	sess, err := svc.GetSession(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Len(t, sess.ID, 36)
	assert.Empty(t, sess.Messages)
	assert.True(t, mr.Exists(svc.BuildCacheKey(sess.ID)))
	assert.Equal(t, time.Hour, mr.TTL(svc.BuildCacheKey(sess.ID)))
}

func TestGetSession_UnknownIDIsKept(t *testing.T) {
	_, svc := setupService(t)

	sess, err := svc.GetSession(context.Background(), "client-supplied-1")

	require.NoError(t, err)
	assert.Equal(t, "client-supplied-1", sess.ID)
}

func TestGetSession_InvalidID(t *testing.T) {
	_, svc := setupService(t)

	sess, err := svc.GetSession(context.Background(), "bad id with spaces")

	assert.Nil(t, sess)
	assert.ErrorIs(t, err, session.ErrInvalidSessionID)
}

func TestFindSession_DoesNotCreate(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()

	// Act
	missing, err := svc.FindSession(ctx, "never-seen")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.False(t, mr.Exists(svc.BuildCacheKey("never-seen")))

	require.NoError(t, svc.AddMessage(ctx, "seen", "hi", true))
	found, err := svc.FindSession(ctx, "seen")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Len(t, found.Messages, 1)

	_, err = svc.FindSession(ctx, "")
	assert.ErrorIs(t, err, session.ErrInvalidSessionID)
}

func TestAddMessage_PersistsEncrypted(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()

	// Act
	require.NoError(t, svc.AddMessage(ctx, "s1", "a very secret question", true))
	sess, err := svc.GetSession(ctx, "s1")

	// Assert
	require.NoError(t, err)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "a very secret question", sess.Messages[0].Content)
	assert.True(t, sess.Messages[0].IsUser)
	assert.NotEmpty(t, sess.Messages[0].ID)

	raw, err := mr.Get("session:s1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret")
}

func TestAppendExchange_EvictsOldest(t *testing.T) {
	// Arrange
	_, svc := setupService(t)
	ctx := context.Background()

	// Act
	for i := 0; i < 30; i++ {
		require.NoError(t, svc.AppendExchange(ctx, "s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
	}
	sess, err := svc.GetSession(ctx, "s1")

	// Assert
	require.NoError(t, err)
	require.Len(t, sess.Messages, models.MaxSessionMessages)
	assert.Equal(t, "q5", sess.Messages[0].Content)
	assert.Equal(t, "a29", sess.Messages[len(sess.Messages)-1].Content)
	assert.False(t, sess.Messages[len(sess.Messages)-1].IsUser)
}

func TestMutation_RefreshesTTL(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddMessage(ctx, "s1", "hi", true))
	mr.FastForward(40 * time.Minute)

	// Act
	require.NoError(t, svc.AddMessage(ctx, "s1", "still here", true))

	// Assert
	assert.Equal(t, time.Hour, mr.TTL("session:s1"))
	sess, err := svc.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 2)
}

func TestGetSession_ExpiredIsRecreated(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddMessage(ctx, "s1", "hi", true))
	mr.FastForward(61 * time.Minute)

	// Act
	sess, err := svc.GetSession(ctx, "s1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Empty(t, sess.Messages)
}

func TestContextAnchors(t *testing.T) {
	// Arrange
	_, svc := setupService(t)
	ctx := context.Background()
	refs := make([]models.ProductRef, 10)
	for i := range refs {
		refs[i] = models.ProductRef{ID: int64(i), Handle: fmt.Sprintf("p-%d", i)}
	}
	under := 150.0
	filter := &models.SearchFilter{Category: "dress", Theme: "wedding", PriceUnder: &under}

	// Act
	require.NoError(t, svc.SetLastRecommendations(ctx, "s1", refs))
	require.NoError(t, svc.SetLastSearchContext(ctx, "s1", filter))
	under = 999
	gotRefs, err := svc.GetLastRecommendations(ctx, "s1")
	require.NoError(t, err)
	gotFilter, err := svc.GetLastSearchContext(ctx, "s1")
	require.NoError(t, err)

	// Assert
	assert.Len(t, gotRefs, models.MaxRecommendations)
	assert.Equal(t, "p-0", gotRefs[0].Handle)
	require.NotNil(t, gotFilter)
	assert.Equal(t, "wedding", gotFilter.Theme)
	assert.Equal(t, 150.0, *gotFilter.PriceUnder)
}

func TestUpdateContextAndFailedAttempts(t *testing.T) {
	// Arrange
	_, svc := setupService(t)
	ctx := context.Background()

	// Act
	require.NoError(t, svc.UpdateContext(ctx, "s1", func(c *models.SessionContext) {
		c.CurrentIntent = models.IntentSizeHelp
		c.Language = "ar"
	}))
	first, err := svc.IncrementFailedAttempts(ctx, "s1")
	require.NoError(t, err)
	second, err := svc.IncrementFailedAttempts(ctx, "s1")
	require.NoError(t, err)
	sess, err := svc.GetSession(ctx, "s1")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 2, sess.Context.FailedAttempts)
	assert.Equal(t, models.IntentSizeHelp, sess.Context.CurrentIntent)
	assert.Equal(t, "ar", sess.Context.Language)
}

func TestExtractPreferences_PersistsAcrossTurns(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	_, err := svc.ExtractPreferences(ctx, "s1", "I love navy dresses")
	require.NoError(t, err)
	prefs, err := svc.ExtractPreferences(ctx, "s1", "something in red, my waist is 70 cm")
	require.NoError(t, err)

	assert.Equal(t, []string{"blue", "red"}, prefs.Colors)
	assert.Equal(t, models.Measurement{Value: 70, Unit: "cm"}, prefs.Measurements["waist"])
}

func TestGetSession_ReadFailureYieldsFreshSession(t *testing.T) {
	// Arrange
	cacheMock := new(mocks.MockCacheClient)
	cacheMock.On("Get", mock.Anything, "session:s1").Return(nil, errors.New("connection refused"))
	cacheMock.On("Set", mock.Anything, "session:s1", mock.Anything, session.DefaultSessionTTL).Return(nil)
	svc, err := session.NewService(&session.Config{CacheClient: cacheMock})
	require.NoError(t, err)

	// Act
	sess, err := svc.GetSession(context.Background(), "s1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	cacheMock.AssertExpectations(t)
}

func TestAddMessage_WriteFailureIsReturned(t *testing.T) {
	// Arrange
	cacheMock := new(mocks.MockCacheClient)
	cacheMock.On("Get", mock.Anything, "session:s1").Return(nil, nil)
	cacheMock.On("Set", mock.Anything, "session:s1", mock.Anything, mock.Anything).Return(errors.New("readonly"))
	svc, err := session.NewService(&session.Config{CacheClient: cacheMock})
	require.NoError(t, err)

	// Act
	err = svc.AddMessage(context.Background(), "s1", "hi", true)

	// Assert
	assert.ErrorContains(t, err, "failed to store session")
}

func TestGetSession_RotatedKeyDiscardsPayload(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddMessage(ctx, "s1", "hi", true))

	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	defer client.Close()
	otherKey, err := encryption.GenerateKey()
	require.NoError(t, err)
	enc, err := encryption.NewAESGCM(otherKey)
	require.NoError(t, err)
	rotated, err := session.NewService(&session.Config{CacheClient: client, Encryptor: enc})
	require.NoError(t, err)

	// Act
	sess, err := rotated.GetSession(ctx, "s1")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, sess.Messages)
}
