package user

import (
	"context"
	"testing"

	"gdps-backend/core/cache"
	"gdps-backend/feature/comment"
	"gdps-backend/feature/relationship"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock, cache.Cache[User]) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db, &fakeIndex{}, zap.NewNop())
	userCache := cache.NewLRU[User](64, User.Clone)
	svc := NewService(repo, userCache,
		comment.NewRepository(db), relationship.NewRepository(db), nil, zap.NewNop())
	return svc, mock, userCache
}

func TestService_FromID_PopulatesCache(t *testing.T) {
	svc, mock, _ := setupService(t)
	ctx := context.Background()

	// Only one SELECT; the second read is a cache hit.
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "Michigun"))

	first, err := svc.FromID(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Michigun", first.Username)

	second, err := svc.FromID(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Michigun", second.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsDuplicateUsername(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "RobTop"))

	_, err := svc.Create(context.Background(), &User{Username: "RobTop"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_EvictsFromCache(t *testing.T) {
	svc, mock, userCache := setupService(t)
	ctx := context.Background()

	assert.NoError(t, userCache.Set(ctx, 2, User{ID: 2, Username: "gone"}))

	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "deleted"}).AddRow(2, true))

	deleted, err := svc.Delete(ctx, 2)
	assert.NoError(t, err)
	assert.True(t, deleted.Deleted)

	_, ok, _ := userCache.Get(ctx, 2)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_PostComment_AbsentUserIsNil(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posted, err := svc.PostComment(context.Background(), 404, "hello?")
	assert.NoError(t, err)
	assert.Nil(t, posted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_PostComment(t *testing.T) {
	svc, mock, userCache := setupService(t)
	ctx := context.Background()

	assert.NoError(t, userCache.Set(ctx, 2, User{ID: 2}))

	mock.ExpectExec("INSERT INTO `user_comments`").
		WillReturnResult(sqlmock.NewResult(10, 1))

	posted, err := svc.PostComment(ctx, 2, "gg")
	assert.NoError(t, err)
	assert.Equal(t, 10, posted.ID)
	assert.Equal(t, "gg", posted.Content)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Relate_RejectsDuplicateEdge(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery("SELECT \\* FROM `user_relationships`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "relationship_type", "user_id", "target_user_id"}).
			AddRow(1, int(relationship.TypeFriend), 1, 2))

	_, err := svc.Relate(context.Background(), relationship.TypeFriend, 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyRelated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Unrelate_MissingEdge(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery("SELECT \\* FROM `user_relationships`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	removed, err := svc.Unrelate(context.Background(), relationship.TypeFriend, 1, 2)
	assert.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Unrelate(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery("SELECT \\* FROM `user_relationships`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "relationship_type", "user_id", "target_user_id"}).
			AddRow(5, int(relationship.TypeBlocked), 1, 2))
	mock.ExpectExec("UPDATE `user_relationships`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := svc.Unrelate(context.Background(), relationship.TypeBlocked, 1, 2)
	assert.NoError(t, err)
	assert.True(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
