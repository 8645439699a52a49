package comment

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRepository_Create_DefaultsTimestamp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("INSERT INTO `user_comments`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), &Comment{UserID: 7, Content: "nice profile"})
	assert.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.PostTS.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FromID_NotFoundIsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `user_comments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	comment, err := repo.FromID(context.Background(), 404, false)
	assert.NoError(t, err)
	assert.Nil(t, comment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FromUserID_ExcludesDeleted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `user_comments` WHERE user_id = \\? AND deleted = \\?").
		WithArgs(7, false, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).
			AddRow(2, 7, "newer").
			AddRow(1, 7, "older"))

	comments, err := repo.FromUserID(context.Background(), 7, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "newer", comments[0].Content)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SoftDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE `user_comments` SET `deleted`=\\? WHERE id = \\?").
		WithArgs(true, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	hit, err := repo.SoftDelete(context.Background(), 3)
	assert.NoError(t, err)
	assert.True(t, hit)

	mock.ExpectExec("UPDATE `user_comments`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	hit, err = repo.SoftDelete(context.Background(), 404)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, mock.ExpectationsWereMet())
}
