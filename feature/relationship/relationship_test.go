package relationship

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

func TestRepository_FromUserAndTarget_NotFoundIsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `user_relationships`").
		WithArgs(int(TypeFriend), 1, 2, false, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rel, err := repo.FromUserAndTarget(context.Background(), TypeFriend, 1, 2)
	assert.NoError(t, err)
	assert.Nil(t, rel)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("INSERT INTO `user_relationships`").
		WillReturnResult(sqlmock.NewResult(5, 1))

	rel, err := repo.Create(context.Background(), &Relationship{
		Type:         TypeBlocked,
		UserID:       1,
		TargetUserID: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, rel.ID)
	assert.False(t, rel.PostTS.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AllFromUserID_FiltersByType(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `user_relationships` WHERE relationship_type = \\? AND user_id = \\? AND deleted = \\?").
		WithArgs(int(TypeFriend), 1, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "relationship_type", "user_id", "target_user_id"}).
			AddRow(1, int(TypeFriend), 1, 2).
			AddRow(2, int(TypeFriend), 1, 3))

	rels, err := repo.AllFromUserID(context.Background(), TypeFriend, 1)
	assert.NoError(t, err)
	assert.Len(t, rels, 2)
	assert.Equal(t, 2, rels[0].TargetUserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SoftDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE `user_relationships` SET `deleted`=\\?").
		WithArgs(true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	hit, err := repo.SoftDelete(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, hit)

	assert.NoError(t, mock.ExpectationsWereMet())
}
