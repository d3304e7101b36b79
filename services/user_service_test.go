package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.OrderForm{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func strptr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	view, err := svc.Register(&models.User{
		Username: "alice",
		Password: "secret1",
		Email:    strptr("alice@example.com"),
		Enabled:  true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, models.RoleUser, view.Role, "role should default to USER")
	assert.True(t, view.Enabled)

	// The stored password must be a hash, never the plaintext.
	var stored models.User
	assert.NoError(t, db.First(&stored, view.ID).Error)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, CheckPassword(stored.Password, "secret1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)

	_, err = svc.Register(&models.User{Username: "alice", Password: "secret2", Enabled: true})
	assert.Error(t, err)
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, KindBusiness, se.Kind)
	assert.Equal(t, "username already exists", se.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Email: strptr("a@example.com"), Enabled: true})
	assert.NoError(t, err)

	_, err = svc.Register(&models.User{Username: "bob", Password: "secret2", Email: strptr("a@example.com"), Enabled: true})
	assert.Error(t, err)
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, "email already exists", se.Message)
}

func TestRegisterWithoutEmailSkipsEmailCheck(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)
	_, err = svc.Register(&models.User{Username: "bob", Password: "secret2", Enabled: true})
	assert.NoError(t, err, "multiple users without email should be allowed")
}

func TestGetAndListUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)

	got, err := svc.Get(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Get(9999)
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotFound, se.Kind)

	_, err = svc.Register(&models.User{Username: "bob", Password: "secret2", Enabled: true})
	assert.NoError(t, err)

	all, err := svc.List()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Register(&models.User{
		Username: "alice",
		Password: "secret1",
		Email:    strptr("alice@example.com"),
		Phone:    strptr("555-1234"),
		Enabled:  true,
	})
	assert.NoError(t, err)

	updated, err := svc.Update(created.ID, UserPatch{Phone: strptr("555-9999")})
	assert.NoError(t, err)
	assert.Equal(t, "555-9999", *updated.Phone)

	// Everything else is untouched.
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", *updated.Email)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.True(t, updated.Enabled)
}

func TestUpdateUsernameUniquenessExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	alice, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)
	_, err = svc.Register(&models.User{Username: "bob", Password: "secret2", Enabled: true})
	assert.NoError(t, err)

	// Re-submitting the own username is a no-op, not a conflict.
	_, err = svc.Update(alice.ID, UserPatch{Username: strptr("alice")})
	assert.NoError(t, err)

	// Taking another user's name is rejected.
	_, err = svc.Update(alice.ID, UserPatch{Username: strptr("bob")})
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, "username already exists", se.Message)
}

func TestUpdateRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)

	_, err = svc.Update(created.ID, UserPatch{Password: strptr("newsecret")})
	assert.NoError(t, err)

	var stored models.User
	assert.NoError(t, db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "newsecret", stored.Password)
	assert.True(t, CheckPassword(stored.Password, "newsecret"))
	assert.False(t, CheckPassword(stored.Password, "secret1"))
}

func TestUpdateEmptyPasswordLeavesHash(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)

	_, err = svc.Update(created.ID, UserPatch{Password: strptr("")})
	assert.NoError(t, err)

	var stored models.User
	assert.NoError(t, db.First(&stored, created.ID).Error)
	assert.True(t, CheckPassword(stored.Password, "secret1"))
}

func TestUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Update(9999, UserPatch{Phone: strptr("555")})
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Register(&models.User{Username: "alice", Password: "secret1", Enabled: true})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(created.ID))

	_, err = svc.Get(created.ID)
	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotFound, se.Kind)

	err = svc.Delete(created.ID)
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotFound, se.Kind)
}
