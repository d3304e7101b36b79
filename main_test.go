package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	config.SetDB(db)
	return db
}

func TestSeedAdminCreatesAccount(t *testing.T) {
	db := setupSeedDB(t)
	cfg := &config.Config{AdminUsername: "root", AdminPassword: "admin-pass"}

	assert.NoError(t, seedAdmin(cfg))

	var admin models.User
	assert.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.Enabled)
	assert.True(t, services.CheckPassword(admin.Password, "admin-pass"))
}

func TestSeedAdminSkipsExistingAccount(t *testing.T) {
	db := setupSeedDB(t)
	assert.NoError(t, db.Create(&models.User{Username: "root", Password: "existing-hash", Role: models.RoleAdmin, Enabled: true}).Error)

	cfg := &config.Config{AdminUsername: "root", AdminPassword: "new-pass"}
	assert.NoError(t, seedAdmin(cfg))

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Where("username = ?", "root").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var admin models.User
	assert.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	assert.Equal(t, "existing-hash", admin.Password, "seeding must not overwrite an existing account")
}

func TestSeedAdminNoopWithoutCredentials(t *testing.T) {
	db := setupSeedDB(t)

	assert.NoError(t, seedAdmin(&config.Config{}))

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
