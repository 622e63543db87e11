// users.go: user account persistence operations
package datastore

import (
	"fmt"

	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
)

// CreateUser inserts a new user record. Unique constraint violations on
// phone or email surface as database errors to be mapped by the caller.
func (ds *DataStore) CreateUser(user *User) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = ds.Now()
	}
	if err := ds.DB.Create(user).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "create_user").
			Build()
	}
	return nil
}

// GetUser retrieves a user by primary key.
func (ds *DataStore) GetUser(id uint) (User, error) {
	var user User
	if err := ds.DB.First(&user, id).Error; err != nil {
		return User{}, fmt.Errorf("getting user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByPhone retrieves a user by phone number, the login identifier.
func (ds *DataStore) GetUserByPhone(phone string) (User, error) {
	var user User
	if err := ds.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (ds *DataStore) GetUserByEmail(email string) (User, error) {
	var user User
	if err := ds.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateUser persists changes to an existing user record.
func (ds *DataStore) UpdateUser(user *User) error {
	if err := ds.DB.Save(user).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "update_user").
			Context("user_id", user.ID).
			Build()
	}
	return nil
}

// AllUsers returns every user, newest first.
func (ds *DataStore) AllUsers() ([]User, error) {
	var users []User
	err := ds.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}

// RecentUsers returns the most recently registered users.
func (ds *DataStore) RecentUsers(limit int) ([]User, error) {
	var users []User
	err := ds.DB.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

// CountUsers returns the total number of registered users.
func (ds *DataStore) CountUsers() (int64, error) {
	var count int64
	err := ds.DB.Model(&User{}).Count(&count).Error
	return count, err
}

// CountUsersByType returns the number of users of the given type.
func (ds *DataStore) CountUsersByType(userType string) (int64, error) {
	var count int64
	err := ds.DB.Model(&User{}).Where("user_type = ?", userType).Count(&count).Error
	return count, err
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
