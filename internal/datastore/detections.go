// detections.go: disease detection persistence operations
package datastore

import (
	"fmt"

	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
)

// SaveDetection inserts a new disease detection record.
func (ds *DataStore) SaveDetection(detection *DiseaseDetection) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	if detection.DetectedAt.IsZero() {
		detection.DetectedAt = ds.Now()
	}
	if err := ds.DB.Create(detection).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save_detection").
			Context("user_id", detection.UserID).
			Build()
	}
	return nil
}

// GetDetection retrieves a detection by primary key with its owner preloaded.
func (ds *DataStore) GetDetection(id uint) (DiseaseDetection, error) {
	var detection DiseaseDetection
	if err := ds.DB.Preload("User").First(&detection, id).Error; err != nil {
		return DiseaseDetection{}, fmt.Errorf("getting detection %d: %w", id, err)
	}
	return detection, nil
}

// UserDetections returns all detections owned by a user, newest first.
func (ds *DataStore) UserDetections(userID uint) ([]DiseaseDetection, error) {
	var detections []DiseaseDetection
	err := ds.DB.Where("user_id = ?", userID).Order("detected_at DESC").Find(&detections).Error
	return detections, err
}

// AllDetections returns every detection in the system, newest first.
func (ds *DataStore) AllDetections() ([]DiseaseDetection, error) {
	var detections []DiseaseDetection
	err := ds.DB.Preload("User").Order("detected_at DESC").Find(&detections).Error
	return detections, err
}

// RecentDetections returns the newest detections for a user. A userID of
// zero returns the newest detections across all users.
func (ds *DataStore) RecentDetections(userID uint, limit int) ([]DiseaseDetection, error) {
	var detections []DiseaseDetection
	query := ds.DB.Order("detected_at DESC").Limit(limit)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&detections).Error
	return detections, err
}

// DeleteDetection removes one detection row.
func (ds *DataStore) DeleteDetection(id uint) error {
	return ds.DB.Delete(&DiseaseDetection{}, id).Error
}

// DeleteUserDetections removes all detections owned by a user and returns the
// image paths of the removed rows so the caller can delete the files.
func (ds *DataStore) DeleteUserDetections(userID uint) ([]string, error) {
	var paths []string
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DiseaseDetection{}).
			Where("user_id = ?", userID).
			Pluck("image_path", &paths).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&DiseaseDetection{}).Error
	})
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "delete_user_detections").
			Context("user_id", userID).
			Build()
	}
	return paths, nil
}

// CountDetections returns the total number of detections in the system.
func (ds *DataStore) CountDetections() (int64, error) {
	var count int64
	err := ds.DB.Model(&DiseaseDetection{}).Count(&count).Error
	return count, err
}

// CountUserDetectionsByDisease counts a user's detections for one disease
// name. An empty diseaseName counts all of the user's detections.
func (ds *DataStore) CountUserDetectionsByDisease(userID uint, diseaseName string) (int64, error) {
	var count int64
	query := ds.DB.Model(&DiseaseDetection{}).Where("user_id = ?", userID)
	if diseaseName != "" {
		query = query.Where("disease_name = ?", diseaseName)
	}
	err := query.Count(&count).Error
	return count, err
}
