// prices.go: market price persistence with one-canonical-row-per-day upsert
package datastore

import (
	"time"

	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
)

// Upsert actions returned by UpsertDailyPrice.
const (
	PriceActionCreated = "created"
	PriceActionUpdated = "updated"
)

// LatestPrice returns the newest stored price, or nil when the table is empty.
func (ds *DataStore) LatestPrice() (*MarketPrice, error) {
	var price MarketPrice
	err := ds.DB.Order("date DESC").First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// PricesSince returns all prices recorded at or after the given time,
// oldest first, for trend charts and forecasting.
func (ds *DataStore) PricesSince(since time.Time) ([]MarketPrice, error) {
	var prices []MarketPrice
	err := ds.DB.Where("date >= ?", since).Order("date ASC").Find(&prices).Error
	return prices, err
}

// UpsertDailyPrice writes a price record keeping at most one row per calendar
// day in the datastore's timezone. An existing same-day row is updated in
// place, otherwise a new row is created. The check and write run in one
// transaction so concurrent refreshes cannot create duplicate same-day rows.
func (ds *DataStore) UpsertDailyPrice(price *MarketPrice) (string, error) {
	if err := ds.checkConnection(); err != nil {
		return "", err
	}
	if price.Date.IsZero() {
		price.Date = ds.Now()
	}

	dayStart := ds.StartOfDay(price.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	action := PriceActionCreated
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var existing MarketPrice
		err := tx.Where("date >= ? AND date < ?", dayStart, dayEnd).
			Order("date DESC").
			First(&existing).Error
		switch {
		case err == nil:
			action = PriceActionUpdated
			existing.Source = price.Source
			existing.RedPrice = price.RedPrice
			existing.WhitePrice = price.WhitePrice
			existing.Grade = price.Grade
			existing.Date = price.Date
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(price).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "upsert_daily_price").
			Build()
	}
	return action, nil
}

// InsertPrice appends a price row without same-day deduplication. Used for
// seeding synthetic history and for manual admin entries.
func (ds *DataStore) InsertPrice(price *MarketPrice) error {
	if price.Date.IsZero() {
		price.Date = ds.Now()
	}
	return ds.DB.Create(price).Error
}

// CountPrices returns the total number of stored price rows.
func (ds *DataStore) CountPrices() (int64, error) {
	var count int64
	err := ds.DB.Model(&MarketPrice{}).Count(&count).Error
	return count, err
}
