package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"gorm.io/gorm"
)

// Whitelisted sort columns for laptop listings. Anything else falls back
// to id/asc instead of failing.
var laptopSortColumns = map[string]bool{
	"id":            true,
	"laptop_name":   true,
	"cpu":           true,
	"ram":           true,
	"storage":       true,
	"os":            true,
	"price_bought":  true,
	"price_to_sell": true,
	"fees":          true,
	"last_edited":   true,
	"created_date":  true,
}

type LaptopGormRepository struct {
	db *gorm.DB
}

func NewLaptopGormRepository(db *gorm.DB) *LaptopGormRepository {
	return &LaptopGormRepository{db: db}
}

func (r *LaptopGormRepository) List(ctx context.Context, q repo.LaptopListQuery) ([]model.Laptop, error) {
	var laptops []model.Laptop

	tx := r.db.WithContext(ctx).Model(&model.Laptop{}).Where("sold = ?", q.Sold)

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(laptop_name) LIKE ? OR LOWER(cpu) LIKE ? OR LOWER(ram) LIKE ? OR LOWER(storage) LIKE ? OR LOWER(os) LIKE ?",
			like, like, like, like, like,
		)
	}

	sortBy := q.SortBy
	if !laptopSortColumns[sortBy] {
		sortBy = "id"
	}
	order := strings.ToLower(q.Order)
	if order != "asc" && order != "desc" {
		order = "asc"
	}
	tx = tx.Order(sortBy + " " + order)

	if err := tx.Find(&laptops).Error; err != nil {
		return nil, err
	}
	return laptops, nil
}

func (r *LaptopGormRepository) ListAll(ctx context.Context) ([]model.Laptop, error) {
	var laptops []model.Laptop
	if err := r.db.WithContext(ctx).Order("id asc").Find(&laptops).Error; err != nil {
		return nil, err
	}
	return laptops, nil
}

func (r *LaptopGormRepository) FindByID(ctx context.Context, id int64) (model.Laptop, error) {
	var l model.Laptop
	err := r.db.WithContext(ctx).First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Laptop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Laptop{}, err
	}
	return l, nil
}

func (r *LaptopGormRepository) Create(ctx context.Context, l model.Laptop) (model.Laptop, error) {
	if err := r.db.WithContext(ctx).Create(&l).Error; err != nil {
		return model.Laptop{}, err
	}
	return l, nil
}

// Update is a full replace of the mutable fields plus a last_edited bump.
func (r *LaptopGormRepository) Update(ctx context.Context, l model.Laptop) error {
	res := r.db.WithContext(ctx).Model(&model.Laptop{}).Where("id = ?", l.ID).Updates(map[string]interface{}{
		"laptop_name":    l.LaptopName,
		"cpu":            l.CPU,
		"ram":            l.RAM,
		"storage":        l.Storage,
		"os":             l.OS,
		"notes":          l.Notes,
		"price_bought":   l.PriceBought,
		"price_to_sell":  l.PriceToSell,
		"fees":           l.Fees,
		"warranty_start": l.WarrantyStart,
		"warranty_days":  l.WarrantyDays,
		"sold":           l.Sold,
		"date_sold":      l.DateSold,
		"last_edited":    time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LaptopGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Laptop{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LaptopGormRepository) SetSold(ctx context.Context, id int64, sold bool, soldAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Laptop{}).Where("id = ?", id).Updates(map[string]interface{}{
		"sold":        sold,
		"date_sold":   soldAt,
		"last_edited": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LaptopGormRepository) CountBySerialPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Laptop{}).
		Where("serial_number LIKE ?", prefix+"%").
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *LaptopGormRepository) SerialExists(ctx context.Context, serial string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Laptop{}).
		Where("serial_number = ?", serial).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LaptopGormRepository) Stats(ctx context.Context) (repo.LaptopStats, error) {
	var st repo.LaptopStats

	if err := r.db.WithContext(ctx).Model(&model.Laptop{}).Count(&st.Total).Error; err != nil {
		return repo.LaptopStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Laptop{}).Where("sold = ?", true).Count(&st.Sold).Error; err != nil {
		return repo.LaptopStats{}, err
	}
	st.Available = st.Total - st.Sold

	var profit *float64
	err := r.db.WithContext(ctx).Model(&model.Laptop{}).
		Where("sold = ?", true).
		Select("SUM(price_to_sell - (price_bought + fees))").
		Scan(&profit).Error
	if err != nil {
		return repo.LaptopStats{}, err
	}
	if profit != nil {
		st.TotalProfit = *profit
	}
	return st, nil
}
