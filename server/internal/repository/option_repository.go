package repository

import (
	"github.com/openquant/nsechain/internal/models"
	"gorm.io/gorm"
)

// OptionRepository reads normalized option rows written by the scraper.
type OptionRepository interface {
	GetLatestRows(limit int) ([]models.OptionRow, error)
	GetRowsCount(underlying string) (int64, error)
	GetLatestRowsGroupByUnderlying(underlyings []string, limit int) (map[string][]models.OptionRow, error)
	GetRowCountGroupByUnderlying() (map[string]int64, error)
	GetUnderlyings() ([]string, error)
}

type gormOptionRepository struct {
	db *gorm.DB
}

func NewGormOptionRepository(db *gorm.DB) OptionRepository {
	return &gormOptionRepository{db: db}
}

func (r *gormOptionRepository) GetLatestRows(limit int) ([]models.OptionRow, error) {
	var rows []models.OptionRow
	err := r.db.Order("timestamp desc").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormOptionRepository) GetRowsCount(underlying string) (int64, error) {
	var count int64
	query := r.db.Model(&models.OptionRow{})
	if underlying != "" {
		query = query.Where("underlying = ?", underlying)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormOptionRepository) GetLatestRowsGroupByUnderlying(underlyings []string, limit int) (map[string][]models.OptionRow, error) {
	subQuery := r.db.Model(&models.OptionRow{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY underlying ORDER BY timestamp DESC) as rn").
		Where("underlying IN (?)", underlyings)

	var flatRows []models.OptionRow
	err := r.db.Table("(?) as ranked_rows", subQuery).
		Where("rn <= ?", limit).
		Order("underlying, timestamp DESC").
		Find(&flatRows).Error
	if err != nil {
		return nil, err
	}

	results := make(map[string][]models.OptionRow)
	for _, row := range flatRows {
		results[row.Underlying] = append(results[row.Underlying], row)
	}
	return results, nil
}

func (r *gormOptionRepository) GetRowCountGroupByUnderlying() (map[string]int64, error) {
	type underlyingCount struct {
		Underlying string
		Count      int64
	}
	var counts []underlyingCount
	err := r.db.Model(&models.OptionRow{}).
		Select("underlying, count(*) as count").
		Group("underlying").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(counts))
	for _, c := range counts {
		result[c.Underlying] = c.Count
	}
	return result, nil
}

func (r *gormOptionRepository) GetUnderlyings() ([]string, error) {
	var underlyings []string
	err := r.db.Model(&models.OptionRow{}).
		Distinct("underlying").
		Order("underlying").
		Pluck("underlying", &underlyings).Error
	if err != nil {
		return nil, err
	}
	return underlyings, nil
}
