package model

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// All 参与迁移的全部模型，被引用的表在前.
func All() []any {
	return []any{
		&MusicReleaseType{}, &MusicQuality{},
		&Torrent{}, &Artist{},
		&Music{}, &Movie{}, &TVShow{}, &Anime{}, &Software{}, &VideoGame{},
		&MusicArtist{},
		&MusicRelease{}, &MovieRelease{}, &TVRelease{}, &AnimeRelease{}, &SoftwareRelease{}, &VideoGameRelease{},
	}
}

// Migrate 建表并写入参照数据，可重复执行.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return Seed(ctx, db)
}

// Seed 写入缺失的参照数据，按 name 去重.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range DefaultMusicReleaseTypes {
			row := MusicReleaseType{ID: NewID(), Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("seed music_release_types: %w", err)
			}
		}

		for _, name := range DefaultMusicQualities {
			row := MusicQuality{ID: NewID(), Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("seed music_qualities: %w", err)
			}
		}

		return nil
	})
}
