package database

import (
	"fmt"
	"log"
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)

	log.Printf("Database connection established (%s)", cfg.Driver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Teacher{},
		&model.Admin{},
		&model.Course{},
		&model.Game{},
		&model.GameLevel{},
		&model.StudentStatistics{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	return seedGames(db)
}

type seedLevel struct {
	activities int
	config     datatypes.JSONMap
}

type seedGame struct {
	game   model.Game
	levels []seedLevel
}

// the five mini-games shipped with the frontend
var defaultGames = []seedGame{
	{
		game: model.Game{ID: "game-calculos", Name: "Cálculos", Description: "Sumas y restas rápidas", DisplayOrder: 1},
		levels: []seedLevel{
			{10, datatypes.JSONMap{"operation": "addition", "min": 0, "max": 10}},
			{10, datatypes.JSONMap{"operation": "subtraction", "min": 0, "max": 10}},
			{10, datatypes.JSONMap{"operation": "mixed", "min": 0, "max": 20}},
		},
	},
	{
		game: model.Game{ID: "game-escritura", Name: "Escritura", Description: "Escribe los números con letras", DisplayOrder: 2},
		levels: []seedLevel{
			{5, datatypes.JSONMap{"min": 0, "max": 10}},
			{5, datatypes.JSONMap{"min": 10, "max": 100}},
		},
	},
	{
		game: model.Game{ID: "game-ordenamiento", Name: "Ordenamiento", Description: "Ordena los números de menor a mayor", DisplayOrder: 3},
		levels: []seedLevel{
			{5, datatypes.JSONMap{"count": 3, "min": 0, "max": 20}},
			{5, datatypes.JSONMap{"count": 5, "min": 0, "max": 100}},
		},
	},
	{
		game: model.Game{ID: "game-comparacion", Name: "Comparación", Description: "Mayor, menor o igual", DisplayOrder: 4},
		levels: []seedLevel{
			{8, datatypes.JSONMap{"min": 0, "max": 20}},
			{8, datatypes.JSONMap{"min": 0, "max": 100}},
		},
	},
	{
		game: model.Game{ID: "game-conteo", Name: "Conteo", Description: "Cuenta los objetos", DisplayOrder: 5},
		levels: []seedLevel{
			{6, datatypes.JSONMap{"min": 1, "max": 10, "ui": "apples"}},
			{6, datatypes.JSONMap{"min": 5, "max": 20, "ui": "stars"}},
		},
	},
}

func seedGames(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Game{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, sg := range defaultGames {
			game := sg.game
			game.Enabled = true
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			for i, l := range sg.levels {
				level := model.GameLevel{
					GameID:          game.ID,
					Level:           i + 1,
					ActivitiesCount: l.activities,
					Config:          l.config,
				}
				if err := tx.Create(&level).Error; err != nil {
					return err
				}
			}
		}
		log.Printf("Seeded %d default games", len(defaultGames))
		return nil
	})
}
