// Package database предоставляет модели данных и репозиторий для работы с PostgreSQL.
// Использует GORM ORM с prepared statements для защиты от SQL injection.
package database

import "time"

// Profile представляет один извлеченный профиль LinkedIn.
// Поле Education хранит список записей об образовании в виде JSON строки.
type Profile struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"type:text"`           // Имя (может быть "Unknown")
	URL          string    `gorm:"type:text"`           // Канонический URL профиля
	Location     string    `gorm:"type:text"`           // Локация (отображаемая строка)
	Keyword      string    `gorm:"type:text"`           // Поисковый запрос, нашедший профиль
	Position     *string   `gorm:"type:text"`           // Заголовок профиля
	Gender       string    `gorm:"type:varchar(16)"`    // Male / Female / Unknown
	ImageURL     *string   `gorm:"type:text"`           // URL фотографии (опционально)
	SearchRank   int       // Позиция в агрегированной выдаче (с 1)
	EstimatedAge *int      // Оценка возраста, 18-80 или NULL
	Education    string    `gorm:"type:text"`           // JSON список записей об образовании
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Education представляет одну запись об образовании профиля.
// Все поля опциональны - отдельная запись может содержать любое подмножество.
type Education struct {
	School    *string `json:"school"`
	Degree    *string `json:"degree"`
	DateRange *string `json:"date_range"`
}

// FilterCriteria описывает набор необязательных предикатов для поиска профилей.
type FilterCriteria struct {
	Keyword   string `json:"keyword,omitempty"`   // Подстрока по имени/позиции/ключевому слову
	Location  string `json:"location,omitempty"`  // Подстрока по локации ("Morocco" - любая)
	Gender    string `json:"gender,omitempty"`    // Точное совпадение, нормализуется
	MinAge    *int   `json:"min_age,omitempty"`
	MaxAge    *int   `json:"max_age,omitempty"`
	Education string `json:"education,omitempty"` // Подстрока по образованию
	Limit     int    `json:"limit,omitempty"`
}

// ProfileRow - форма выдачи профиля для фильтров и инструментов агента.
type ProfileRow struct {
	Name       string      `json:"name"`
	ProfileURL string      `json:"profile_url"`
	Location   string      `json:"location"`
	Gender     string      `json:"gender"`
	Age        *int        `json:"age"`
	Education  []Education `json:"education"`
	Position   *string     `json:"position"`
	ImageURL   *string     `json:"image_url"`
}
