package postgres

import (
	"time"

	"github.com/yamdb/review-api/internal/core/domain"
)

type userRow struct {
	ID          int64  `gorm:"primaryKey"`
	Username    string `gorm:"size:150;not null;uniqueIndex:users_username_key"`
	Email       string `gorm:"size:254;not null;uniqueIndex:users_email_key"`
	FirstName   string `gorm:"size:150"`
	LastName    string `gorm:"size:150"`
	Bio         string `gorm:"type:text"`
	Role        string `gorm:"size:20;not null;default:user"`
	IsStaff     bool   `gorm:"not null;default:false"`
	IsSuperuser bool   `gorm:"not null;default:false"`
	Confirmed   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (userRow) TableName() string { return "users" }

type categoryRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:256;not null"`
	Slug string `gorm:"size:50;not null;uniqueIndex:categories_slug_key"`
}

func (categoryRow) TableName() string { return "categories" }

type genreRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:256;not null"`
	Slug string `gorm:"size:50;not null;uniqueIndex:genres_slug_key"`
}

func (genreRow) TableName() string { return "genres" }

// titleRow.Rating is filled only by queries selecting ratingColumn.
type titleRow struct {
	ID          int64       `gorm:"primaryKey"`
	Name        string      `gorm:"size:256;not null;index"`
	Year        int         `gorm:"not null;index"`
	Description string      `gorm:"type:text"`
	CategoryID  int64       `gorm:"not null;index"`
	Category    categoryRow `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Genres      []genreRow  `gorm:"many2many:genre_titles;joinForeignKey:TitleID;joinReferences:GenreID;constraint:OnDelete:CASCADE"`
	Rating      *int        `gorm:"->;-:migration"`
}

func (titleRow) TableName() string { return "titles" }

type genreTitleRow struct {
	TitleID int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey;index"`
}

func (genreTitleRow) TableName() string { return "genre_titles" }

type reviewRow struct {
	ID       int64     `gorm:"primaryKey"`
	TitleID  int64     `gorm:"not null;uniqueIndex:unique_title_author,priority:1"`
	Title    titleRow  `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int64     `gorm:"not null;uniqueIndex:unique_title_author,priority:2"`
	Author   userRow   `gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Score    int       `gorm:"not null;check:score_range,score >= 1 AND score <= 10"`
	PubDate  time.Time `gorm:"not null;index"`
}

func (reviewRow) TableName() string { return "reviews" }

type commentRow struct {
	ID       int64     `gorm:"primaryKey"`
	ReviewID int64     `gorm:"not null;index"`
	Review   reviewRow `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int64     `gorm:"not null;index"`
	Author   userRow   `gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"not null;index"`
}

func (commentRow) TableName() string { return "comments" }

func toUserRow(u *domain.User) userRow {
	return userRow{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		Role:        string(u.Role),
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Confirmed:   u.Confirmed,
		CreatedAt:   u.CreatedAt,
	}
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:          r.ID,
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Bio:         r.Bio,
		Role:        domain.Role(r.Role),
		IsStaff:     r.IsStaff,
		IsSuperuser: r.IsSuperuser,
		Confirmed:   r.Confirmed,
		CreatedAt:   r.CreatedAt,
	}
}

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name, Slug: r.Slug}
}

func (r genreRow) toDomain() domain.Genre {
	return domain.Genre{ID: r.ID, Name: r.Name, Slug: r.Slug}
}

func (r titleRow) toDomain() *domain.Title {
	genres := make([]domain.Genre, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, g.toDomain())
	}
	return &domain.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category.toDomain(),
		Genres:      genres,
		Rating:      r.Rating,
	}
}

func (r reviewRow) toDomain() *domain.Review {
	return &domain.Review{
		ID:      r.ID,
		TitleID: r.TitleID,
		Entry: domain.Entry{
			AuthorID: r.AuthorID,
			Author:   r.Author.Username,
			Text:     r.Text,
			PubDate:  r.PubDate,
		},
		Score: r.Score,
	}
}

func (r commentRow) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:       r.ID,
		ReviewID: r.ReviewID,
		Entry: domain.Entry{
			AuthorID: r.AuthorID,
			Author:   r.Author.Username,
			Text:     r.Text,
			PubDate:  r.PubDate,
		},
	}
}
