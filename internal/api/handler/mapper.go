package handler

import (
	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// --- Request → Service input ---

func toUserPatch(r updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

func toTitleInput(r titleRequest) ports.TitleInput {
	return ports.TitleInput{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category,
		Genres:      r.Genre,
	}
}

func toTitlePatch(r titlePatchRequest) ports.TitlePatch {
	return ports.TitlePatch{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category,
		Genres:      r.Genre,
	}
}

// --- Service result → HTTP response ---

func toListResponse[T, R any](res *ports.ListResult[T], conv func(T) R) listResponse[R] {
	data := make([]R, 0, len(res.Items))
	for _, item := range res.Items {
		data = append(data, conv(item))
	}
	return listResponse[R]{
		Data: data,
		Pagination: pagination{
			Total:  res.Total,
			Limit:  res.Page.Limit,
			Offset: res.Page.Offset,
		},
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

func toCategoryResponse(c domain.Category) slugResponse {
	return slugResponse{Name: c.Name, Slug: c.Slug}
}

func toGenreResponse(g domain.Genre) slugResponse {
	return slugResponse{Name: g.Name, Slug: g.Slug}
}

func toTitleResponse(t *domain.Title) titleResponse {
	genres := make([]slugResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, toGenreResponse(g))
	}
	return titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    toCategoryResponse(t.Category),
	}
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author,
		Score:   r.Score,
		PubDate: r.PubDate.UTC(),
	}
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author,
		PubDate: c.PubDate.UTC(),
	}
}

func toModerationEventResponse(ev domain.ModerationEvent) moderationEventResponse {
	return moderationEventResponse{
		ActorID:    ev.ActorID,
		ActorRole:  string(ev.ActorRole),
		Action:     string(ev.Action),
		Resource:   string(ev.Resource),
		ResourceID: ev.ResourceID,
		OwnerID:    ev.OwnerID,
		At:         ev.At.UTC(),
	}
}
