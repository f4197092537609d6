package models

import (
	domain "github.com/okunevaa/go-dating-app/internal/models"
)

func UserSummaryFromDomain(u domain.User) UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		Gender:       string(u.Gender),
		Age:          u.Age,
		Country:      u.Country,
		City:         u.City,
		MainPhotoURL: u.MainPhotoURL,
		LastActiveAt: u.LastActiveAt.Unix(),
	}
}

func UserListFromDomain(items []domain.User) UserList {
	out := UserList{Items: make([]UserSummary, 0, len(items))}
	for _, u := range items {
		out.Items = append(out.Items, UserSummaryFromDomain(u))
	}

	return out
}

func UserDetailFromDomain(u *domain.User) UserDetail {
	if u == nil {
		return UserDetail{}
	}

	photos := make([]PhotoResponse, 0, len(u.Photos))
	for _, p := range u.Photos {
		photos = append(photos, PhotoFromDomain(&p))
	}

	return UserDetail{
		ID:           u.ID,
		Username:     u.Username,
		Gender:       string(u.Gender),
		Age:          u.Age,
		Country:      u.Country,
		City:         u.City,
		Introduction: u.Introduction,
		MainPhotoURL: u.MainPhotoURL,
		Photos:       photos,
		LastActiveAt: u.LastActiveAt.Unix(),
		CreatedAt:    u.CreatedAt.Unix(),
		UpdatedAt:    u.UpdatedAt.Unix(),
	}
}

func PhotoFromDomain(p *domain.Photo) PhotoResponse {
	if p == nil {
		return PhotoResponse{}
	}

	return PhotoResponse{
		ID:        p.ID,
		URL:       p.URL,
		IsMain:    p.IsMain,
		CreatedAt: p.CreatedAt.Unix(),
	}
}

func PaginationFromPage(page *domain.UserPage) Pagination {
	if page == nil {
		return Pagination{}
	}

	return Pagination{
		CurrentPage:  page.Page,
		ItemsPerPage: page.PageSize,
		TotalItems:   page.TotalCount,
		TotalPages:   page.TotalPages,
	}
}
