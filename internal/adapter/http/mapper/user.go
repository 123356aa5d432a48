package mapper

import (
	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName(),
		IsManager: user.IsManager,
	}
}
