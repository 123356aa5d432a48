package mapper

import (
	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

func ToBuildingItems(buildings []domain.Building) []dto.BuildingItem {
	items := make([]dto.BuildingItem, 0, len(buildings))
	for _, building := range buildings {
		items = append(items, ToBuildingItem(building))
	}
	return items
}

func ToBuildingItem(building domain.Building) dto.BuildingItem {
	return dto.BuildingItem{ID: building.ID, Name: building.Name, Address: building.Address}
}

func ToBuildingPage(page domain.BuildingPage) dto.BuildingPage {
	return dto.BuildingPage{
		Buildings: ToBuildingItems(page.Buildings),
		Page:      page.Page,
		NumPages:  page.NumPages,
		Total:     page.Total,
	}
}
