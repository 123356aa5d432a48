package dto

type BuildingRequest struct {
	Name    string `json:"name" form:"name"`
	Address string `json:"address" form:"address"`
}

type BuildingPage struct {
	Buildings []BuildingItem `json:"buildings"`
	Page      int            `json:"page"`
	NumPages  int            `json:"num_pages"`
	Total     int            `json:"total"`
}
