package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/app/service"
	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
	"cmms/pkg/apierrors"
)

type BuildingHandler struct {
	buildingService ports.BuildingService
}

func NewBuildingHandler(buildingService ports.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	page, err := h.buildingService.ListBuildings(c.Request.Context(), middleware.GetActor(c), service.ParsePage(c.Request.URL.Query()))
	if err != nil {
		respondError(c, err, "failed to list buildings")
		return
	}
	c.JSON(http.StatusOK, mapper.ToBuildingPage(page))
}

func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var req dto.BuildingRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	building, err := h.buildingService.CreateBuilding(c.Request.Context(), middleware.GetActor(c), toBuildingInput(req))
	if err != nil {
		respondError(c, err, "failed to create building")
		return
	}

	item := mapper.ToBuildingItem(building)
	respondSuccess(c, http.StatusCreated, buildingsPath, dto.ActionResponse{
		Message:  localize(c, apierrors.MsgBuildingCreated, nil),
		Building: &item,
	})
}

func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	buildingID, ok := parseID(c, "id", apierrors.MsgInvalidID)
	if !ok {
		return
	}

	var req dto.BuildingRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidPayload(c)
		return
	}

	building, err := h.buildingService.UpdateBuilding(c.Request.Context(), middleware.GetActor(c), buildingID, toBuildingInput(req))
	if err != nil {
		respondError(c, err, "failed to update building")
		return
	}

	item := mapper.ToBuildingItem(building)
	respondSuccess(c, http.StatusOK, buildingsPath, dto.ActionResponse{
		Message:  localize(c, apierrors.MsgBuildingUpdated, nil),
		Building: &item,
	})
}

func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	buildingID, ok := parseID(c, "id", apierrors.MsgInvalidID)
	if !ok {
		return
	}

	if err := h.buildingService.DeleteBuilding(c.Request.Context(), middleware.GetActor(c), buildingID); err != nil {
		respondError(c, err, "failed to delete building")
		return
	}

	respondSuccess(c, http.StatusOK, buildingsPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgBuildingDeleted, nil),
	})
}

func toBuildingInput(req dto.BuildingRequest) domain.BuildingInput {
	return domain.BuildingInput{Name: req.Name, Address: req.Address}
}
