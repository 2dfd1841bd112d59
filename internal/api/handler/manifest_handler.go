package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type ManifestHandler struct {
	manifests ports.ManifestService
}

func NewManifestHandler(manifests ports.ManifestService) *ManifestHandler {
	return &ManifestHandler{manifests: manifests}
}

type createManifestRequest struct {
	ShipmentIDs  []string `json:"shipmentIds" validate:"required,min=1"`
	ManifestType string   `json:"manifestType,omitempty" validate:"omitempty,oneof=standard asycuda"`
	Destination  string   `json:"destination,omitempty"`
}

type manifestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending submitted approved rejected"`
}

type manifestResponse struct {
	envelope
	Manifest *domain.Manifest `json:"manifest"`
}

type manifestListResponse struct {
	envelope
	Manifests  []*domain.Manifest `json:"manifests"`
	Pagination ports.PageResult   `json:"pagination"`
}

// Create groups shipments into a manifest.
//
// @Summary      Create manifest
// @Tags         manifests
// @Accept       json
// @Produce      json
// @Param        body  body      createManifestRequest  true  "Manifest details"
// @Success      201   {object}  manifestResponse
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/manifests [post]
func (h *ManifestHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createManifestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manifest, err := h.manifests.Create(c.Request().Context(), actor, ports.CreateManifestInput{
		ShipmentIDs:  req.ShipmentIDs,
		ManifestType: req.ManifestType,
		Destination:  req.Destination,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, manifestResponse{envelope: okMsg("manifest created"), Manifest: manifest})
}

// List returns the company's manifests.
//
// @Summary      List manifests
// @Tags         manifests
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        type    query     string  false  "Filter by manifest type"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  manifestListResponse
// @Security     BearerAuth
// @Router       /api/manifests [get]
func (h *ManifestHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	manifests, page, err := h.manifests.List(c.Request().Context(), actor, ports.ListManifestsInput{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Page:   queryPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, manifestListResponse{envelope: ok(), Manifests: manifests, Pagination: page})
}

// Get returns one manifest.
//
// @Summary      Get manifest
// @Tags         manifests
// @Produce      json
// @Param        id   path      string  true  "Manifest id"
// @Success      200  {object}  manifestResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/manifests/{id} [get]
func (h *ManifestHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	manifest, err := h.manifests.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, manifestResponse{envelope: ok(), Manifest: manifest})
}

// UpdateStatus moves a manifest through its review states.
//
// @Summary      Update manifest status
// @Tags         manifests
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Manifest id"
// @Param        body  body      manifestStatusRequest  true  "New status"
// @Success      200   {object}  manifestResponse
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/manifests/{id}/status [put]
func (h *ManifestHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req manifestStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manifest, err := h.manifests.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ManifestStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, manifestResponse{envelope: okMsg("manifest status updated"), Manifest: manifest})
}

// Document downloads the printable hand-off document.
//
// @Summary      Download manifest document
// @Tags         manifests
// @Produce      plain
// @Param        id   path      string  true  "Manifest id"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/manifests/{id}/document [get]
func (h *ManifestHandler) Document(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	doc, err := h.manifests.Document(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}

// Submit hands the manifest to the Sethwan platform.
//
// @Summary      Submit manifest to Sethwan
// @Tags         manifests
// @Produce      json
// @Param        id   path      string  true  "Manifest id"
// @Success      200  {object}  manifestResponse
// @Failure      422  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/manifests/{id}/submit [post]
func (h *ManifestHandler) Submit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	manifest, err := h.manifests.SubmitToSethwan(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, manifestResponse{envelope: okMsg("manifest submitted"), Manifest: manifest})
}
