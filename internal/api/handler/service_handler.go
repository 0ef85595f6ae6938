package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/pkg/config"
)

// ServiceHandler serves the welcome banner and the endpoint catalogue.
type ServiceHandler struct {
	version string
	config  config.Public
	sources []Documented
}

func NewServiceHandler(version string, cfg config.Public, sources ...Documented) *ServiceHandler {
	return &ServiceHandler{version: version, config: cfg, sources: sources}
}

type welcomeResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type docsResponse struct {
	Version   string        `json:"version"`
	Endpoints []EndpointDoc `json:"endpoints"`
	Config    config.Public `json:"config"`
}

// Welcome godoc
//
// @Summary      Welcome banner
// @Tags         service
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       / [get]
func (h *ServiceHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{Message: "welcome to JWT Pizza", Version: h.version})
}

// Docs lists every documented endpoint together with the public settings.
//
// @Summary      Endpoint catalogue
// @Tags         service
// @Produce      json
// @Success      200  {object}  docsResponse
// @Router       /api/docs [get]
func (h *ServiceHandler) Docs(c echo.Context) error {
	endpoints := make([]EndpointDoc, 0, 24)
	for _, s := range h.sources {
		endpoints = append(endpoints, s.Docs()...)
	}
	return c.JSON(http.StatusOK, docsResponse{Version: h.version, Endpoints: endpoints, Config: h.config})
}
