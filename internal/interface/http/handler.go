package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/safeland/internal/domain/advisor"
	"github.com/yanqian/safeland/internal/domain/risk"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	riskSvc    risk.Service
	advisorSvc advisor.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(riskSvc risk.Service, advisorSvc advisor.Service, logger *slog.Logger) *Handler {
	return &Handler{
		riskSvc:    riskSvc,
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Assess returns the curated or synthesized risk record for ?location=.
func (h *Handler) Assess(c *gin.Context) {
	resp, err := h.riskSvc.Assess(c.Request.Context(), c.Query("location"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summarize explains the flood and landslide scores for ?location=&fr=&lr=.
func (h *Handler) Summarize(c *gin.Context) {
	resp, err := h.advisorSvc.ExplainRisk(c.Request.Context(), advisor.ExplainRequest{
		Location:      c.Query("location"),
		FloodRisk:     parseScore(c.Query("fr")),
		LandslideRisk: parseScore(c.Query("lr")),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Weather analyzes current conditions for ?location=.
func (h *Handler) Weather(c *gin.Context) {
	resp, err := h.advisorSvc.AnalyzeWeather(c.Request.Context(), advisor.WeatherRequest{Location: c.Query("location")})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Location resolves ?location= (a name or "lat,lon") to a named place.
func (h *Handler) Location(c *gin.Context) {
	place, err := h.advisorSvc.ResolveLocation(c.Request.Context(), c.Query("location"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": place})
}

type recommendBody struct {
	Location      string               `json:"location"`
	FloodRisk     score                `json:"floodRisk"`
	LandslideRisk score                `json:"landslideRisk"`
	Profile       *advisor.UserProfile `json:"profile"`
}

// Recommend returns packing recommendations. GET reads the query string; POST
// additionally accepts a JSON body carrying a user profile.
func (h *Handler) Recommend(c *gin.Context) {
	var body recommendBody
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			abortWithError(c, fromBindError(err))
			return
		}
	}
	location := body.Location
	if location == "" {
		location = c.Query("location")
	}

	resp, err := h.advisorSvc.Recommend(c.Request.Context(), advisor.RecommendRequest{
		Location:      location,
		FloodRisk:     firstScore(body.FloodRisk.value, parseScore(c.Query("floodRisk"))),
		LandslideRisk: firstScore(body.LandslideRisk.value, parseScore(c.Query("landslideRisk"))),
		Profile:       body.Profile,
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

type chatBody struct {
	Location      string `json:"location"`
	Question      string `json:"question"`
	FloodRisk     score  `json:"floodRisk"`
	LandslideRisk score  `json:"landslideRisk"`
}

// Chat answers a single question about a location.
func (h *Handler) Chat(c *gin.Context) {
	var body chatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, fromBindError(err))
		return
	}

	resp, err := h.advisorSvc.Chat(c.Request.Context(), advisor.ChatRequest{
		Location:      body.Location,
		Question:      body.Question,
		FloodRisk:     body.FloodRisk.value,
		LandslideRisk: body.LandslideRisk.value,
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
