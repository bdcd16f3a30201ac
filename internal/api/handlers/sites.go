package handlers

import (
	"net/http"
	"os"

	"solar-appraisal/internal/api/models"
	"solar-appraisal/internal/data"

	"github.com/gin-gonic/gin"
)

// ListSites handles GET /api/v1/sites.
func ListSites(c *gin.Context) {
	list := data.DefaultSites()
	if path := os.Getenv("SITES_FILE"); path != "" {
		if loaded, err := data.LoadSites(path); err == nil {
			list = loaded
		}
	}

	out := make([]models.SiteInfo, 0, len(list.Sites))
	for _, s := range list.Sites {
		out = append(out, models.SiteInfo{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}
	c.JSON(http.StatusOK, gin.H{"sites": out})
}
