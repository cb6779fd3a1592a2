package public

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkserie-app/database"
	"inkserie-app/internal/cache"
	"inkserie-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var Cache *cache.PayloadCache

func Init(payloadCache *cache.PayloadCache) {
	Cache = payloadCache
}

// loadNestedSerie assembles the full serie document: modules and their
// tattoos, both ordered by creation time ascending.
func loadNestedSerie(id string) (catalog.Serie, error) {
	var s catalog.Serie
	err := database.DB.
		Preload("Modulos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Modulos.Tatuagens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&s, "id = ?", id).Error
	return s, err
}

// ------------------------------
// GET /api/series/:id  (anonymous landing page payload)
// ------------------------------
func GetSeriePublic(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if raw, ok := Cache.Get(ctx, id); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	s, err := loadNestedSerie(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	payload, err := json.Marshal(toSerieDTO(s))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	Cache.Set(ctx, id, payload)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// ------------------------------
// GET /api/books/:id  (legacy AiBook naming, same records)
// ------------------------------
func GetBookPublic(c *gin.Context) {
	s, err := loadNestedSerie(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, toBookDTO(s))
}

// ------------------------------
// GET /series?view=trending|novidades  (public browse carousels)
// ------------------------------
func BrowseSeries(c *gin.Context) {
	view := c.DefaultQuery("view", "trending")

	order := "created_at DESC" // trending
	if view == "novidades" {
		order = "updated_at DESC"
	}

	var list []catalog.Serie
	err := database.DB.
		Where("status = ?", catalog.StatusPublished).
		Order(order).
		Limit(20).
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": list})
}
