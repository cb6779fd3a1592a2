package series

import (
	"errors"
	"net/http"

	"inkserie-app/database"
	"inkserie-app/internal/ai"
	"inkserie-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// POST /series/:id/compilar
// ------------------------------
// Gathers the serie's text plus every module's image references and asks the
// gateway for the full marketing-asset bundle. There is no cancellation: a
// dismissed dialog on the client simply discards the result.
func CompileSerie(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var s catalog.Serie
	err := database.DB.
		Preload("Modulos", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem ASC")
		}).
		Preload("Modulos.Tatuagens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&s, "id = ? AND autor_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load serie"})
		return
	}

	in := ai.CompilationInput{
		Name:           s.Titulo,
		Description:    s.Descricao,
		TargetAudience: s.PublicoAlvo,
	}
	for _, m := range s.Modulos {
		cm := ai.CompilationModule{
			Name:           m.Titulo,
			SubDescription: m.Descricao,
			Images:         make([]string, 0, len(m.Tatuagens)),
		}
		for _, t := range m.Tatuagens {
			cm.Images = append(cm.Images, t.CapaURL)
		}
		in.Modules = append(in.Modules, cm)
	}

	out, err := AI.CompileSerie(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Compilation failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /ai/sugestoes  (creation dialog)
// ------------------------------
func SuggestSerie(c *gin.Context) {
	var in ai.SuggestionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := mustUserID(c); !ok {
		return
	}

	out, err := AI.SuggestSerieMetadata(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Suggestion generation failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, out)
}
