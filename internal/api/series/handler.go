package series

import (
	"errors"
	"net/http"

	"inkserie-app/database"
	"inkserie-app/internal/ai"
	"inkserie-app/internal/cache"
	"inkserie-app/internal/domain/catalog"
	"inkserie-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// AI is the content gateway used for suggestions and compilation.
	AI *ai.Client
	// Store handles the non-blocking engagement writes.
	Store *store.Accessor
	// Cache holds the assembled public payloads; invalidated on every write.
	Cache *cache.PayloadCache
)

func Init(aiClient *ai.Client, accessor *store.Accessor, payloadCache *cache.PayloadCache) {
	AI = aiClient
	Store = accessor
	Cache = payloadCache
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /me/series  (owner dashboard)
// ------------------------------
func ListMySeries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []catalog.Serie
	err := database.DB.
		Where("autor_id = ?", userID).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": list})
}

// ------------------------------
// GET /series/:id  (editor load, fully nested)
// ------------------------------
func GetSerie(c *gin.Context) {
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
		First(&s, "id = ? AND autor_id = ?", c.Param("id"), userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load serie"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// ------------------------------
// POST /series
// ------------------------------
func CreateSerie(c *gin.Context) {
	var req CreateSerieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	// instant creation from the dashboard sends no fields at all
	if req.Titulo == "" {
		req.Titulo = "Nova Coleção sem Título"
	}

	s := catalog.Serie{
		Titulo:      req.Titulo,
		Descricao:   req.Descricao,
		PublicoAlvo: req.PublicoAlvo,
		Preco:       req.Preco,
		Status:      catalog.StatusDraft,
		CapaURL:     req.CapaURL,
		TagsGerais:  pq.StringArray(req.TagsGerais),
		AutorID:     userID,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create serie"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

// ------------------------------
// PUT /series/:id
// ------------------------------
func UpdateSerie(c *gin.Context) {
	id := c.Param("id")

	var req UpdateSerieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	patch := map[string]interface{}{}
	if req.Titulo != nil {
		if *req.Titulo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Titulo cannot be empty"})
			return
		}
		patch["titulo"] = *req.Titulo
	}
	if req.Descricao != nil {
		patch["descricao"] = *req.Descricao
	}
	if req.PublicoAlvo != nil {
		patch["publico_alvo"] = *req.PublicoAlvo
	}
	if req.Preco != nil {
		patch["preco"] = *req.Preco
	}
	if req.Status != nil {
		switch *req.Status {
		case catalog.StatusDraft, catalog.StatusPublished, catalog.StatusPaused:
			patch["status"] = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}
	if req.CapaURL != nil {
		patch["capa_url"] = *req.CapaURL
	}
	if req.TagsGerais != nil {
		patch["tags_gerais"] = pq.StringArray(*req.TagsGerais)
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		s, err := ownedSerie(tx, userID, id)
		if err != nil {
			return err
		}
		return tx.Model(&s).Updates(patch).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update serie"})
		return
	}

	Cache.Invalidate(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ------------------------------
// DELETE /series/:id  (cascades to modulos and tatuagens)
// ------------------------------
func DeleteSerie(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		s, err := ownedSerie(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&catalog.Tatuagem{}, "serie_id = ?", s.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.Modulo{}, "serie_id = ?", s.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete serie"})
		return
	}

	Cache.Invalidate(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ------------------------------
// POST /series/:id/modulos
// ------------------------------
func CreateModulo(c *gin.Context) {
	serieID := c.Param("id")

	var req CreateModuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var m catalog.Modulo
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		s, err := ownedSerie(tx, userID, serieID)
		if err != nil {
			return err
		}

		m = catalog.Modulo{
			SerieID:   s.ID,
			Titulo:    req.Titulo,
			Descricao: req.Descricao,
			Ordem:     s.ModulosCount + 1,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Serie{}).Where("id = ?", s.ID).
			Update("modulos_count", gorm.Expr("modulos_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusCreated, gin.H{"id": m.ID, "ordem": m.Ordem})
}

// ------------------------------
// PUT /modulos/:id  (title/description only, counters untouched)
// ------------------------------
func UpdateModulo(c *gin.Context) {
	id := c.Param("id")

	var req UpdateModuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	patch := map[string]interface{}{}
	if req.Titulo != nil {
		if *req.Titulo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Titulo cannot be empty"})
			return
		}
		patch["titulo"] = *req.Titulo
	}
	if req.Descricao != nil {
		patch["descricao"] = *req.Descricao
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var serieID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		m, _, err := ownedModulo(tx, userID, id)
		if err != nil {
			return err
		}
		serieID = m.SerieID
		return tx.Model(&m).Updates(patch).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update module"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ------------------------------
// DELETE /modulos/:id
// ------------------------------
// Deletes the module AND its tattoos in one transaction, adjusting both
// parent counters. Orphaned tattoo records are never left behind.
func DeleteModulo(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var serieID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		m, s, err := ownedModulo(tx, userID, id)
		if err != nil {
			return err
		}
		serieID = s.ID

		var children int64
		if err := tx.Model(&catalog.Tatuagem{}).Where("modulo_id = ?", m.ID).Count(&children).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.Tatuagem{}, "modulo_id = ?", m.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&m).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Serie{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
			"modulos_count":   gorm.Expr("modulos_count - 1"),
			"tatuagens_count": gorm.Expr("tatuagens_count - ?", children),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete module"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ------------------------------
// POST /modulos/:id/tatuagens  (manual create, no AI)
// ------------------------------
func CreateTatuagem(c *gin.Context) {
	moduloID := c.Param("id")

	var req CreateTatuagemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var t catalog.Tatuagem
	var serieID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		m, s, err := ownedModulo(tx, userID, moduloID)
		if err != nil {
			return err
		}
		serieID = s.ID

		t = catalog.Tatuagem{
			ModuloID:             m.ID,
			SerieID:              s.ID,
			CapaURL:              req.CapaURL,
			Titulo:               req.Titulo,
			Descricao:            req.Descricao,
			Tema:                 req.Tema,
			Estilos:              pq.StringArray(req.Estilos),
			SignificadoLiteral:   req.SignificadoLiteral,
			SignificadoSubjetivo: req.SignificadoSubjetivo,
			CoresUsadas:          pq.StringArray(req.CoresUsadas),
			ElementosPresentes:   pq.StringArray(req.ElementosPresentes),
			TomEmocional:         req.TomEmocional,
			LocalSugerido:        req.LocalSugerido,
			Simbolismo:           req.Simbolismo,
			ReferenciaCultural:   req.ReferenciaCultural,
			SeoTags:              pq.StringArray(req.SeoTags),
			InstagramCaption:     req.InstagramCaption,
			Origem:               catalog.OrigemManual,
			AutorID:              userID,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		if err := tx.Model(&catalog.Modulo{}).Where("id = ?", m.ID).
			Update("tatuagens_count", gorm.Expr("tatuagens_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Serie{}).Where("id = ?", s.ID).
			Update("tatuagens_count", gorm.Expr("tatuagens_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tattoo"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusCreated, gin.H{"id": t.ID})
}

// ------------------------------
// PUT /tatuagens/:id  (edit sheet merge)
// ------------------------------
func UpdateTatuagem(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTatuagemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	patch := map[string]interface{}{}
	if req.CapaURL != nil {
		patch["capa_url"] = *req.CapaURL
	}
	if req.Titulo != nil {
		if *req.Titulo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Titulo cannot be empty"})
			return
		}
		patch["titulo"] = *req.Titulo
	}
	if req.Descricao != nil {
		patch["descricao"] = *req.Descricao
	}
	if req.Tema != nil {
		patch["tema"] = *req.Tema
	}
	if req.Estilos != nil {
		patch["estilos"] = pq.StringArray(*req.Estilos)
	}
	if req.SignificadoLiteral != nil {
		patch["significado_literal"] = *req.SignificadoLiteral
	}
	if req.SignificadoSubjetivo != nil {
		patch["significado_subjetivo"] = *req.SignificadoSubjetivo
	}
	if req.CoresUsadas != nil {
		patch["cores_usadas"] = pq.StringArray(*req.CoresUsadas)
	}
	if req.ElementosPresentes != nil {
		patch["elementos_presentes"] = pq.StringArray(*req.ElementosPresentes)
	}
	if req.TomEmocional != nil {
		patch["tom_emocional"] = *req.TomEmocional
	}
	if req.LocalSugerido != nil {
		patch["local_sugerido"] = *req.LocalSugerido
	}
	if req.Simbolismo != nil {
		patch["simbolismo"] = *req.Simbolismo
	}
	if req.ReferenciaCultural != nil {
		patch["referencia_cultural"] = *req.ReferenciaCultural
	}
	if req.SeoTags != nil {
		patch["seo_tags"] = pq.StringArray(*req.SeoTags)
	}
	if req.InstagramCaption != nil {
		patch["instagram_caption"] = *req.InstagramCaption
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var serieID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		t, err := ownedTatuagem(tx, userID, id)
		if err != nil {
			return err
		}
		serieID = t.SerieID
		return tx.Model(&t).Updates(patch).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tattoo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tattoo"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ------------------------------
// DELETE /tatuagens/:id
// ------------------------------
func DeleteTatuagem(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var serieID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		t, err := ownedTatuagem(tx, userID, id)
		if err != nil {
			return err
		}
		serieID = t.SerieID

		if err := tx.Delete(&t).Error; err != nil {
			return err
		}
		if err := tx.Model(&catalog.Modulo{}).Where("id = ?", t.ModuloID).
			Update("tatuagens_count", gorm.Expr("tatuagens_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Serie{}).Where("id = ?", t.SerieID).
			Update("tatuagens_count", gorm.Expr("tatuagens_count - 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tattoo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tattoo"})
		return
	}

	Cache.Invalidate(c.Request.Context(), serieID)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ------------------------------
// POST /tatuagens/:id/curtir
// ------------------------------
// Engagement counters go through the store accessor's non-blocking path:
// the response is optimistic and any write failure lands on the accessor's
// error channel.
func CurtirTatuagem(c *gin.Context) {
	id := c.Param("id")

	var t catalog.Tatuagem
	if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tattoo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tattoo"})
		return
	}

	Store.UpdateAsync("tatuagens", &catalog.Tatuagem{}, id, map[string]interface{}{
		"curtidas": gorm.Expr("curtidas + 1"),
	})

	c.JSON(http.StatusAccepted, gin.H{"curtidas": t.Curtidas + 1})
}
