package uploads

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"inkserie-app/database"
	"inkserie-app/internal/ai"
	"inkserie-app/internal/cache"
	"inkserie-app/internal/domain/catalog"
	"inkserie-app/internal/log"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// maxConcurrent caps how many analyze-then-persist pipelines run at once,
// no matter how many files the user selected.
const maxConcurrent = 4

const maxFileSize = 10 << 20 // 10 MiB per image

type ImageStore interface {
	PutImage(ctx context.Context, data []byte, contentType string) (string, error)
	RemoveImage(ctx context.Context, publicURL string) error
}

var (
	AI    *ai.Client
	Blobs ImageStore
	Cache *cache.PayloadCache
)

func Init(aiClient *ai.Client, blobs ImageStore, payloadCache *cache.PayloadCache) {
	AI = aiClient
	Blobs = blobs
	Cache = payloadCache
}

type FileResult struct {
	File       string `json:"file"`
	TatuagemID string `json:"tatuagem_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ------------------------------
// POST /modulos/:id/upload  (multipart, field "files")
// ------------------------------
// Each file runs its own sequence: store bytes -> AI analysis -> persist
// tattoo + counters in one transaction. Files fail independently; one bad
// image never aborts the batch.
func UploadImages(c *gin.Context) {
	moduloID := c.Param("id")

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var m catalog.Modulo
	if err := database.DB.First(&m, "id = ?", moduloID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load module"})
		return
	}
	var s catalog.Serie
	if err := database.DB.First(&s, "id = ? AND autor_id = ?", m.SerieID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	results := make([]FileResult, len(files))
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	ctx := c.Request.Context()
	for i, fh := range files {
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			id, err := processFile(ctx, fh, m, s, userID)
			if err != nil {
				log.Logger.Warn().Str("file", fh.Filename).Err(err).Msg("upload failed")
				results[i] = FileResult{File: fh.Filename, Error: err.Error()}
				return
			}
			results[i] = FileResult{File: fh.Filename, TatuagemID: id}
		}(i, fh)
	}
	wg.Wait()

	created := 0
	for _, r := range results {
		if r.Error == "" {
			created++
		}
	}

	Cache.Invalidate(ctx, s.ID)
	c.JSON(http.StatusOK, gin.H{"created": created, "results": results})
}

// processFile runs the per-file sequence: read bytes, store the blob, ask
// the gateway for analysis, persist the tattoo and bump both counters.
func processFile(ctx context.Context, fh *multipart.FileHeader, m catalog.Modulo, s catalog.Serie, userID uint) (string, error) {
	if fh.Size > maxFileSize {
		return "", fmt.Errorf("file exceeds %d byte limit", maxFileSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > maxFileSize {
		return "", fmt.Errorf("file exceeds %d byte limit", maxFileSize)
	}

	contentType := http.DetectContentType(data)

	url, err := Blobs.PutImage(ctx, data, contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	analysis, err := AI.AnalyzeImage(ctx, dataURI)
	if err != nil {
		discardBlob(ctx, url)
		return "", err
	}

	t := catalog.Tatuagem{
		ModuloID:             m.ID,
		SerieID:              s.ID,
		CapaURL:              url,
		Titulo:               analysis.SuggestedName,
		Descricao:            analysis.Description,
		Tema:                 analysis.Theme,
		Estilos:              pq.StringArray{analysis.Style},
		SignificadoLiteral:   analysis.SignificadoLiteral,
		SignificadoSubjetivo: analysis.SignificadoSubjetivo,
		CoresUsadas:          pq.StringArray(analysis.CoresUsadas),
		ElementosPresentes:   pq.StringArray(analysis.ElementosPresentes),
		TomEmocional:         analysis.TomEmocional,
		LocalSugerido:        analysis.LocalSugerido,
		Simbolismo:           analysis.Simbolismo,
		ReferenciaCultural:   analysis.ReferenciaCultural,
		SeoTags:              pq.StringArray(analysis.SeoTags),
		InstagramCaption:     analysis.InstagramCaption,
		Origem:               catalog.OrigemIA,
		AutorID:              userID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
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
		discardBlob(ctx, url)
		return "", fmt.Errorf("persist tattoo: %w", err)
	}

	return t.ID, nil
}

// discardBlob removes a blob whose pipeline failed after the store step.
func discardBlob(ctx context.Context, url string) {
	if err := Blobs.RemoveImage(ctx, url); err != nil {
		log.Logger.Warn().Str("url", url).Err(err).Msg("failed to remove orphaned image")
	}
}
