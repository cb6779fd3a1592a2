package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"inkserie-app/database"
	"inkserie-app/internal/ai"
	"inkserie-app/internal/domain/catalog"
	"inkserie-app/internal/domain/users"
	applog "inkserie-app/internal/log"
	"inkserie-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testUserID uint = 1

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set, skipping integration test")
	}

	applog.Init("test")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error)
	require.NoError(t, db.AutoMigrate(&users.User{}, &catalog.Serie{}, &catalog.Modulo{}, &catalog.Tatuagem{}))
	require.NoError(t, db.Exec(`TRUNCATE tatuagens, modulos, series RESTART IDENTITY CASCADE;`).Error)

	database.DB = db
	return db
}

func editorRouter(t *testing.T, db *gorm.DB, aiBase string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accessor := store.New(db)
	t.Cleanup(accessor.Close)
	go accessor.Drain()

	Init(ai.NewClient(aiBase, "test-key", "test-model"), accessor, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", testUserID) })

	r.GET("/me/series", ListMySeries)
	r.GET("/series/:id", GetSerie)
	r.POST("/series", CreateSerie)
	r.PUT("/series/:id", UpdateSerie)
	r.DELETE("/series/:id", DeleteSerie)
	r.POST("/series/:id/modulos", CreateModulo)
	r.PUT("/modulos/:id", UpdateModulo)
	r.DELETE("/modulos/:id", DeleteModulo)
	r.POST("/modulos/:id/tatuagens", CreateTatuagem)
	r.PUT("/tatuagens/:id", UpdateTatuagem)
	r.DELETE("/tatuagens/:id", DeleteTatuagem)
	r.POST("/tatuagens/:id/curtir", CurtirTatuagem)
	r.POST("/series/:id/compilar", CompileSerie)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("{}")
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func createSerie(t *testing.T, r *gin.Engine, body interface{}) string {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/series", body)
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func createModulo(t *testing.T, r *gin.Engine, serieID, titulo string) string {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/series/"+serieID+"/modulos", gin.H{"titulo": titulo})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func fetchSerie(t *testing.T, db *gorm.DB, id string) catalog.Serie {
	t.Helper()
	var s catalog.Serie
	require.NoError(t, db.First(&s, "id = ?", id).Error)
	return s
}

func TestCreateSerieUsesPlaceholderTitle(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	id := createSerie(t, r, nil)

	s := fetchSerie(t, db, id)
	assert.Equal(t, "Nova Coleção sem Título", s.Titulo)
	assert.Equal(t, catalog.StatusDraft, s.Status)
	assert.Equal(t, 0, s.ModulosCount)
	assert.Equal(t, 0, s.TatuagensCount)
	assert.Equal(t, testUserID, s.AutorID)
}

func TestModuleCountTracksCreations(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	id := createSerie(t, r, gin.H{"titulo": "Floral Set"})

	const n = 3
	for i := 1; i <= n; i++ {
		createModulo(t, r, id, fmt.Sprintf("Chapter %d", i))
	}

	s := fetchSerie(t, db, id)
	assert.Equal(t, n, s.ModulosCount)

	var modulos []catalog.Modulo
	require.NoError(t, db.Where("serie_id = ?", id).Order("ordem ASC").Find(&modulos).Error)
	require.Len(t, modulos, n)
	for i, m := range modulos {
		assert.Equal(t, i+1, m.Ordem)
	}
}

func TestEditModuleNeverTouchesCounter(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	moduloID := createModulo(t, r, serieID, "Chapter 1")

	w, _ := doJSON(t, r, http.MethodPut, "/modulos/"+moduloID, gin.H{"titulo": "Chapter One"})
	require.Equal(t, http.StatusOK, w.Code)

	s := fetchSerie(t, db, serieID)
	assert.Equal(t, 1, s.ModulosCount)
}

func TestDeleteModuleCascadesAndDecrements(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	keepID := createModulo(t, r, serieID, "Keep")
	dropID := createModulo(t, r, serieID, "Drop")

	for i := 0; i < 2; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/modulos/"+dropID+"/tatuagens", gin.H{
			"capa_url": fmt.Sprintf("https://img/%d.png", i),
			"titulo":   fmt.Sprintf("Tattoo %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, _ := doJSON(t, r, http.MethodDelete, "/modulos/"+dropID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	s := fetchSerie(t, db, serieID)
	assert.Equal(t, 1, s.ModulosCount)
	assert.Equal(t, 0, s.TatuagensCount)

	var orphans int64
	require.NoError(t, db.Model(&catalog.Tatuagem{}).Where("modulo_id = ?", dropID).Count(&orphans).Error)
	assert.Zero(t, orphans, "deleting a module must not leave orphaned tattoos")

	var kept catalog.Modulo
	require.NoError(t, db.First(&kept, "id = ?", keepID).Error)
}

func TestManualTattooCreateBumpsBothCounters(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	moduloID := createModulo(t, r, serieID, "Chapter 1")

	w, out := doJSON(t, r, http.MethodPost, "/modulos/"+moduloID+"/tatuagens", gin.H{
		"capa_url": "https://img/1.png",
		"titulo":   "Peônia",
		"tema":     "floral",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, out["id"])

	s := fetchSerie(t, db, serieID)
	assert.Equal(t, 1, s.TatuagensCount)

	var m catalog.Modulo
	require.NoError(t, db.First(&m, "id = ?", moduloID).Error)
	assert.Equal(t, 1, m.TatuagensCount)

	var tat catalog.Tatuagem
	require.NoError(t, db.First(&tat, "modulo_id = ?", moduloID).Error)
	assert.Equal(t, catalog.OrigemManual, tat.Origem)
}

func TestTattooEditRoundTrip(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	moduloID := createModulo(t, r, serieID, "Chapter 1")
	w, out := doJSON(t, r, http.MethodPost, "/modulos/"+moduloID+"/tatuagens", gin.H{
		"capa_url": "https://img/1.png",
		"titulo":   "Peônia",
		"tema":     "floral",
		"estilos":  []string{"fineline"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tatID := out["id"].(string)

	var before catalog.Tatuagem
	require.NoError(t, db.First(&before, "id = ?", tatID).Error)

	time.Sleep(10 * time.Millisecond)

	w, _ = doJSON(t, r, http.MethodPut, "/tatuagens/"+tatID, gin.H{"titulo": "Peônia Noturna"})
	require.Equal(t, http.StatusOK, w.Code)

	var after catalog.Tatuagem
	require.NoError(t, db.First(&after, "id = ?", tatID).Error)

	assert.Equal(t, "Peônia Noturna", after.Titulo)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updated_at must move forward")
	assert.Equal(t, before.Tema, after.Tema)
	assert.Equal(t, before.CapaURL, after.CapaURL)
	assert.Equal(t, []string(before.Estilos), []string(after.Estilos))
	assert.Equal(t, before.CreatedAt.UnixMicro(), after.CreatedAt.UnixMicro())
}

func TestDeleteTattooDecrementsBothCounters(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	moduloID := createModulo(t, r, serieID, "Chapter 1")
	w, out := doJSON(t, r, http.MethodPost, "/modulos/"+moduloID+"/tatuagens", gin.H{
		"capa_url": "https://img/1.png",
		"titulo":   "Peônia",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tatID := out["id"].(string)

	w, _ = doJSON(t, r, http.MethodDelete, "/tatuagens/"+tatID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	s := fetchSerie(t, db, serieID)
	assert.Equal(t, 0, s.TatuagensCount)

	var m catalog.Modulo
	require.NoError(t, db.First(&m, "id = ?", moduloID).Error)
	assert.Equal(t, 0, m.TatuagensCount)
}

func TestCurtirIsNonBlockingButLands(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})
	moduloID := createModulo(t, r, serieID, "Chapter 1")
	w, out := doJSON(t, r, http.MethodPost, "/modulos/"+moduloID+"/tatuagens", gin.H{
		"capa_url": "https://img/1.png",
		"titulo":   "Peônia",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tatID := out["id"].(string)

	w, out = doJSON(t, r, http.MethodPost, "/tatuagens/"+tatID+"/curtir", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.EqualValues(t, 1, out["curtidas"])

	require.Eventually(t, func() bool {
		var tat catalog.Tatuagem
		if err := db.First(&tat, "id = ?", tatID).Error; err != nil {
			return false
		}
		return tat.Curtidas == 1
	}, 3*time.Second, 50*time.Millisecond, "async like never persisted")
}

func TestOwnershipIsEnforced(t *testing.T) {
	db := openTestDB(t)
	r := editorRouter(t, db, "http://localhost:1")

	othersSerie := catalog.Serie{Titulo: "Not Yours", AutorID: testUserID + 1}
	require.NoError(t, db.Create(&othersSerie).Error)

	w, _ := doJSON(t, r, http.MethodPut, "/series/"+othersSerie.ID, gin.H{"titulo": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/series/"+othersSerie.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompileGathersCollection(t *testing.T) {
	db := openTestDB(t)

	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": `{
						"pdfDataUri": "data:application/pdf;base64,JVBERi0=",
						"webVersionUrl": "https://example.com/floral-set",
						"miniSiteHtml": "<html></html>",
						"promotionalFiles": [],
						"marketingCopies": "Buy the floral set.",
						"coverArtDataUri": "data:image/png;base64,iVBORw0KGgo=",
						"mockups3D": []
					}`}},
				}},
			},
		})
	}))
	defer model.Close()

	r := editorRouter(t, db, model.URL)

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set", "publico_alvo": "fineline artists"})
	for i := 1; i <= 2; i++ {
		moduloID := createModulo(t, r, serieID, fmt.Sprintf("Chapter %d", i))
		w, _ := doJSON(t, r, http.MethodPost, "/modulos/"+moduloID+"/tatuagens", gin.H{
			"capa_url": fmt.Sprintf("https://img/%d.png", i),
			"titulo":   fmt.Sprintf("Tattoo %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, out := doJSON(t, r, http.MethodPost, "/series/"+serieID+"/compilar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Buy the floral set.", out["marketingCopies"])
	assert.Equal(t, "https://example.com/floral-set", out["webVersionUrl"])
}

func TestCompileSurfacesGenerationFailure(t *testing.T) {
	db := openTestDB(t)

	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer model.Close()

	r := editorRouter(t, db, model.URL)

	serieID := createSerie(t, r, gin.H{"titulo": "Floral Set"})

	w, out := doJSON(t, r, http.MethodPost, "/series/"+serieID+"/compilar", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEmpty(t, out["error"])
}
