package series

import (
	"inkserie-app/internal/domain/catalog"

	"gorm.io/gorm"
)

func ownedSerie(tx *gorm.DB, userID uint, serieID string) (catalog.Serie, error) {
	var s catalog.Serie
	err := tx.First(&s, "id = ? AND autor_id = ?", serieID, userID).Error
	return s, err
}

// ownedModulo resolves a modulo together with its parent serie, checking
// that the serie belongs to the caller.
func ownedModulo(tx *gorm.DB, userID uint, moduloID string) (catalog.Modulo, catalog.Serie, error) {
	var m catalog.Modulo
	if err := tx.First(&m, "id = ?", moduloID).Error; err != nil {
		return catalog.Modulo{}, catalog.Serie{}, err
	}
	s, err := ownedSerie(tx, userID, m.SerieID)
	if err != nil {
		return catalog.Modulo{}, catalog.Serie{}, err
	}
	return m, s, nil
}

func ownedTatuagem(tx *gorm.DB, userID uint, tatuagemID string) (catalog.Tatuagem, error) {
	var t catalog.Tatuagem
	if err := tx.First(&t, "id = ?", tatuagemID).Error; err != nil {
		return catalog.Tatuagem{}, err
	}
	if _, err := ownedSerie(tx, userID, t.SerieID); err != nil {
		return catalog.Tatuagem{}, err
	}
	return t, nil
}
