package catalog

import (
	"time"
)

type Modulo struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	SerieID string `gorm:"type:uuid;not null;index:idx_modulos_serie_ordem,priority:1" json:"serie_id"`

	Titulo    string `gorm:"not null" json:"titulo"`
	Descricao string `json:"descricao"`
	Ordem     int    `gorm:"not null;default:0;index:idx_modulos_serie_ordem,priority:2" json:"ordem"`

	TatuagensCount int `gorm:"not null;default:0" json:"tatuagens_count"`

	Tatuagens []Tatuagem `gorm:"foreignKey:ModuloID;constraint:OnDelete:CASCADE;" json:"tatuagens,omitempty"`

	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}
