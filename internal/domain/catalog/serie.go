package catalog

import (
	"time"

	"github.com/lib/pq"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusPaused    = "paused"
)

type Serie struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Titulo      string  `gorm:"not null" json:"titulo"`
	Descricao   string  `json:"descricao"`
	PublicoAlvo string  `gorm:"column:publico_alvo" json:"publico_alvo"`
	Preco       float64 `gorm:"not null;default:0" json:"preco"`
	Status      string  `gorm:"type:text;not null;default:'draft';index" json:"status"`
	CapaURL     string  `gorm:"column:capa_url" json:"capa_url"`

	TagsGerais pq.StringArray `gorm:"column:tags_gerais;type:text[]" json:"tags_gerais"`

	ModulosCount   int `gorm:"not null;default:0" json:"modulos_count"`
	TatuagensCount int `gorm:"not null;default:0" json:"tatuagens_count"`

	AutorID uint `gorm:"not null;index" json:"autor_id"`

	Modulos []Modulo `gorm:"foreignKey:SerieID;constraint:OnDelete:CASCADE;" json:"modulos,omitempty"`

	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}
