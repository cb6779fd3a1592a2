package catalog

import (
	"time"

	"github.com/lib/pq"
)

const (
	OrigemManual = "manual"
	OrigemIA     = "ia"
)

func (Tatuagem) TableName() string { return "tatuagens" }

type Tatuagem struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ModuloID string `gorm:"type:uuid;not null;index" json:"modulo_id"`
	SerieID  string `gorm:"type:uuid;not null;index" json:"serie_id"`

	CapaURL   string `gorm:"column:capa_url;not null" json:"capa_url"`
	Titulo    string `gorm:"not null" json:"titulo"`
	Descricao string `json:"descricao"`

	Tema    string         `json:"tema"`
	Estilos pq.StringArray `gorm:"type:text[]" json:"estilos"`

	SignificadoLiteral   string         `gorm:"column:significado_literal" json:"significado_literal"`
	SignificadoSubjetivo string         `gorm:"column:significado_subjetivo" json:"significado_subjetivo"`
	CoresUsadas          pq.StringArray `gorm:"column:cores_usadas;type:text[]" json:"cores_usadas"`
	ElementosPresentes   pq.StringArray `gorm:"column:elementos_presentes;type:text[]" json:"elementos_presentes"`
	TomEmocional         string         `gorm:"column:tom_emocional" json:"tom_emocional"`
	LocalSugerido        string         `gorm:"column:local_sugerido" json:"local_sugerido"`
	Simbolismo           string         `json:"simbolismo"`
	ReferenciaCultural   string         `gorm:"column:referencia_cultural" json:"referencia_cultural"`

	SeoTags          pq.StringArray `gorm:"column:seo_tags;type:text[]" json:"seo_tags"`
	InstagramCaption string         `gorm:"column:instagram_caption" json:"instagram_caption"`

	Curtidas          int `gorm:"not null;default:0" json:"curtidas"`
	ComentariosCount  int `gorm:"not null;default:0" json:"comentarios_count"`
	Compartilhamentos int `gorm:"not null;default:0" json:"compartilhamentos"`

	Origem  string `gorm:"type:text;not null;default:'manual'" json:"origem"`
	AutorID uint   `gorm:"not null;index" json:"autor_id"`

	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}
