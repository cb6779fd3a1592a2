package public

import (
	"time"

	"inkserie-app/internal/domain/catalog"
)

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// The landing-page payload always carries its collections, even when empty:
// a module with no tattoos renders as "tatuagens": [] and a serie with no
// modules as "modulos": [], matching the persisted counters.

type TatuagemDTO struct {
	ID        string `json:"id"`
	ModuloID  string `json:"modulo_id"`
	SerieID   string `json:"serie_id"`
	CapaURL   string `json:"capa_url"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`

	Tema    string   `json:"tema"`
	Estilos []string `json:"estilos"`

	SignificadoLiteral   string   `json:"significado_literal"`
	SignificadoSubjetivo string   `json:"significado_subjetivo"`
	CoresUsadas          []string `json:"cores_usadas"`
	ElementosPresentes   []string `json:"elementos_presentes"`
	TomEmocional         string   `json:"tom_emocional"`
	LocalSugerido        string   `json:"local_sugerido"`
	Simbolismo           string   `json:"simbolismo"`
	ReferenciaCultural   string   `json:"referencia_cultural"`

	SeoTags          []string `json:"seo_tags"`
	InstagramCaption string   `json:"instagram_caption"`

	Curtidas          int `json:"curtidas"`
	ComentariosCount  int `json:"comentarios_count"`
	Compartilhamentos int `json:"compartilhamentos"`

	Origem    string    `json:"origem"`
	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}

type ModuloDTO struct {
	ID             string        `json:"id"`
	SerieID        string        `json:"serie_id"`
	Titulo         string        `json:"titulo"`
	Descricao      string        `json:"descricao"`
	Ordem          int           `json:"ordem"`
	TatuagensCount int           `json:"tatuagens_count"`
	Tatuagens      []TatuagemDTO `json:"tatuagens"`
	CreatedAt      time.Time     `json:"data_criacao"`
	UpdatedAt      time.Time     `json:"data_atualizacao"`
}

type SerieDTO struct {
	ID             string      `json:"id"`
	Titulo         string      `json:"titulo"`
	Descricao      string      `json:"descricao"`
	PublicoAlvo    string      `json:"publico_alvo"`
	Preco          float64     `json:"preco"`
	Status         string      `json:"status"`
	CapaURL        string      `json:"capa_url"`
	TagsGerais     []string    `json:"tags_gerais"`
	ModulosCount   int         `json:"modulos_count"`
	TatuagensCount int         `json:"tatuagens_count"`
	AutorID        uint        `json:"autor_id"`
	Modulos        []ModuloDTO `json:"modulos"`
	CreatedAt      time.Time   `json:"data_criacao"`
	UpdatedAt      time.Time   `json:"data_atualizacao"`
}

func toSerieDTO(s catalog.Serie) SerieDTO {
	dto := SerieDTO{
		ID:             s.ID,
		Titulo:         s.Titulo,
		Descricao:      s.Descricao,
		PublicoAlvo:    s.PublicoAlvo,
		Preco:          s.Preco,
		Status:         s.Status,
		CapaURL:        s.CapaURL,
		TagsGerais:     emptyIfNil(s.TagsGerais),
		ModulosCount:   s.ModulosCount,
		TatuagensCount: s.TatuagensCount,
		AutorID:        s.AutorID,
		Modulos:        make([]ModuloDTO, 0, len(s.Modulos)),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}

	for _, m := range s.Modulos {
		mod := ModuloDTO{
			ID:             m.ID,
			SerieID:        m.SerieID,
			Titulo:         m.Titulo,
			Descricao:      m.Descricao,
			Ordem:          m.Ordem,
			TatuagensCount: m.TatuagensCount,
			Tatuagens:      make([]TatuagemDTO, 0, len(m.Tatuagens)),
			CreatedAt:      m.CreatedAt,
			UpdatedAt:      m.UpdatedAt,
		}
		for _, t := range m.Tatuagens {
			mod.Tatuagens = append(mod.Tatuagens, TatuagemDTO{
				ID:                   t.ID,
				ModuloID:             t.ModuloID,
				SerieID:              t.SerieID,
				CapaURL:              t.CapaURL,
				Titulo:               t.Titulo,
				Descricao:            t.Descricao,
				Tema:                 t.Tema,
				Estilos:              emptyIfNil(t.Estilos),
				SignificadoLiteral:   t.SignificadoLiteral,
				SignificadoSubjetivo: t.SignificadoSubjetivo,
				CoresUsadas:          emptyIfNil(t.CoresUsadas),
				ElementosPresentes:   emptyIfNil(t.ElementosPresentes),
				TomEmocional:         t.TomEmocional,
				LocalSugerido:        t.LocalSugerido,
				Simbolismo:           t.Simbolismo,
				ReferenciaCultural:   t.ReferenciaCultural,
				SeoTags:              emptyIfNil(t.SeoTags),
				InstagramCaption:     t.InstagramCaption,
				Curtidas:             t.Curtidas,
				ComentariosCount:     t.ComentariosCount,
				Compartilhamentos:    t.Compartilhamentos,
				Origem:               t.Origem,
				CreatedAt:            t.CreatedAt,
				UpdatedAt:            t.UpdatedAt,
			})
		}
		dto.Modulos = append(dto.Modulos, mod)
	}

	return dto
}

// The /api/books/:id surface keeps the legacy AiBook naming so older
// storefront clients keep working against the same records.

type BookImageDTO struct {
	ID               string   `json:"id"`
	ModuleID         string   `json:"moduleId"`
	SourceURL        string   `json:"sourceUrl"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Theme            string   `json:"theme"`
	Style            string   `json:"style"`
	Tags             []string `json:"tags"`
	InstagramCaption string   `json:"instagramCaption"`
}

type BookModuleDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Images      []BookImageDTO `json:"images"`
}

type BookDTO struct {
	ID               string          `json:"id"`
	OwnerID          uint            `json:"ownerId"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	TargetAudience   string          `json:"targetAudience"`
	Tags             []string        `json:"tags"`
	CoverArtURL      string          `json:"coverArtUrl,omitempty"`
	Price            float64         `json:"price"`
	Modules          []BookModuleDTO `json:"modules"`
}

func toBookDTO(s catalog.Serie) BookDTO {
	book := BookDTO{
		ID:               s.ID,
		OwnerID:          s.AutorID,
		Name:             s.Titulo,
		ShortDescription: s.Descricao,
		LongDescription:  s.Descricao,
		TargetAudience:   s.PublicoAlvo,
		Tags:             emptyIfNil(s.TagsGerais),
		CoverArtURL:      s.CapaURL,
		Price:            s.Preco,
		Modules:          make([]BookModuleDTO, 0, len(s.Modulos)),
	}

	for _, m := range s.Modulos {
		mod := BookModuleDTO{
			ID:          m.ID,
			Name:        m.Titulo,
			Description: m.Descricao,
			Images:      make([]BookImageDTO, 0, len(m.Tatuagens)),
		}
		for _, t := range m.Tatuagens {
			style := ""
			if len(t.Estilos) > 0 {
				style = t.Estilos[0]
			}
			mod.Images = append(mod.Images, BookImageDTO{
				ID:               t.ID,
				ModuleID:         t.ModuloID,
				SourceURL:        t.CapaURL,
				Title:            t.Titulo,
				Description:      t.Descricao,
				Theme:            t.Tema,
				Style:            style,
				Tags:             emptyIfNil(t.SeoTags),
				InstagramCaption: t.InstagramCaption,
			})
		}
		book.Modules = append(book.Modules, mod)
	}

	return book
}
