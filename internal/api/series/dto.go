package series

// ---------- requests

type CreateSerieRequest struct {
	Titulo      string   `json:"titulo"`
	Descricao   string   `json:"descricao"`
	PublicoAlvo string   `json:"publico_alvo"`
	Preco       float64  `json:"preco"`
	CapaURL     string   `json:"capa_url"`
	TagsGerais  []string `json:"tags_gerais"`
}

// UpdateSerieRequest is a typed partial update: only non-nil fields touch
// the stored record.
type UpdateSerieRequest struct {
	Titulo      *string   `json:"titulo"`
	Descricao   *string   `json:"descricao"`
	PublicoAlvo *string   `json:"publico_alvo"`
	Preco       *float64  `json:"preco"`
	Status      *string   `json:"status"`
	CapaURL     *string   `json:"capa_url"`
	TagsGerais  *[]string `json:"tags_gerais"`
}

type CreateModuloRequest struct {
	Titulo    string `json:"titulo" binding:"required"`
	Descricao string `json:"descricao"`
}

type UpdateModuloRequest struct {
	Titulo    *string `json:"titulo"`
	Descricao *string `json:"descricao"`
}

type CreateTatuagemRequest struct {
	CapaURL   string `json:"capa_url" binding:"required"`
	Titulo    string `json:"titulo" binding:"required"`
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
}

// UpdateTatuagemRequest covers the edit sheet: every AI-suggested field is
// user-editable.
type UpdateTatuagemRequest struct {
	CapaURL   *string `json:"capa_url"`
	Titulo    *string `json:"titulo"`
	Descricao *string `json:"descricao"`

	Tema    *string   `json:"tema"`
	Estilos *[]string `json:"estilos"`

	SignificadoLiteral   *string   `json:"significado_literal"`
	SignificadoSubjetivo *string   `json:"significado_subjetivo"`
	CoresUsadas          *[]string `json:"cores_usadas"`
	ElementosPresentes   *[]string `json:"elementos_presentes"`
	TomEmocional         *string   `json:"tom_emocional"`
	LocalSugerido        *string   `json:"local_sugerido"`
	Simbolismo           *string   `json:"simbolismo"`
	ReferenciaCultural   *string   `json:"referencia_cultural"`

	SeoTags          *[]string `json:"seo_tags"`
	InstagramCaption *string   `json:"instagram_caption"`
}
