package domain

// GridSize размер сетки южно-индийского стиля (4x4, 12 домов + центральный блок)
const GridSize = 4

// GridCell одна ячейка сетки. Для ячеек центрального блока Center=true,
// House=0 и остальные поля пустые.
type GridCell struct {
	House     int    `json:"house,omitempty"`
	Sign      string `json:"sign,omitempty"`
	Planets   string `json:"planets,omitempty"` // "Su, Mo" - аббревиатуры через запятую
	Ascendant bool   `json:"ascendant,omitempty"`
	Center    bool   `json:"center,omitempty"`
}

// GridSummary сводка рождения для центрального блока (только rasi-вариант)
type GridSummary struct {
	FullName     string `json:"full_name"`
	DateOfBirth  string `json:"date_of_birth"`
	TimeOfBirth  string `json:"time_of_birth"`
	PlaceOfBirth string `json:"place_of_birth"`
	Rasi         string `json:"rasi"`
	Nakshatra    string `json:"nakshatra"`
}

// Grid результат раскладки варианта карты на фиксированную сетку.
// Для navamsa центральный блок пустой и Summary == nil.
type Grid struct {
	Variant VariantTag                   `json:"variant"`
	Cells   [GridSize][GridSize]GridCell `json:"cells"`
	Summary *GridSummary                 `json:"summary,omitempty"`
}
