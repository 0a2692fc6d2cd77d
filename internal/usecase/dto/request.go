package dto

// ListChainsRequest - страница цепочек
type ListChainsRequest struct {
	Limit int `query:"limit" validate:"min=0"`
	Page  int `query:"page" validate:"min=0"`
}

// SuggestRequest - запрос на реконструкцию пути цепочки
type SuggestRequest struct {
	Hash  string `json:"hash" validate:"required,chainhash"`
	Limit int    `query:"limit" validate:"min=0"`
}

// LocateStationRequest - привязка позиции цепочки к существующей станции
type LocateStationRequest struct {
	Pos    int    `json:"pos" validate:"min=0"`
	StopID string `json:"stop_id" validate:"required,uuid"`
}

// LocatePointRequest - создание станции в точке и привязка к позиции
type LocatePointRequest struct {
	Pos int     `json:"pos" validate:"min=0"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// BBoxRequest - прямоугольник в градусах; углы в любом порядке
type BBoxRequest struct {
	LatFrom float64 `query:"lat_from" validate:"min=-90,max=90"`
	LatTo   float64 `query:"lat_to" validate:"min=-90,max=90"`
	LonFrom float64 `query:"lon_from" validate:"min=-180,max=180"`
	LonTo   float64 `query:"lon_to" validate:"min=-180,max=180"`
}

// SearchRequest - текстовый поиск
type SearchRequest struct {
	Query string `query:"q" validate:"required,min=1,max=100"`
}

// CreateStationRequest - новая станция
type CreateStationRequest struct {
	Name string  `json:"name" validate:"required,max=200"`
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Lon  float64 `json:"lon" validate:"min=-180,max=180"`
}

// MoveStationRequest - новая позиция станции
type MoveStationRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// StationNameRequest - имя станции (добавление/удаление)
type StationNameRequest struct {
	Name string `json:"name" query:"name" validate:"required,max=200"`
}

// ImportRequest - задание на импорт файла
type ImportRequest struct {
	Kind string `json:"kind" validate:"required,oneof=netex base_stations base_cities"`
	Path string `json:"path" validate:"required"`
}
