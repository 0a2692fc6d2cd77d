package dto

import (
	"github.com/google/uuid"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// ChainListResponse - страница цепочек
type ChainListResponse struct {
	Chains []domain.LinkedChain `json:"chains"`
	Page   int                  `json:"page"`
	Limit  int                  `json:"limit"`
}

// CitySuggestionsResponse - варианты пути по городам, от кратчайшего
type CitySuggestionsResponse struct {
	Suggestions []domain.CitySuggestion `json:"suggestions"`
	Total       int                     `json:"total"`
	Truncated   bool                    `json:"truncated"`
}

// StationSuggestionsResponse - варианты пути по станциям, от кратчайшего
type StationSuggestionsResponse struct {
	Suggestions []domain.StationSuggestion `json:"suggestions"`
	Total       int                        `json:"total"`
	Truncated   bool                       `json:"truncated"`
}

// LocateResponse - результат привязки позиции
type LocateResponse struct {
	Link    *domain.ChainStation `json:"link"`
	Station *domain.Station      `json:"station"`
}

// ImportAcceptedResponse - задание поставлено в очередь
type ImportAcceptedResponse struct {
	JobID uuid.UUID         `json:"job_id"`
	Kind  domain.ImportKind `json:"kind"`
	Path  string            `json:"path"`
}
