package accounting

import (
	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// TrackingCategoryService lists and retrieves tracking categories.
type TrackingCategoryService struct {
	readService[TrackingCategory, ListParams]
}

// NewTrackingCategoryService applies opts to each request, after the
// client's.
func NewTrackingCategoryService(opts ...RequestOption) TrackingCategoryService {
	return TrackingCategoryService{readService[TrackingCategory, ListParams]{Options: opts, path: "tracking-categories"}}
}

// TrackingCategory is a class or department transactions can be tagged with.
type TrackingCategory struct {
	codec.Extras
	Record
	Name           nullable.Nullable[string]                     `json:"name,omitempty"`
	Status         nullable.Nullable[TrackingCategoryStatusEnum] `json:"status,omitempty"`
	CategoryType   nullable.Nullable[CategoryTypeEnum]           `json:"category_type,omitempty"`
	ParentCategory nullable.Nullable[string]                     `json:"parent_category,omitempty"`
	Company        nullable.Nullable[string]                     `json:"company,omitempty"`
}

func (r TrackingCategory) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *TrackingCategory) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
