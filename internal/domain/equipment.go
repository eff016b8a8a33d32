package domain

import (
	"strings"

	"github.com/google/uuid"
)

// AssetKind identifies which list of an Equipment an asset belongs to.
type AssetKind string

// Supported asset kinds
const (
	AssetKindManual AssetKind = "manual"
	AssetKindImage  AssetKind = "image"
)

// Valid reports whether k is a known asset kind.
func (k AssetKind) Valid() bool {
	return k == AssetKindManual || k == AssetKindImage
}

// Equipment is a named physical item with reference manuals and images.
// Manuals and Images keep append order; duplicates are allowed.
type Equipment struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Manuals []string  `json:"manuals"`
	Images  []string  `json:"images"`
}

// NewEquipment creates an Equipment with a fresh ID and empty asset lists.
func NewEquipment(name string) (*Equipment, error) {
	e := &Equipment{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(name),
		Manuals: []string{},
		Images:  []string{},
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the invariants of an Equipment.
func (e *Equipment) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEquipmentName
	}
	return nil
}

// Rename replaces the equipment name.
func (e *Equipment) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyEquipmentName
	}
	e.Name = name
	return nil
}

// Assets returns the list that holds assets of the given kind.
func (e *Equipment) Assets(kind AssetKind) []string {
	if kind == AssetKindManual {
		return e.Manuals
	}
	return e.Images
}

// HasImages reports whether at least one reference image is attached.
func (e *Equipment) HasImages() bool {
	return len(e.Images) > 0
}

// AppendAsset adds url at the end of the kind's list.
func (e *Equipment) AppendAsset(kind AssetKind, url string) {
	switch kind {
	case AssetKindManual:
		e.Manuals = append(e.Manuals, url)
	case AssetKindImage:
		e.Images = append(e.Images, url)
	}
}

// RemoveAsset removes the first occurrence of url from the kind's list.
// It returns ErrAssetNotAttached and leaves the equipment untouched when the
// url is not present.
func (e *Equipment) RemoveAsset(kind AssetKind, url string) error {
	list := e.Assets(kind)
	idx := -1
	for i, u := range list {
		if u == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAssetNotAttached
	}

	next := make([]string, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)

	if kind == AssetKindManual {
		e.Manuals = next
	} else {
		e.Images = next
	}
	return nil
}
