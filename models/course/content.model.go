package course

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Kind tags which item table a Content points at
type Kind string

const (
	KindText  Kind = "text"
	KindVideo Kind = "video"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// Kinds lists every supported content kind
var Kinds = []Kind{KindText, KindVideo, KindImage, KindFile}

var ErrUnknownKind = errors.New("unknown content kind")

// ParseKind accepts a kind name in any case
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// Content places one item inside a module
type Content struct {
	ID       uint `json:"id" gorm:"primarykey"`
	ModuleID uint `json:"module_id" gorm:"not null;index:idx_content_module_order,priority:1"`
	Kind     Kind `json:"kind" gorm:"size:16;not null"`
	ItemID   uint `json:"item_id" gorm:"not null"`
	Order    *int `json:"order" gorm:"column:order_index;not null;index:idx_content_module_order,priority:2"`
	Item     Item `json:"item,omitempty" gorm:"-"`
}

func (c *Content) OrderValue() (int, bool) {
	if c.Order == nil {
		return 0, false
	}
	return *c.Order, true
}

func (c *Content) SetOrderValue(order int) {
	c.Order = &order
}

// Item is one of Text, Video, Image or File
type Item interface {
	Kind() Kind
	Base() *ItemBase
}

// ItemBase holds the fields every item kind shares
type ItemBase struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:250;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *ItemBase) Base() *ItemBase { return b }

type Text struct {
	ItemBase
	Body string `json:"body" gorm:"type:text;not null"`
}

type Video struct {
	ItemBase
	URL string `json:"url" gorm:"size:500;not null"`
}

type Image struct {
	ItemBase
	Path string `json:"file" gorm:"size:500;not null"`
}

type File struct {
	ItemBase
	Path string `json:"file" gorm:"size:500;not null"`
}

func (*Text) Kind() Kind  { return KindText }
func (*Video) Kind() Kind { return KindVideo }
func (*Image) Kind() Kind { return KindImage }
func (*File) Kind() Kind  { return KindFile }

// NewItem returns an empty item of the given kind
func NewItem(kind Kind) (Item, error) {
	switch kind {
	case KindText:
		return &Text{}, nil
	case KindVideo:
		return &Video{}, nil
	case KindImage:
		return &Image{}, nil
	case KindFile:
		return &File{}, nil
	}
	return nil, ErrUnknownKind
}

func itemIDsByKind(contents []Content) map[Kind][]uint {
	ids := make(map[Kind][]uint)
	for _, c := range contents {
		ids[c.Kind] = append(ids[c.Kind], c.ItemID)
	}
	return ids
}

func loadKind[T any, PT interface {
	*T
	Item
}](db *gorm.DB, ids []uint) (map[uint]Item, error) {
	var rows []T
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]Item, len(rows))
	for i := range rows {
		item := PT(&rows[i])
		out[item.Base().ID] = item
	}
	return out, nil
}

// LoadItems fills Content.Item for each content, one query per kind present
func LoadItems(db *gorm.DB, contents []Content) error {
	for kind, ids := range itemIDsByKind(contents) {
		var (
			items map[uint]Item
			err   error
		)
		switch kind {
		case KindText:
			items, err = loadKind[Text](db, ids)
		case KindVideo:
			items, err = loadKind[Video](db, ids)
		case KindImage:
			items, err = loadKind[Image](db, ids)
		case KindFile:
			items, err = loadKind[File](db, ids)
		default:
			continue
		}
		if err != nil {
			return err
		}
		for i := range contents {
			if contents[i].Kind == kind {
				contents[i].Item = items[contents[i].ItemID]
			}
		}
	}
	return nil
}

// DeleteItems removes the items the given contents point at
func DeleteItems(tx *gorm.DB, contents []Content) error {
	for kind, ids := range itemIDsByKind(contents) {
		item, err := NewItem(kind)
		if err != nil {
			continue
		}
		if err := tx.Delete(item, ids).Error; err != nil {
			return err
		}
	}
	return nil
}
