package search

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/types"
)

// SortField is a recipe attribute results can be ordered by
type SortField string

const (
	SortByID           SortField = "id"
	SortByName         SortField = "name"
	SortByServings     SortField = "servings"
	SortByFoodCategory SortField = "foodCategory"
)

var sortFields = []SortField{SortByID, SortByName, SortByServings, SortByFoodCategory}

// ParseSortField accepts the field names above, case-insensitively.
func ParseSortField(s string) (SortField, bool) {
	for _, f := range sortFields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, true
		}
	}
	return "", false
}

// Direction of a sort
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection returns Asc for "asc" in any case and Desc otherwise.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// PageDefaults fill in a PageRequest's zero values
type PageDefaults struct {
	Size      int
	MaxSize   int
	Sort      SortField
	Direction Direction
}

// DefaultPageDefaults sorts by id descending, ten per page.
var DefaultPageDefaults = PageDefaults{
	Size:      10,
	MaxSize:   100,
	Sort:      SortByID,
	Direction: Desc,
}

// Page is a validated page window
type Page struct {
	Index     int
	Size      int
	Sort      SortField
	Direction Direction
}

// NewPage normalises req: a negative index becomes 0, a non-positive size
// becomes the default and an oversized one is capped. An unknown sort field
// or an index whose offset overflows int is an invalid request.
func NewPage(req types.PageRequest, d PageDefaults) (Page, error) {
	p := Page{
		Index:     max(req.Page, 0),
		Size:      req.Size,
		Sort:      d.Sort,
		Direction: d.Direction,
	}
	if p.Size <= 0 {
		p.Size = d.Size
	}
	if d.MaxSize > 0 && p.Size > d.MaxSize {
		p.Size = d.MaxSize
	}
	if p.Index > math.MaxInt/p.Size {
		return Page{}, apperr.InvalidRequest(fmt.Sprintf("page %d is out of range", req.Page))
	}
	if strings.TrimSpace(req.Sort) != "" {
		f, ok := ParseSortField(req.Sort)
		if !ok {
			return Page{}, apperr.InvalidRequest(fmt.Sprintf("unsupported sort field %q", req.Sort))
		}
		p.Sort = f
	}
	if strings.TrimSpace(req.Direction) != "" {
		p.Direction = ParseDirection(req.Direction)
	}
	return p, nil
}

// Offset is the number of matching records before this page. It is -1
// when the offset does not fit in an int.
func (p Page) Offset() int {
	if p.Index < 0 || p.Size <= 0 || p.Index > math.MaxInt/p.Size {
		return -1
	}
	return p.Index * p.Size
}

// Compare orders two recipes by the page's sort field, breaking ties by id
// in the same direction.
func (p Page) Compare(a, b *models.Recipe) int {
	var c int
	switch p.Sort {
	case SortByName:
		c = cmp.Compare(a.Name, b.Name)
	case SortByServings:
		c = cmp.Compare(a.Servings, b.Servings)
	case SortByFoodCategory:
		c = cmp.Compare(categoryKey(a), categoryKey(b))
	}
	if c == 0 {
		c = cmp.Compare(a.ID, b.ID)
	}
	if p.Direction == Desc {
		return -c
	}
	return c
}

// Window sorts rs in place and returns the slice that falls on this page.
func (p Page) Window(rs []*models.Recipe) []*models.Recipe {
	slices.SortFunc(rs, p.Compare)
	offset := p.Offset()
	if offset < 0 {
		return rs[:0]
	}
	start := min(offset, len(rs))
	end := min(start+p.Size, len(rs))
	return rs[start:end]
}

func categoryKey(r *models.Recipe) string {
	if r.FoodCategory == nil {
		return ""
	}
	return string(*r.FoodCategory)
}
