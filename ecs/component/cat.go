package component

// Category classifies a cat. A cat has exactly one category for its whole
// life; Normal is the residual case.
type Category uint8

const (
	CategoryNormal Category = iota
	CategoryBad
	CategoryChonky
)

func (c Category) String() string {
	switch c {
	case CategoryBad:
		return "bad"
	case CategoryChonky:
		return "chonky"
	default:
		return "normal"
	}
}

// Cat marks a collectible cat entity.
type Cat struct {
	Category Category
}

var CatComponent = NewComponent[Cat]()
