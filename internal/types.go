package internal

// Attribute keys carried over from the game XML. The "@" marker the XML
// converter leaves on attribute names is stripped by the key normalizer
// before any of these are looked up.
const (
	AttrID           = "Id"
	AttrName         = "Name"
	AttrUIName       = "UIName"
	AttrIconID       = "IconId"
	AttrClothing     = "Clothing"
	AttrClass        = "Class"
	AttrSubClass     = "SubClass"
	AttrSourceItemID = "SourceItemId"
	AttrType         = "Type"
	AttrSubType      = "SubType"
)

// Source category labels that carry special meaning in the pipeline.
const (
	CategoryAlias     = "ItemAlias"
	CategoryArmor     = "Armor"
	CategoryWeapons   = "Weapons"
	CategoryDie       = "Die"
	CategoryDiceBadge = "DiceBadge"
)

// Record is the open attribute bag of a single raw item as it came out of
// the XML conversion: string-keyed, values are strings, numbers or nested
// structures.
type Record map[string]any

// Str returns the attribute as a string. Numeric values are not converted;
// the safe numeric helpers in internal/util handle those.
func (r Record) Str(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports attribute presence regardless of value type.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone deep-copies the record, including nested maps and slices.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Record:
		return map[string]any(t.Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Classification holds what the type classifier attached to an item.
// Pointer fields stay nil until the relevant classifier ran; the undefined
// sentinel (id -1) is an explicit value, not nil.
type Classification struct {
	ArmorTypeID      *int
	ArmorTypeName    string
	WeaponTypeID     *int
	WeaponTypeName   string
	BadgeTypeID      *string
	BadgeTypeName    string
	BadgeSubTypeID   *string
	BadgeSubTypeName string
	UISlotID         *int
	UISlotName       string
	CategoryID       *int
	CategoryName     string
}

// Item is one record moving through the pipeline: the raw attribute bag plus
// the typed fields later stages fill in.
type Item struct {
	Attrs       Record
	DisplayName string
	Class       Classification
}

// Clone deep-copies the item. Classification pointers are re-allocated so a
// cloned item never aliases its source.
func (it Item) Clone() Item {
	out := it
	out.Attrs = it.Attrs.Clone()
	out.Class.ArmorTypeID = cloneInt(it.Class.ArmorTypeID)
	out.Class.WeaponTypeID = cloneInt(it.Class.WeaponTypeID)
	out.Class.UISlotID = cloneInt(it.Class.UISlotID)
	out.Class.CategoryID = cloneInt(it.Class.CategoryID)
	out.Class.BadgeTypeID = cloneString(it.Class.BadgeTypeID)
	out.Class.BadgeSubTypeID = cloneString(it.Class.BadgeSubTypeID)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Collection maps category labels to ordered item sequences. Category
// enumeration order is explicit and deterministic run to run; downstream
// report ordering relies on it.
type Collection struct {
	order   []string
	buckets map[string][]Item
}

func NewCollection() *Collection {
	return &Collection{buckets: map[string][]Item{}}
}

// Categories returns the category labels in their current iteration order.
func (c *Collection) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Collection) Has(category string) bool {
	_, ok := c.buckets[category]
	return ok
}

// Items returns the bucket for a category; nil if absent.
func (c *Collection) Items(category string) []Item {
	return c.buckets[category]
}

// Set replaces a category's items, creating the category at the end of the
// iteration order if it did not exist.
func (c *Collection) Set(category string, items []Item) {
	if _, ok := c.buckets[category]; !ok {
		c.order = append(c.order, category)
	}
	c.buckets[category] = items
}

// Append adds items to the end of a category, creating it if needed.
func (c *Collection) Append(category string, items ...Item) {
	if _, ok := c.buckets[category]; !ok {
		c.order = append(c.order, category)
	}
	c.buckets[category] = append(c.buckets[category], items...)
}

// Delete removes a category and its items.
func (c *Collection) Delete(category string) {
	if _, ok := c.buckets[category]; !ok {
		return
	}
	delete(c.buckets, category)
	for i, name := range c.order {
		if name == category {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// MoveToFront relocates a category to the first position of the iteration
// order. No-op if the category is absent.
func (c *Collection) MoveToFront(category string) {
	if _, ok := c.buckets[category]; !ok {
		return
	}
	idx := -1
	for i, name := range c.order {
		if name == category {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return
	}
	c.order = append(c.order[:idx], c.order[idx+1:]...)
	c.order = append([]string{category}, c.order...)
}

// Len is the total item count across all categories.
func (c *Collection) Len() int {
	total := 0
	for _, items := range c.buckets {
		total += len(items)
	}
	return total
}

// Clone deep-copies the collection so stages never share nested structures
// across their boundaries.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	for _, category := range c.order {
		items := c.buckets[category]
		copied := make([]Item, len(items))
		for i, it := range items {
			copied[i] = it.Clone()
		}
		out.Set(category, copied)
	}
	return out
}

// UIText is the localized-string lookup supplied by the acquisition layer:
// key to ordered list of localized strings. By convention index 0 is the
// developer label and index 1 the player-facing string.
type UIText map[string][]string

// Stats is the normalized statistics sub-object of a processed item. Every
// field is optional; a field appears only when its source attribute was
// present on the raw record.
type Stats struct {
	Weight          *float64 `json:"weight,omitempty"`
	Price           *int     `json:"price,omitempty"`
	Conspicuousness *int     `json:"conspicuousness,omitempty"`
	Noise           *int     `json:"noise,omitempty"`
	Visibility      *int     `json:"visibility,omitempty"`
	Attack          *int     `json:"attack,omitempty"`
	AttackModSlash  *float64 `json:"attackModSlash,omitempty"`
	AttackModSmash  *float64 `json:"attackModSmash,omitempty"`
	AttackModStab   *float64 `json:"attackModStab,omitempty"`
	AttackSlash     *int     `json:"attackSlash,omitempty"`
	AttackSmash     *int     `json:"attackSmash,omitempty"`
	AttackStab      *int     `json:"attackStab,omitempty"`
	SideWeights     []int    `json:"sideWeights,omitempty"`
	SideValues      []int    `json:"sideValues,omitempty"`
}

// ProcessedItem is the terminal projection of one item: flat, typed,
// JSON-serializable, with no references back into the raw collection.
type ProcessedItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DisplayName      string  `json:"displayName"`
	IconID           string  `json:"iconId,omitempty"`
	CategoryID       *int    `json:"categoryId,omitempty"`
	CategoryName     string  `json:"categoryName,omitempty"`
	UISlotID         *int    `json:"uiSlotId,omitempty"`
	UISlotName       string  `json:"uiSlotName,omitempty"`
	ArmorTypeID      *int    `json:"armorTypeId,omitempty"`
	ArmorTypeName    string  `json:"armorTypeName,omitempty"`
	WeaponTypeID     *int    `json:"weaponTypeId,omitempty"`
	WeaponTypeName   string  `json:"weaponTypeName,omitempty"`
	BadgeTypeID      *string `json:"badgeTypeId,omitempty"`
	BadgeTypeName    string  `json:"badgeTypeName,omitempty"`
	BadgeSubTypeID   *string `json:"badgeSubTypeId,omitempty"`
	BadgeSubTypeName string  `json:"badgeSubTypeName,omitempty"`
	Stats            *Stats  `json:"stats,omitempty"`
}

// Diagnostic is one data-quality finding surfaced for maintainer review.
type Diagnostic struct {
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	ItemID      string `json:"itemId,omitempty"`
	ItemName    string `json:"itemName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Diagnostic kinds.
const (
	DiagUnresolvedAlias = "unresolved_alias"
	DiagFilteredItem    = "filtered_item"
	DiagUnmatchedArmor  = "unmatched_armor"
	DiagUnmatchedWeapon = "unmatched_weapon"
	DiagSkippedBadge    = "skipped_badge"
	DiagMissingName     = "missing_display_name"
)
