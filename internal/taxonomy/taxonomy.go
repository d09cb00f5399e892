// Package taxonomy holds the fixed classification tables the type classifier
// joins against: armor types with their descriptor filters, weapon types,
// dice badge types and subtypes, plus the UI slot and category join tables.
// A Set is immutable configuration; item processing only ever reads it.
package taxonomy

// UndefinedID is the sentinel id for records no taxonomy entry matched.
const UndefinedID = -1

// UndefinedName is the sentinel name that goes with UndefinedID.
const UndefinedName = "undefined"

type ArmorType struct {
	ID      int
	Name    string
	UISlot  int
	Filters []string
}

type WeaponType struct {
	ID     int
	Name   string
	Kind   string
	Skill  string
	UISlot int
}

type UISlot struct {
	ID         int
	Name       string
	UICategory int
	Tooltip    string
}

type Category struct {
	ID   int
	Name string
}

type BadgeType struct {
	ID   int
	Name string
}

type BadgeSubtype struct {
	ID   int
	Name string
}

// Set bundles every lookup table for one pipeline run.
type Set struct {
	ArmorTypes    []ArmorType
	WeaponTypes   []WeaponType
	UISlots       []UISlot
	Categories    []Category
	BadgeTypes    []BadgeType
	BadgeSubtypes []BadgeSubtype
}

// UISlotByID resolves a UI slot foreign key.
func (s Set) UISlotByID(id int) (UISlot, bool) {
	for _, slot := range s.UISlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return UISlot{}, false
}

// CategoryByID resolves a category foreign key.
func (s Set) CategoryByID(id int) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryByName finds a category by its taxonomy name.
func (s Set) CategoryByName(name string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Default returns the shipped taxonomy tables.
func Default() Set {
	return Set{
		ArmorTypes:    defaultArmorTypes(),
		WeaponTypes:   defaultWeaponTypes(),
		UISlots:       defaultUISlots(),
		Categories:    defaultCategories(),
		BadgeTypes:    defaultBadgeTypes(),
		BadgeSubtypes: defaultBadgeSubtypes(),
	}
}

func defaultCategories() []Category {
	return []Category{
		{ID: -1, Name: "undefined"},
		{ID: 0, Name: "head"},
		{ID: 1, Name: "jewelry"},
		{ID: 2, Name: "dagger"},
		{ID: 3, Name: "belt"},
		{ID: 4, Name: "torso"},
		{ID: 5, Name: "hands"},
		{ID: 6, Name: "legs"},
		{ID: 7, Name: "pouch"},
		{ID: 8, Name: "horse"},
		{ID: 9, Name: "melee"},
		{ID: 10, Name: "ranged"},
		{ID: 11, Name: "shield"},
		{ID: 12, Name: "die"},
		{ID: 13, Name: "diceBadge"},
	}
}

func defaultUISlots() []UISlot {
	return []UISlot{
		{ID: -1, Name: "undefined", UICategory: -1, Tooltip: "Undefined"},
		{ID: 0, Name: "cap", UICategory: 0, Tooltip: "Head - Cap or Helmet"},
		{ID: 1, Name: "coif", UICategory: 0, Tooltip: "Head - Coif or Padded Coif"},
		{ID: 2, Name: "hood", UICategory: 0, Tooltip: "Head - Hood"},
		{ID: 3, Name: "collar", UICategory: 0, Tooltip: "Head - Collar"},
		{ID: 4, Name: "ring", UICategory: 1, Tooltip: "Jewelry - Ring"},
		{ID: 5, Name: "necklace", UICategory: 1, Tooltip: "Jewelry - Necklace"},
		{ID: 6, Name: "dagger", UICategory: 2, Tooltip: "Dagger - Dagger"},
		{ID: 7, Name: "belt", UICategory: 3, Tooltip: "Belt - Belt"},
		{ID: 8, Name: "plate", UICategory: 4, Tooltip: "Body - Plate"},
		{ID: 9, Name: "coat", UICategory: 4, Tooltip: "Body - Coat"},
		{ID: 10, Name: "cloth", UICategory: 4, Tooltip: "Body - Tunic or Gambeson"},
		{ID: 11, Name: "chainmail", UICategory: 4, Tooltip: "Body - Chainmail"},
		{ID: 12, Name: "gloves", UICategory: 5, Tooltip: "Hands - Gloves"},
		{ID: 13, Name: "sleeves", UICategory: 5, Tooltip: "Hands - Sleeves"},
		{ID: 14, Name: "trousers", UICategory: 6, Tooltip: "Legs - Hose or Padded Hose"},
		{ID: 15, Name: "legArmor", UICategory: 6, Tooltip: "Legs - Cuisses"},
		{ID: 16, Name: "boot", UICategory: 6, Tooltip: "Legs - Shoes"},
		{ID: 17, Name: "spur", UICategory: 6, Tooltip: "Legs - Spurs"},
		{ID: 18, Name: "pouch", UICategory: 7, Tooltip: "Body - Pouch"},
		{ID: 19, Name: "horseHead", UICategory: 8, Tooltip: "Tack - Bridle"},
		{ID: 20, Name: "horseTorso", UICategory: 8, Tooltip: "Tack - Torso"},
		{ID: 21, Name: "horseSaddle", UICategory: 8, Tooltip: "Tack - Saddle"},
		{ID: 22, Name: "horseshoe", UICategory: 8, Tooltip: "Tack - Horseshoe"},
		{ID: 23, Name: "weaponMelee", UICategory: 9, Tooltip: "Weapon - Melee"},
		{ID: 24, Name: "weaponRanged", UICategory: 10, Tooltip: "Weapon - Ranged"},
		{ID: 25, Name: "shield", UICategory: 11, Tooltip: "Weapon - Shield"},
	}
}

func defaultArmorTypes() []ArmorType {
	return []ArmorType{
		{ID: -1, Name: "undefined", UISlot: -1, Filters: []string{}},
		{ID: 0, Name: "headCap", UISlot: 0, Filters: []string{"Cap", "F_Hood", "F_Bonnet", "F_CapAndWimple", "F_Hat", "F_HoodOpen", "F_Veil", "F_VeilAndWimple", "LeatherCap"}},
		{ID: 1, Name: "headHelmet", UISlot: 0, Filters: []string{"KettleHat", "SkullCap", "BascinetOpen", "BascinetVisor"}},
		{ID: 2, Name: "headCoif", UISlot: 1, Filters: []string{"CoifCap"}},
		{ID: 3, Name: "headCoifPadded", UISlot: 1, Filters: []string{"CoifSmall", "CoifLarge", "CoifMail"}},
		{ID: 4, Name: "headHood", UISlot: 2, Filters: []string{"Hood"}},
		{ID: 5, Name: "collar", UISlot: 3, Filters: []string{"Collar"}},
		{ID: 6, Name: "ring", UISlot: 4, Filters: []string{"Ring"}},
		{ID: 7, Name: "necklace", UISlot: 5, Filters: []string{"Necklace"}},
		{ID: 8, Name: "belt", UISlot: 7, Filters: []string{"Belt"}},
		{ID: 9, Name: "bodyPlate", UISlot: 8, Filters: []string{"Brigandine", "Cuirass"}},
		{ID: 10, Name: "bodyCoat", UISlot: 9, Filters: []string{"Coat"}},
		{ID: 11, Name: "bodyCloth", UISlot: 10, Filters: []string{"TunicShort", "TunicLong", "F_SimpleDress", "F_Smock", "LeatherApron"}},
		{ID: 12, Name: "bodyClothPadded", UISlot: 10, Filters: []string{"GambesonShort", "GambesonLong", "Caftan", "Pourpoint"}},
		{ID: 13, Name: "bodyChainmail", UISlot: 11, Filters: []string{"MailShort", "MailLong"}},
		{ID: 14, Name: "gloves", UISlot: 12, Filters: []string{"Gloves"}},
		{ID: 15, Name: "sleeves", UISlot: 13, Filters: []string{"ArmBrigandine", "ArmPlate"}},
		{ID: 16, Name: "legTrousers", UISlot: 14, Filters: []string{"HoseJoined", "HoseLoose", "HoseSeparate"}},
		{ID: 17, Name: "legTrousersPadded", UISlot: 14, Filters: []string{"LegsPadded", "LegsChain"}},
		{ID: 18, Name: "legArmor", UISlot: 15, Filters: []string{"LegsBrigandine", "LegsPlate"}},
		{ID: 19, Name: "boot", UISlot: 16, Filters: []string{"Boot"}},
		{ID: 20, Name: "spur", UISlot: 17, Filters: []string{"Spurs"}},
		{ID: 21, Name: "pouch", UISlot: 18, Filters: []string{"Pouch"}},
		{ID: 22, Name: "horseHead", UISlot: 19, Filters: []string{"Bridle", "Chanfron"}},
		{ID: 23, Name: "horseTorso", UISlot: 20, Filters: []string{"Caparison", "Harness"}},
		{ID: 24, Name: "horseSaddle", UISlot: 21, Filters: []string{"Saddle"}},
		{ID: 25, Name: "horseShoe", UISlot: 22, Filters: []string{"HorseShoe"}},
	}
}

func defaultWeaponTypes() []WeaponType {
	return []WeaponType{
		{ID: -1, Name: "undefined", Kind: "MeleeWeapon", Skill: "fencing", UISlot: -1},
		{ID: 0, Name: "dagger", Kind: "MeleeWeapon", Skill: "weaponDagger", UISlot: 6},
		{ID: 1, Name: "sword", Kind: "MeleeWeapon", Skill: "weaponSword", UISlot: 23},
		{ID: 2, Name: "sabre", Kind: "MeleeWeapon", Skill: "weaponSword", UISlot: 23},
		{ID: 3, Name: "axe", Kind: "MeleeWeapon", Skill: "heavyWeapons", UISlot: 23},
		{ID: 4, Name: "longsword", Kind: "MeleeWeapon", Skill: "weaponSword", UISlot: 23},
		{ID: 5, Name: "mace", Kind: "MeleeWeapon", Skill: "heavyWeapons", UISlot: 23},
		{ID: 6, Name: "flail", Kind: "MeleeWeapon", Skill: "weaponLarge", UISlot: 23},
		{ID: 7, Name: "halberd", Kind: "MeleeWeapon", Skill: "weaponLarge", UISlot: 23},
		{ID: 8, Name: "shield", Kind: "MeleeWeapon", Skill: "weaponShield", UISlot: 25},
		{ID: 9, Name: "bow", Kind: "MissileWeapon", Skill: "marksmanship", UISlot: 24},
		{ID: 10, Name: "crossbowLight", Kind: "MissileWeapon", Skill: "marksmanship", UISlot: 24},
		{ID: 11, Name: "torch", Kind: "MeleeWeapon", Skill: "weaponDagger", UISlot: -1},
		{ID: 12, Name: "unarmed", Kind: "MeleeWeapon", Skill: "weaponUnarmed", UISlot: -1},
		{ID: 13, Name: "rifle", Kind: "MissileWeapon", Skill: "marksmanship", UISlot: 24},
		{ID: 14, Name: "crossbowMedium", Kind: "MissileWeapon", Skill: "marksmanship", UISlot: 24},
		{ID: 15, Name: "crossbowHeavy", Kind: "MissileWeapon", Skill: "marksmanship", UISlot: 24},
		{ID: 16, Name: "huntingSword", Kind: "MeleeWeapon", Skill: "weaponSword", UISlot: 23},
		{ID: 17, Name: "shieldBroken", Kind: "MeleeWeapon", Skill: "weaponShield", UISlot: -1},
	}
}

func defaultBadgeTypes() []BadgeType {
	return []BadgeType{
		{ID: -1, Name: "undefined"},
		{ID: 0, Name: "plumb"},
		{ID: 1, Name: "silver"},
		{ID: 2, Name: "gold"},
	}
}

func defaultBadgeSubtypes() []BadgeSubtype {
	return []BadgeSubtype{
		{ID: 0, Name: "Headstart"},
		{ID: 1, Name: "Formations"},
		{ID: 2, Name: "Null"},
		{ID: 3, Name: "ExtraValue"},
		{ID: 4, Name: "Antibust"},
		{ID: 5, Name: "DoubleTake"},
		{ID: 6, Name: "Multiplier"},
		{ID: 7, Name: "ExtraDice"},
		{ID: 8, Name: "RerollDice"},
		{ID: 9, Name: "SetDice"},
		{ID: 10, Name: "RerollPips"},
	}
}
