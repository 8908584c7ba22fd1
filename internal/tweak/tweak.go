package tweak

// Category is a grouping label used for presentation only.
type Category string

const (
	CategorySystem   Category = "System"
	CategoryNetwork  Category = "Network"
	CategoryGraphics Category = "Graphics"
)

// Categories lists all categories in display order.
var Categories = []Category{CategorySystem, CategoryNetwork, CategoryGraphics}

// Tweak describes a single named, individually applicable system
// configuration change. Instances are immutable after registry construction.
// ID is the primary key referenced by persisted state and must be stable
// across versions.
type Tweak struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Elevated    bool     `json:"elevated"` // requires elevated privileges to run
	ApplyCmd    string   `json:"-"`        // command executed to enact the tweak
	RestoreCmd  string   `json:"-"`        // command executed to undo it; empty means one-way
	OneWay      bool     `json:"one_way"`  // derived: no restore command
}

// normalized returns t with the derived OneWay flag set from RestoreCmd.
func (t Tweak) normalized() Tweak {
	t.OneWay = t.RestoreCmd == ""
	return t
}
